package postgres

import (
	"amendments/internal/adapters/out/postgres/amendmentrepo"
	"amendments/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the purchase_orders, amendments and
// amendment_changes tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&amendmentrepo.AmendmentDTO{},
		&amendmentrepo.ChangeDTO{},
	)
}
