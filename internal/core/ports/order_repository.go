// Package ports defines the contracts between the amendment engine and its
// infrastructure: persistence, transactions and event delivery.
package ports

import (
	"context"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
)

// OrderRepository is the order provider used by the engine. Orders are owned
// by the ordering subsystem; the engine only mutates them while applying an
// approved amendment.
type OrderRepository interface {
	// Add stores a new order. Used when importing orders and by tests.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the amendable fields and the received quantity.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// It serialises amendment creation per order, which protects number
	// generation and the no-conflict check.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
