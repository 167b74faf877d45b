// Package orderrepo persists the purchase orders the amendment engine reads and amends.
package orderrepo

import (
	"encoding/json"
	"time"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the purchase_orders row.
type OrderDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Number           string              `gorm:"type:varchar(64);not null;uniqueIndex"`
	BuyerCompanyID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SellerCompanyID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Quantity         decimal.Decimal     `gorm:"type:numeric(18,4);not null"`
	UnitPrice        decimal.Decimal     `gorm:"type:numeric(18,4);not null"`
	DeliveryDate     *time.Time          `gorm:"type:date"`
	DeliveryLocation string              `gorm:"type:varchar(255);not null;default:''"`
	Composition      *string             `gorm:"type:jsonb"`
	ReceivedQuantity decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	Status           string              `gorm:"type:varchar(16);not null;index"`
}

func (OrderDTO) TableName() string {
	return "purchase_orders"
}

// amendableColumns are written by Update. Identity, parties and status are
// owned by the ordering subsystem.
var amendableColumns = []string{
	"quantity",
	"unit_price",
	"delivery_date",
	"delivery_location",
	"composition",
	"received_quantity",
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	dto := OrderDTO{
		ID:               o.ID().Bytes(),
		Number:           o.Number(),
		BuyerCompanyID:   o.BuyerCompanyID().Bytes(),
		SellerCompanyID:  o.SellerCompanyID().Bytes(),
		Quantity:         o.Quantity(),
		UnitPrice:        o.UnitPrice(),
		DeliveryLocation: o.DeliveryLocation(),
		Status:           o.Status().String(),
	}

	if d := o.DeliveryDate(); !d.IsZero() {
		dto.DeliveryDate = &d
	}
	if c := o.Composition(); !c.IsEmpty() {
		raw, err := json.Marshal(c)
		if err != nil {
			return OrderDTO{}, err
		}
		s := string(raw)
		dto.Composition = &s
	}
	if received, ok := o.ReceivedQuantity(); ok {
		dto.ReceivedQuantity = decimal.NewNullDecimal(received)
	}
	return dto, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyer, err := kernel.UUIDFromBytes(dto.BuyerCompanyID[:])
	if err != nil {
		return nil, err
	}
	seller, err := kernel.UUIDFromBytes(dto.SellerCompanyID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	terms := order.Terms{
		Quantity:         dto.Quantity,
		UnitPrice:        dto.UnitPrice,
		DeliveryLocation: dto.DeliveryLocation,
	}
	if dto.DeliveryDate != nil {
		terms.DeliveryDate = *dto.DeliveryDate
	}
	if dto.Composition != nil {
		if err = json.Unmarshal([]byte(*dto.Composition), &terms.Composition); err != nil {
			return nil, err
		}
	}

	var received *decimal.Decimal
	if dto.ReceivedQuantity.Valid {
		received = &dto.ReceivedQuantity.Decimal
	}

	return order.RestoreOrder(id, dto.Number, buyer, seller, terms, received, status)
}
