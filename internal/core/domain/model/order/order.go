package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Terms groups the commercial attributes of an order that amendments may change.
// DeliveryDate is optional; the zero time means "not agreed yet".
type Terms struct {
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	DeliveryDate     time.Time
	DeliveryLocation string
	Composition      Composition
}

// Order is a purchase order between a buyer and a seller company.
//
// Invariants:
//   - buyer and seller are distinct, valid companies
//   - quantity and unit price are strictly positive
//   - received quantity, once recorded, is not negative
type Order struct {
	id               kernel.UUID
	number           string
	buyerCompanyID   kernel.UUID
	sellerCompanyID  kernel.UUID
	quantity         decimal.Decimal
	unitPrice        decimal.Decimal
	deliveryDate     time.Time
	deliveryLocation string
	composition      Composition
	receivedQuantity *decimal.Decimal
	status           Status

	isConstructed bool
}

// NewOrder creates a draft order.
//
// Example:
//
//	o, err := order.NewOrder(id, "PO-2024-0001", buyerID, sellerID, order.Terms{
//	    Quantity:  decimal.NewFromInt(1000),
//	    UnitPrice: decimal.RequireFromString("10.00"),
//	})
func NewOrder(id kernel.UUID, number string, buyerID, sellerID kernel.UUID, terms Terms) (*Order, error) {
	return RestoreOrder(id, number, buyerID, sellerID, terms, nil, Draft)
}

// RestoreOrder rehydrates an order from persistence or from the ordering subsystem.
func RestoreOrder(
	id kernel.UUID,
	number string,
	buyerID, sellerID kernel.UUID,
	terms Terms,
	receivedQuantity *decimal.Decimal,
	status Status,
) (*Order, error) {
	o := &Order{
		deliveryDate:     terms.DeliveryDate,
		deliveryLocation: terms.DeliveryLocation,
		composition:      terms.Composition,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(buyerID, sellerID),
		o.setQuantity(terms.Quantity),
		o.setUnitPrice(terms.UnitPrice),
		o.setReceivedQuantity(receivedQuantity),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if !o.deliveryDate.IsZero() {
		o.deliveryDate = DateValue(o.deliveryDate).Date()
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) BuyerCompanyID() kernel.UUID {
	return o.buyerCompanyID
}

func (o *Order) SellerCompanyID() kernel.UUID {
	return o.sellerCompanyID
}

func (o *Order) Quantity() decimal.Decimal {
	return o.quantity
}

func (o *Order) UnitPrice() decimal.Decimal {
	return o.unitPrice
}

func (o *Order) DeliveryDate() time.Time {
	return o.deliveryDate
}

func (o *Order) DeliveryLocation() string {
	return o.deliveryLocation
}

func (o *Order) Composition() Composition {
	return o.composition
}

func (o *Order) Status() Status {
	return o.status
}

// ReceivedQuantity returns the quantity the buyer reported as received, if any.
func (o *Order) ReceivedQuantity() (decimal.Decimal, bool) {
	if o.receivedQuantity == nil {
		return decimal.Zero, false
	}
	return *o.receivedQuantity, true
}

// TotalValue is quantity multiplied by unit price.
func (o *Order) TotalValue() decimal.Decimal {
	return o.quantity.Mul(o.unitPrice)
}

// IsParty reports whether company is the buyer or the seller.
func (o *Order) IsParty(company kernel.UUID) bool {
	return company.IsEqual(o.buyerCompanyID) || company.IsEqual(o.sellerCompanyID)
}

func (o *Order) IsBuyer(company kernel.UUID) bool {
	return company.IsEqual(o.buyerCompanyID)
}

// CounterpartyOf returns the party that is not company.
func (o *Order) CounterpartyOf(company kernel.UUID) (kernel.UUID, error) {
	switch {
	case company.IsEqual(o.buyerCompanyID):
		return o.sellerCompanyID, nil
	case company.IsEqual(o.sellerCompanyID):
		return o.buyerCompanyID, nil
	default:
		return kernel.UUID{}, errs.NewPermissionDeniedError(
			fmt.Sprintf("company %s", company), fmt.Sprintf("act on order %s", o.number),
		)
	}
}

// Value returns the current content of field.
func (o *Order) Value(field Field) Value {
	switch field {
	case FieldQuantity:
		return NumberValue(o.quantity)
	case FieldUnitPrice:
		return NumberValue(o.unitPrice)
	case FieldDeliveryDate:
		if o.deliveryDate.IsZero() {
			return NullValue(KindDate)
		}
		return DateValue(o.deliveryDate)
	case FieldDeliveryLocation:
		if o.deliveryLocation == "" {
			return NullValue(KindText)
		}
		return TextValue(o.deliveryLocation)
	case FieldComposition:
		if o.composition.IsEmpty() {
			return NullValue(KindComposition)
		}
		return CompositionValue(o.composition)
	case FieldReceivedQuantity:
		if o.receivedQuantity == nil {
			return NullValue(KindNumber)
		}
		return NumberValue(*o.receivedQuantity)
	case FieldUnknown:
	}
	return Value{}
}

// Apply writes value into field. The value kind must match the field and the
// order invariants must still hold afterwards.
func (o *Order) Apply(field Field, value Value) error {
	if err := field.Validate(); err != nil {
		return err
	}
	if value.Kind() != field.Kind() {
		return errs.NewValueIsInvalidErrorWithCause(
			field.String(),
			fmt.Errorf("expected a %s value, got %s", field.Kind(), value.Kind()),
		)
	}

	switch field {
	case FieldQuantity:
		if value.IsNull() {
			return errs.NewValueIsRequiredError(field.String())
		}
		return o.setQuantity(value.Number())
	case FieldUnitPrice:
		if value.IsNull() {
			return errs.NewValueIsRequiredError(field.String())
		}
		return o.setUnitPrice(value.Number())
	case FieldDeliveryDate:
		if value.IsNull() {
			o.deliveryDate = time.Time{}
			return nil
		}
		o.deliveryDate = value.Date()
	case FieldDeliveryLocation:
		o.deliveryLocation = strings.TrimSpace(value.Text())
	case FieldComposition:
		o.composition = value.Composition()
	case FieldReceivedQuantity:
		if value.IsNull() {
			o.receivedQuantity = nil
			return nil
		}
		received := value.Number()
		return o.setReceivedQuantity(&received)
	case FieldUnknown:
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setParties(buyerID, sellerID kernel.UUID) error {
	if err := errors.Join(buyerID.Validate(), sellerID.Validate()); err != nil {
		return err
	}
	if buyerID.IsEqual(sellerID) {
		return errs.NewValueIsInvalidErrorWithCause("seller company", errors.New("buyer and seller must differ"))
	}
	o.buyerCompanyID = buyerID
	o.sellerCompanyID = sellerID
	return nil
}

func (o *Order) setQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setUnitPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is not greater than 0", price))
	}
	o.unitPrice = price
	return nil
}

func (o *Order) setReceivedQuantity(received *decimal.Decimal) error {
	if received == nil {
		o.receivedQuantity = nil
		return nil
	}
	if received.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("received quantity", fmt.Errorf("%s is negative", received))
	}
	copied := *received
	o.receivedQuantity = &copied
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
