package commands

import (
	"errors"
	"fmt"
	"strings"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAdjustReceivedQuantityCommandIsNotConstructed = errors.New(
	"AdjustReceivedQuantityCommand must be created via NewAdjustReceivedQuantityCommand constructor",
)

// AdjustReceivedQuantityCommand is the buyer reporting what actually arrived.
// Reason defaults to delivery_shortage.
type AdjustReceivedQuantityCommand struct {
	orderID        kernel.UUID
	buyerCompanyID kernel.UUID
	quantity       decimal.Decimal
	reason         amendment.Reason
	notes          string

	guard guard.ConstructorGuard
}

func NewAdjustReceivedQuantityCommand(
	orderID, buyerCompanyID kernel.UUID,
	quantity decimal.Decimal,
	reason amendment.Reason,
	notes string,
) (AdjustReceivedQuantityCommand, error) {
	if reason == amendment.ReasonUnknown {
		reason = amendment.ReasonDeliveryShortage
	}

	var quantityErr error
	if quantity.IsNegative() {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("receivedQuantity", fmt.Errorf("%s is negative", quantity))
	}

	if err := errors.Join(orderID.Validate(), buyerCompanyID.Validate(), reason.Validate(), quantityErr); err != nil {
		return AdjustReceivedQuantityCommand{}, err
	}

	return AdjustReceivedQuantityCommand{
		orderID:        orderID,
		buyerCompanyID: buyerCompanyID,
		quantity:       quantity,
		reason:         reason,
		notes:          strings.TrimSpace(notes),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustReceivedQuantityCommand) Validate() error {
	return c.guard.Validate(ErrAdjustReceivedQuantityCommandIsNotConstructed)
}

func (c AdjustReceivedQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdjustReceivedQuantityCommand) BuyerCompanyID() kernel.UUID {
	return c.buyerCompanyID
}

func (c AdjustReceivedQuantityCommand) Quantity() decimal.Decimal {
	return c.quantity
}

func (c AdjustReceivedQuantityCommand) Reason() amendment.Reason {
	return c.reason
}
