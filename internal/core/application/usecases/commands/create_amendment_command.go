package commands

import (
	"errors"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/guard"
)

var ErrCreateAmendmentCommandIsNotConstructed = errors.New(
	"CreateAmendmentCommand must be created via NewCreateAmendmentCommand constructor",
)

// CreateAmendmentParams is the input of NewCreateAmendmentCommand.
// Priority defaults to medium. ExpiresInHours is optional.
type CreateAmendmentParams struct {
	OrderID             kernel.UUID
	ProposerCompanyID   kernel.UUID
	Type                amendment.Type
	Reason              amendment.Reason
	Priority            amendment.Priority
	Changes             []ChangeRequest
	Notes               string
	SupportingDocuments []string
	ExpiresInHours      *int
}

// CreateAmendmentCommand opens a pending amendment on behalf of the proposer.
//
// Example:
//
//	cmd, err := NewCreateAmendmentCommand(CreateAmendmentParams{
//	    OrderID:           orderID,
//	    ProposerCompanyID: sellerID,
//	    Type:              amendment.TypePriceChange,
//	    Reason:            amendment.ReasonPriceAdjustment,
//	    Changes: []ChangeRequest{{
//	        Field:    order.FieldUnitPrice,
//	        NewValue: order.NumberValue(decimal.RequireFromString("12.00")),
//	    }},
//	})
type CreateAmendmentCommand struct {
	params CreateAmendmentParams

	guard guard.ConstructorGuard
}

func NewCreateAmendmentCommand(p CreateAmendmentParams) (CreateAmendmentCommand, error) {
	if p.Priority == amendment.PriorityUnknown {
		p.Priority = amendment.PriorityMedium
	}

	if err := errors.Join(
		p.OrderID.Validate(),
		p.ProposerCompanyID.Validate(),
		p.Type.Validate(),
		p.Reason.Validate(),
		p.Priority.Validate(),
		validateChangeRequests(p.Changes),
		validateExpiresInHours(p.ExpiresInHours),
	); err != nil {
		return CreateAmendmentCommand{}, err
	}

	p.Changes = append([]ChangeRequest(nil), p.Changes...)
	p.SupportingDocuments = copyStrings(p.SupportingDocuments)
	if p.ExpiresInHours != nil {
		hours := *p.ExpiresInHours
		p.ExpiresInHours = &hours
	}

	return CreateAmendmentCommand{params: p, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateAmendmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAmendmentCommandIsNotConstructed)
}

func (c CreateAmendmentCommand) OrderID() kernel.UUID {
	return c.params.OrderID
}

func (c CreateAmendmentCommand) ProposerCompanyID() kernel.UUID {
	return c.params.ProposerCompanyID
}

func (c CreateAmendmentCommand) Type() amendment.Type {
	return c.params.Type
}

func (c CreateAmendmentCommand) Priority() amendment.Priority {
	return c.params.Priority
}

func (c CreateAmendmentCommand) Changes() []ChangeRequest {
	return append([]ChangeRequest(nil), c.params.Changes...)
}

func (c CreateAmendmentCommand) draft() draft {
	return draft{
		orderID:             c.params.OrderID,
		proposer:            c.params.ProposerCompanyID,
		typ:                 c.params.Type,
		reason:              c.params.Reason,
		priority:            c.params.Priority,
		requests:            c.params.Changes,
		notes:               c.params.Notes,
		supportingDocuments: c.params.SupportingDocuments,
		expiresInHours:      c.params.ExpiresInHours,
	}
}
