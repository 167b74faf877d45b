package queries

import (
	"context"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/pkg/errs"
)

// GetAmendmentQueryHandler returns an amendment only to its two parties.
// Other companies get ObjectNotFoundError, as if it did not exist.
type GetAmendmentQueryHandler struct {
	reader AmendmentReader
	clock  kernel.Clock
}

func NewGetAmendmentQueryHandler(reader AmendmentReader, clock kernel.Clock) GetAmendmentQueryHandler {
	return GetAmendmentQueryHandler{reader: reader, clock: clock}
}

func (h GetAmendmentQueryHandler) Handle(ctx context.Context, query GetAmendmentQuery) (AmendmentView, error) {
	if err := query.Validate(); err != nil {
		return AmendmentView{}, err
	}

	a, err := h.reader.Get(ctx, query.AmendmentID())
	if err != nil {
		return AmendmentView{}, err
	}
	return scoped(a, query.CompanyID(), query.AmendmentID().String(), h.clock)
}

func scoped(a *amendment.Amendment, company kernel.UUID, ref string, clock kernel.Clock) (AmendmentView, error) {
	if !a.IsParty(company) {
		return AmendmentView{}, errs.NewObjectNotFoundError("amendment", ref)
	}
	return viewOf(a, clock.Now()), nil
}
