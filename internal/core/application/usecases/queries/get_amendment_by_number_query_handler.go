package queries

import (
	"context"

	"amendments/internal/core/domain/model/kernel"
)

type GetAmendmentByNumberQueryHandler struct {
	reader AmendmentReader
	clock  kernel.Clock
}

func NewGetAmendmentByNumberQueryHandler(reader AmendmentReader, clock kernel.Clock) GetAmendmentByNumberQueryHandler {
	return GetAmendmentByNumberQueryHandler{reader: reader, clock: clock}
}

func (h GetAmendmentByNumberQueryHandler) Handle(ctx context.Context, query GetAmendmentByNumberQuery) (AmendmentView, error) {
	if err := query.Validate(); err != nil {
		return AmendmentView{}, err
	}

	a, err := h.reader.GetByNumber(ctx, query.Number())
	if err != nil {
		return AmendmentView{}, err
	}
	return scoped(a, query.CompanyID(), query.Number().String(), h.clock)
}
