package queries

import (
	"context"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/ports"
)

type ListAmendmentsQueryHandler struct {
	reader AmendmentReader
	clock  kernel.Clock
}

func NewListAmendmentsQueryHandler(reader AmendmentReader, clock kernel.Clock) ListAmendmentsQueryHandler {
	return ListAmendmentsQueryHandler{reader: reader, clock: clock}
}

func (h ListAmendmentsQueryHandler) Handle(
	ctx context.Context,
	query ListAmendmentsQuery,
) (ListAmendmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListAmendmentsQueryResponse{}, err
	}

	now := h.clock.Now()
	p := query.Params()

	page, err := h.reader.List(ctx, ports.AmendmentFilter{
		CompanyID:              query.CompanyID(),
		OrderID:                p.OrderID,
		Types:                  p.Types,
		Statuses:               p.Statuses,
		Priorities:             p.Priorities,
		ProposedByCompanyID:    p.ProposedByCompanyID,
		RequiresApprovalFromID: p.RequiresApprovalFromID,
		ProposedFrom:           p.ProposedFrom,
		ProposedTo:             p.ProposedTo,
		ExpiresFrom:            p.ExpiresFrom,
		ExpiresTo:              p.ExpiresTo,
		Now:                    now,
		Page:                   p.Page,
		Limit:                  p.Limit,
	})
	if err != nil {
		return ListAmendmentsQueryResponse{}, err
	}

	items := make([]AmendmentView, 0, len(page.Items))
	for _, a := range page.Items {
		items = append(items, viewOf(a, now))
	}

	return ListAmendmentsQueryResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(),
	}, nil
}
