// Package http exposes the amendment engine as a JSON API on echo.
//
// Every /api/v1 route acts on behalf of the company named in the X-Company-ID
// header. Reads return the effective status, so a pending amendment past its
// expiration is reported as expired.
package http

import (
	"context"
	"net/http"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/application/usecases/queries"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handler is the shape shared by command and query handlers.
type Handler[C, R any] interface {
	Handle(ctx context.Context, request C) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[C, R any] func(ctx context.Context, request C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, request C) (R, error) {
	return f(ctx, request)
}

// Handlers are the use cases served by the API.
type Handlers struct {
	CreateAmendment        Handler[commands.CreateAmendmentCommand, *amendment.Amendment]
	UpdateAmendment        Handler[commands.UpdateAmendmentCommand, *amendment.Amendment]
	DecideAmendment        Handler[commands.DecideAmendmentCommand, *amendment.Amendment]
	CancelAmendment        Handler[commands.CancelAmendmentCommand, *amendment.Amendment]
	ProposeChanges         Handler[commands.ProposeChangesCommand, *amendment.Amendment]
	AdjustReceivedQuantity Handler[commands.AdjustReceivedQuantityCommand, *amendment.Amendment]
	GetAmendment           Handler[queries.GetAmendmentQuery, queries.AmendmentView]
	GetAmendmentByNumber   Handler[queries.GetAmendmentByNumberQuery, queries.AmendmentView]
	ListAmendments         Handler[queries.ListAmendmentsQuery, queries.ListAmendmentsQueryResponse]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	clock    kernel.Clock
}

func NewServer(handlers Handlers, clock kernel.Clock) *Server {
	return &Server{handlers: handlers, clock: clock}
}

// CreateAmendment handles POST /api/v1/amendments.
func (s *Server) CreateAmendment(c echo.Context) error {
	company, err := companyOf(c)
	if err != nil {
		return err
	}

	var req CreateAmendmentRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	params, err := req.params(company)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateAmendmentCommand(params)
	if err != nil {
		return err
	}

	a, err := s.handlers.CreateAmendment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, a)
}

// ListAmendments handles GET /api/v1/amendments.
func (s *Server) ListAmendments(c echo.Context) error {
	company, err := companyOf(c)
	if err != nil {
		return err
	}

	params, err := listParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListAmendmentsQuery(company, params)
	if err != nil {
		return err
	}

	result, err := s.handlers.ListAmendments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listFromResponse(result))
}

// GetAmendment handles GET /api/v1/amendments/:id.
func (s *Server) GetAmendment(c echo.Context) error {
	company, id, err := companyAndID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAmendmentQuery(id, company)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetAmendment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, amendmentFromView(view))
}

// GetAmendmentByNumber handles GET /api/v1/amendments/number/:number.
func (s *Server) GetAmendmentByNumber(c echo.Context) error {
	company, err := companyOf(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAmendmentByNumberQuery(c.Param("number"), company)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetAmendmentByNumber.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, amendmentFromView(view))
}

// UpdateAmendment handles PATCH /api/v1/amendments/:id.
func (s *Server) UpdateAmendment(c echo.Context) error {
	company, id, err := companyAndID(c)
	if err != nil {
		return err
	}

	var req UpdateAmendmentRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}
	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateAmendmentCommand(id, company, patch)
	if err != nil {
		return err
	}
	a, err := s.handlers.UpdateAmendment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusOK, a)
}

// DecideAmendment handles POST /api/v1/amendments/:id/decision.
func (s *Server) DecideAmendment(c echo.Context) error {
	company, id, err := companyAndID(c)
	if err != nil {
		return err
	}

	var req DecisionRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewDecideAmendmentCommand(id, company, *req.Approved, req.Notes)
	if err != nil {
		return err
	}
	a, err := s.handlers.DecideAmendment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusOK, a)
}

// CancelAmendment handles POST /api/v1/amendments/:id/cancel.
func (s *Server) CancelAmendment(c echo.Context) error {
	company, id, err := companyAndID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelAmendmentCommand(id, company)
	if err != nil {
		return err
	}
	a, err := s.handlers.CancelAmendment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusOK, a)
}

// ProposeChanges handles POST /api/v1/orders/:orderId/proposals.
func (s *Server) ProposeChanges(c echo.Context) error {
	company, err := companyOf(c)
	if err != nil {
		return err
	}
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}

	var req ProposeChangesRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	fields, err := req.fields()
	if err != nil {
		return err
	}
	reason, priority, err := reasonAndPriority(req.Reason, req.Priority)
	if err != nil {
		return err
	}

	cmd, err := commands.NewProposeChangesCommand(orderID, company, fields, reason, priority, req.Notes, req.ExpiresInHours)
	if err != nil {
		return err
	}
	a, err := s.handlers.ProposeChanges.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, a)
}

// AdjustReceivedQuantity handles POST /api/v1/orders/:orderId/received-quantity.
func (s *Server) AdjustReceivedQuantity(c echo.Context) error {
	company, err := companyOf(c)
	if err != nil {
		return err
	}
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		return err
	}

	var req ReceivedQuantityRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	reason, _, err := reasonAndPriority(req.Reason, "")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdjustReceivedQuantityCommand(orderID, company, *req.ReceivedQuantity, reason, req.Notes)
	if err != nil {
		return err
	}
	a, err := s.handlers.AdjustReceivedQuantity.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respond(c, http.StatusCreated, a)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respond(c echo.Context, code int, a *amendment.Amendment) error {
	now := s.clock.Now()
	return c.JSON(code, amendmentFromView(queries.AmendmentView{
		Amendment:       a,
		EffectiveStatus: a.EffectiveStatus(now),
		IsExpired:       a.IsExpired(now),
	}))
}
