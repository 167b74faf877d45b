package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/application/usecases/queries"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/optional"

	"github.com/labstack/echo/v4"
)

const HeaderCompanyID = "X-Company-ID"

func companyOf(c echo.Context) (kernel.UUID, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(HeaderCompanyID))
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(HeaderCompanyID)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(HeaderCompanyID, err)
	}
	return id, nil
}

func uuidParam(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func companyAndID(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	company, err := companyOf(c)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return company, id, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return c.Validate(req)
}

func reasonAndPriority(rawReason, rawPriority string) (amendment.Reason, amendment.Priority, error) {
	var (
		reason   amendment.Reason
		priority amendment.Priority
		err      error
	)
	if rawReason != "" {
		if reason, err = amendment.ParseReason(rawReason); err != nil {
			return 0, 0, err
		}
	}
	if rawPriority != "" {
		if priority, err = amendment.ParsePriority(rawPriority); err != nil {
			return 0, 0, err
		}
	}
	return reason, priority, nil
}

func (r CreateAmendmentRequest) params(company kernel.UUID) (commands.CreateAmendmentParams, error) {
	orderID, err := kernel.UUIDFromString(r.OrderID)
	if err != nil {
		return commands.CreateAmendmentParams{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	typ, err := amendment.ParseType(r.Type)
	if err != nil {
		return commands.CreateAmendmentParams{}, err
	}
	reason, priority, err := reasonAndPriority(r.Reason, r.Priority)
	if err != nil {
		return commands.CreateAmendmentParams{}, err
	}

	changes := make([]commands.ChangeRequest, 0, len(r.Changes))
	for i, c := range r.Changes {
		field, fieldErr := order.ParseField(c.FieldName)
		if fieldErr != nil {
			return commands.CreateAmendmentParams{}, fmt.Errorf("changes[%d]: %w", i, fieldErr)
		}
		value, valueErr := order.ParseJSONValue(field, c.NewValue)
		if valueErr != nil {
			return commands.CreateAmendmentParams{}, fmt.Errorf("changes[%d]: %w", i, valueErr)
		}
		changes = append(changes, commands.ChangeRequest{Field: field, NewValue: value, Reason: c.Reason})
	}

	return commands.CreateAmendmentParams{
		OrderID:             orderID,
		ProposerCompanyID:   company,
		Type:                typ,
		Reason:              reason,
		Priority:            priority,
		Changes:             changes,
		Notes:               r.Notes,
		SupportingDocuments: r.SupportingDocuments,
		ExpiresInHours:      r.ExpiresInHours,
	}, nil
}

func (r UpdateAmendmentRequest) patch() (commands.AmendmentPatch, error) {
	patch := commands.AmendmentPatch{
		Notes:               r.Notes,
		SupportingDocuments: r.SupportingDocuments,
		ExpiresInHours:      r.ExpiresInHours,
	}

	switch {
	case r.Priority.IsNull():
		patch.Priority = optional.Null[amendment.Priority]()
	case r.Priority.IsSet():
		raw, _ := r.Priority.Get()
		priority, err := amendment.ParsePriority(raw)
		if err != nil {
			return commands.AmendmentPatch{}, err
		}
		patch.Priority = optional.Of(priority)
	}
	return patch, nil
}

func (r ProposeChangesRequest) fields() (commands.ProposedFields, error) {
	var fields commands.ProposedFields
	for _, entry := range []struct {
		field order.Field
		raw   json.RawMessage
		dest  **order.Value
	}{
		{order.FieldQuantity, r.Quantity, &fields.Quantity},
		{order.FieldUnitPrice, r.UnitPrice, &fields.UnitPrice},
		{order.FieldDeliveryDate, r.DeliveryDate, &fields.DeliveryDate},
		{order.FieldDeliveryLocation, r.DeliveryLocation, &fields.DeliveryLocation},
		{order.FieldComposition, r.Composition, &fields.Composition},
	} {
		if len(entry.raw) == 0 {
			continue
		}
		value, err := order.ParseJSONValue(entry.field, entry.raw)
		if err != nil {
			return commands.ProposedFields{}, err
		}
		*entry.dest = &value
	}
	return fields, nil
}

// listParams reads the listing filters. Enum filters accept repeated keys and
// comma separated values; time filters are RFC 3339.
func listParams(c echo.Context) (queries.ListAmendmentsParams, error) {
	var (
		p                             queries.ListAmendmentsParams
		types, statuses, priorities   []string
		orderID, proposedBy, approver string
		proposedFrom, proposedTo      string
		expiresFrom, expiresTo        string
	)

	if err := echo.QueryParamsBinder(c).
		Int("page", &p.Page).
		Int("limit", &p.Limit).
		Strings("type", &types).
		Strings("status", &statuses).
		Strings("priority", &priorities).
		String("orderId", &orderID).
		String("proposedByCompanyId", &proposedBy).
		String("requiresApprovalFromCompanyId", &approver).
		String("proposedFrom", &proposedFrom).
		String("proposedTo", &proposedTo).
		String("expiresFrom", &expiresFrom).
		String("expiresTo", &expiresTo).
		BindError(); err != nil {
		return p, errs.NewValueIsInvalidErrorWithCause("query", err)
	}

	var err error
	if p.Types, err = parseAll(types, amendment.ParseType); err != nil {
		return p, err
	}
	if p.Statuses, err = parseAll(statuses, amendment.ParseStatus); err != nil {
		return p, err
	}
	if p.Priorities, err = parseAll(priorities, amendment.ParsePriority); err != nil {
		return p, err
	}

	ids := []struct {
		name string
		raw  string
		dest **kernel.UUID
	}{
		{"orderId", orderID, &p.OrderID},
		{"proposedByCompanyId", proposedBy, &p.ProposedByCompanyID},
		{"requiresApprovalFromCompanyId", approver, &p.RequiresApprovalFromID},
	}
	for _, id := range ids {
		if id.raw == "" {
			continue
		}
		parsed, parseErr := kernel.UUIDFromString(id.raw)
		if parseErr != nil {
			return p, errs.NewValueIsInvalidErrorWithCause(id.name, parseErr)
		}
		*id.dest = &parsed
	}

	times := []struct {
		name string
		raw  string
		dest **time.Time
	}{
		{"proposedFrom", proposedFrom, &p.ProposedFrom},
		{"proposedTo", proposedTo, &p.ProposedTo},
		{"expiresFrom", expiresFrom, &p.ExpiresFrom},
		{"expiresTo", expiresTo, &p.ExpiresTo},
	}
	for _, t := range times {
		if t.raw == "" {
			continue
		}
		parsed, parseErr := time.Parse(time.RFC3339, t.raw)
		if parseErr != nil {
			return p, errs.NewValueIsInvalidErrorWithCause(t.name, parseErr)
		}
		parsed = parsed.UTC()
		*t.dest = &parsed
	}

	return p, nil
}

func parseAll[E any](raw []string, parse func(string) (E, error)) ([]E, error) {
	var (
		out  []E
		errz []error
	)
	for _, group := range raw {
		for _, s := range strings.Split(group, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			v, err := parse(s)
			if err != nil {
				errz = append(errz, err)
				continue
			}
			out = append(out, v)
		}
	}
	return out, errors.Join(errz...)
}
