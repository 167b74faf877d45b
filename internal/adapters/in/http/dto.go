package http

import (
	"encoding/json"
	"time"

	"amendments/internal/core/application/usecases/queries"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ChangeRequest struct {
	FieldName string          `json:"fieldName" validate:"required"`
	NewValue  json.RawMessage `json:"newValue"`
	Reason    string          `json:"reason"`
}

type CreateAmendmentRequest struct {
	OrderID             string          `json:"orderId" validate:"required,uuid"`
	Type                string          `json:"type" validate:"required"`
	Reason              string          `json:"reason" validate:"required"`
	Priority            string          `json:"priority"`
	Changes             []ChangeRequest `json:"changes" validate:"required,min=1,dive"`
	Notes               string          `json:"notes" validate:"max=4000"`
	SupportingDocuments []string        `json:"supportingDocuments" validate:"dive,required"`
	ExpiresInHours      *int            `json:"expiresInHours" validate:"omitempty,min=1,max=8760"`
}

// UpdateAmendmentRequest distinguishes omitted keys from explicit nulls.
type UpdateAmendmentRequest struct {
	Priority            optional.Value[string]   `json:"priority"`
	Notes               optional.Value[string]   `json:"notes"`
	SupportingDocuments optional.Value[[]string] `json:"supportingDocuments"`
	ExpiresInHours      optional.Value[int]      `json:"expiresInHours"`
}

type DecisionRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Notes    string `json:"notes" validate:"max=4000"`
}

type ProposeChangesRequest struct {
	Quantity         json.RawMessage `json:"quantity"`
	UnitPrice        json.RawMessage `json:"unitPrice"`
	DeliveryDate     json.RawMessage `json:"deliveryDate"`
	DeliveryLocation json.RawMessage `json:"deliveryLocation"`
	Composition      json.RawMessage `json:"composition"`
	Reason           string          `json:"reason"`
	Priority         string          `json:"priority"`
	Notes            string          `json:"notes" validate:"max=4000"`
	ExpiresInHours   *int            `json:"expiresInHours" validate:"omitempty,min=1,max=8760"`
}

type ReceivedQuantityRequest struct {
	ReceivedQuantity *decimal.Decimal `json:"receivedQuantity" validate:"required"`
	Reason           string           `json:"reason"`
	Notes            string           `json:"notes" validate:"max=4000"`
}

type Change struct {
	FieldName   string      `json:"fieldName"`
	OldValue    order.Value `json:"oldValue"`
	NewValue    order.Value `json:"newValue"`
	Reason      string      `json:"reason,omitempty"`
	Description string      `json:"description"`
}

type ImpactAssessment struct {
	ImpactLevel        string           `json:"impactLevel"`
	FinancialImpact    *decimal.Decimal `json:"financialImpact"`
	DeliveryImpactDays *int             `json:"deliveryImpactDays"`
	AffectsPricing     bool             `json:"affectsPricing"`
	AffectsDelivery    bool             `json:"affectsDelivery"`
	AffectsQuality     bool             `json:"affectsQuality"`
	AffectsCompliance  bool             `json:"affectsCompliance"`
	RiskFactors        []string         `json:"riskFactors"`
	MitigationActions  []string         `json:"mitigationActions"`
	AssessedAt         time.Time        `json:"assessedAt"`
	AssessmentVersion  string           `json:"assessmentVersion"`
}

type Amendment struct {
	ID                            string            `json:"id"`
	OrderID                       string            `json:"orderId"`
	AmendmentNumber               string            `json:"amendmentNumber"`
	Type                          string            `json:"type"`
	Reason                        string            `json:"reason"`
	Priority                      string            `json:"priority"`
	Status                        string            `json:"status"`
	IsExpired                     bool              `json:"isExpired"`
	Changes                       []Change          `json:"changes"`
	ProposedByCompanyID           string            `json:"proposedByCompanyId"`
	RequiresApprovalFromCompanyID string            `json:"requiresApprovalFromCompanyId"`
	ProposedAt                    time.Time         `json:"proposedAt"`
	ApprovedAt                    *time.Time        `json:"approvedAt"`
	AppliedAt                     *time.Time        `json:"appliedAt"`
	ExpiresAt                     *time.Time        `json:"expiresAt"`
	Notes                         string            `json:"notes"`
	ApprovalNotes                 string            `json:"approvalNotes"`
	SupportingDocuments           []string          `json:"supportingDocuments"`
	ImpactAssessment              *ImpactAssessment `json:"impactAssessment"`
	RequiresERPSync               bool              `json:"requiresErpSync"`
	ERPSyncStatus                 *string           `json:"erpSyncStatus"`
	CreatedAt                     time.Time         `json:"createdAt"`
	UpdatedAt                     time.Time         `json:"updatedAt"`
	Version                       int               `json:"version"`
}

type Pagination struct {
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type AmendmentList struct {
	Items      []Amendment `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func amendmentFromView(v queries.AmendmentView) Amendment {
	a := v.Amendment

	changes := make([]Change, 0, len(a.Changes()))
	for _, c := range a.Changes() {
		changes = append(changes, Change{
			FieldName:   c.Field().String(),
			OldValue:    c.OldValue(),
			NewValue:    c.NewValue(),
			Reason:      c.Reason(),
			Description: c.Description(),
		})
	}

	documents := a.SupportingDocuments()
	if documents == nil {
		documents = []string{}
	}

	return Amendment{
		ID:                            a.ID().String(),
		OrderID:                       a.OrderID().String(),
		AmendmentNumber:               a.Number().String(),
		Type:                          a.Type().String(),
		Reason:                        a.Reason().String(),
		Priority:                      a.Priority().String(),
		Status:                        v.EffectiveStatus.String(),
		IsExpired:                     v.IsExpired,
		Changes:                       changes,
		ProposedByCompanyID:           a.ProposedBy().String(),
		RequiresApprovalFromCompanyID: a.RequiresApprovalFrom().String(),
		ProposedAt:                    a.ProposedAt(),
		ApprovedAt:                    a.ApprovedAt(),
		AppliedAt:                     a.AppliedAt(),
		ExpiresAt:                     a.ExpiresAt(),
		Notes:                         a.Notes(),
		ApprovalNotes:                 a.ApprovalNotes(),
		SupportingDocuments:           documents,
		ImpactAssessment:              impactFromDomain(a.Impact()),
		RequiresERPSync:               a.RequiresERPSync(),
		ERPSyncStatus:                 a.ERPSyncStatus(),
		CreatedAt:                     a.CreatedAt(),
		UpdatedAt:                     a.UpdatedAt(),
		Version:                       a.Version(),
	}
}

func impactFromDomain(ia *amendment.ImpactAssessment) *ImpactAssessment {
	if ia == nil {
		return nil
	}
	f := ia.Facts()
	return &ImpactAssessment{
		ImpactLevel:        f.Level.String(),
		FinancialImpact:    f.FinancialImpact,
		DeliveryImpactDays: f.DeliveryImpactDays,
		AffectsPricing:     f.AffectsPricing,
		AffectsDelivery:    f.AffectsDelivery,
		AffectsQuality:     f.AffectsQuality,
		AffectsCompliance:  f.AffectsCompliance,
		RiskFactors:        f.RiskFactors,
		MitigationActions:  f.MitigationActions,
		AssessedAt:         f.AssessedAt,
		AssessmentVersion:  f.Version,
	}
}

func listFromResponse(r queries.ListAmendmentsQueryResponse) AmendmentList {
	items := make([]Amendment, 0, len(r.Items))
	for _, v := range r.Items {
		items = append(items, amendmentFromView(v))
	}
	return AmendmentList{
		Items: items,
		Pagination: Pagination{
			TotalCount: r.TotalCount,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
