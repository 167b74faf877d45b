// Package amendmentrepo persists amendments and their ordered changes.
package amendmentrepo

import (
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AmendmentDTO is the amendments row. Timestamps are owned by the domain,
// so GORM's automatic tracking is disabled.
type AmendmentDTO struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID                uuid.UUID      `gorm:"type:uuid;not null;index"`
	Number                 string         `gorm:"type:varchar(96);not null;uniqueIndex"`
	Type                   string         `gorm:"type:varchar(48);not null;index"`
	Reason                 string         `gorm:"type:varchar(48);not null"`
	Priority               string         `gorm:"type:varchar(16);not null"`
	Status                 string         `gorm:"type:varchar(16);not null;index"`
	ProposedByCompanyID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	RequiresApprovalFromID uuid.UUID      `gorm:"column:requires_approval_from_company_id;type:uuid;not null;index"`
	ProposedAt             time.Time      `gorm:"not null"`
	ApprovedAt             *time.Time     `gorm:"type:timestamptz"`
	AppliedAt              *time.Time     `gorm:"type:timestamptz"`
	ExpiresAt              *time.Time     `gorm:"type:timestamptz;index"`
	Notes                  string         `gorm:"type:text;not null;default:''"`
	ApprovalNotes          string         `gorm:"type:text;not null;default:''"`
	SupportingDocuments    pq.StringArray `gorm:"type:text[]"`
	Impact                 ImpactDTO      `gorm:"embedded;embeddedPrefix:impact_"`
	RequiresERPSync        bool           `gorm:"column:requires_erp_sync;not null;default:false"`
	ERPSyncStatus          *string        `gorm:"column:erp_sync_status;type:varchar(32)"`
	CreatedAt              time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt              time.Time      `gorm:"autoUpdateTime:false"`
	Version                int            `gorm:"not null;default:0"`
	Changes                []ChangeDTO    `gorm:"foreignKey:AmendmentID;constraint:OnDelete:CASCADE"`
}

func (AmendmentDTO) TableName() string {
	return "amendments"
}

// ImpactDTO holds the embedded assessment; Assessed is false when none was computed.
type ImpactDTO struct {
	Assessed           bool                `gorm:"not null;default:false"`
	Level              string              `gorm:"type:varchar(16)"`
	FinancialImpact    decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	DeliveryImpactDays *int                `gorm:"type:integer"`
	AffectsPricing     bool                `gorm:"not null;default:false"`
	AffectsDelivery    bool                `gorm:"not null;default:false"`
	AffectsQuality     bool                `gorm:"not null;default:false"`
	AffectsCompliance  bool                `gorm:"not null;default:false"`
	RiskFactors        pq.StringArray      `gorm:"type:text[]"`
	MitigationActions  pq.StringArray      `gorm:"type:text[]"`
	AssessedAt         *time.Time          `gorm:"type:timestamptz"`
	Version            string              `gorm:"type:varchar(16)"`
}

// ChangeDTO is one amendment_changes row. Values use order.Value's encoding;
// NULL is a null value.
type ChangeDTO struct {
	AmendmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"primaryKey;autoIncrement:false"`
	Field       string    `gorm:"type:varchar(32);not null"`
	OldValue    *string   `gorm:"type:text"`
	NewValue    *string   `gorm:"type:text"`
	Reason      string    `gorm:"type:text;not null;default:''"`
}

func (ChangeDTO) TableName() string {
	return "amendment_changes"
}

func fromDomain(a *amendment.Amendment) AmendmentDTO {
	id := a.ID().Bytes()

	changes := make([]ChangeDTO, 0, len(a.Changes()))
	for i, c := range a.Changes() {
		changes = append(changes, ChangeDTO{
			AmendmentID: id,
			Position:    i,
			Field:       c.Field().String(),
			OldValue:    encode(c.OldValue()),
			NewValue:    encode(c.NewValue()),
			Reason:      c.Reason(),
		})
	}

	return AmendmentDTO{
		ID:                     id,
		OrderID:                a.OrderID().Bytes(),
		Number:                 a.Number().String(),
		Type:                   a.Type().String(),
		Reason:                 a.Reason().String(),
		Priority:               a.Priority().String(),
		Status:                 a.Status().String(),
		ProposedByCompanyID:    a.ProposedBy().Bytes(),
		RequiresApprovalFromID: a.RequiresApprovalFrom().Bytes(),
		ProposedAt:             a.ProposedAt(),
		ApprovedAt:             a.ApprovedAt(),
		AppliedAt:              a.AppliedAt(),
		ExpiresAt:              a.ExpiresAt(),
		Notes:                  a.Notes(),
		ApprovalNotes:          a.ApprovalNotes(),
		SupportingDocuments:    pq.StringArray(a.SupportingDocuments()),
		Impact:                 impactFromDomain(a.Impact()),
		RequiresERPSync:        a.RequiresERPSync(),
		ERPSyncStatus:          a.ERPSyncStatus(),
		CreatedAt:              a.CreatedAt(),
		UpdatedAt:              a.UpdatedAt(),
		Version:                a.Version(),
		Changes:                changes,
	}
}

func impactFromDomain(ia *amendment.ImpactAssessment) ImpactDTO {
	if ia == nil {
		return ImpactDTO{}
	}
	f := ia.Facts()
	dto := ImpactDTO{
		Assessed:           true,
		Level:              f.Level.String(),
		DeliveryImpactDays: f.DeliveryImpactDays,
		AffectsPricing:     f.AffectsPricing,
		AffectsDelivery:    f.AffectsDelivery,
		AffectsQuality:     f.AffectsQuality,
		AffectsCompliance:  f.AffectsCompliance,
		RiskFactors:        pq.StringArray(f.RiskFactors),
		MitigationActions:  pq.StringArray(f.MitigationActions),
		AssessedAt:         &f.AssessedAt,
		Version:            f.Version,
	}
	if f.FinancialImpact != nil {
		dto.FinancialImpact = decimal.NewNullDecimal(*f.FinancialImpact)
	}
	return dto
}

func encode(v order.Value) *string {
	s, ok := v.Encode()
	if !ok {
		return nil
	}
	return &s
}

func toDomain(dto AmendmentDTO) (*amendment.Amendment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	proposer, err := kernel.UUIDFromBytes(dto.ProposedByCompanyID[:])
	if err != nil {
		return nil, err
	}
	approver, err := kernel.UUIDFromBytes(dto.RequiresApprovalFromID[:])
	if err != nil {
		return nil, err
	}
	number, err := amendment.ParseNumber(dto.Number)
	if err != nil {
		return nil, err
	}
	typ, err := amendment.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}
	reason, err := amendment.ParseReason(dto.Reason)
	if err != nil {
		return nil, err
	}
	priority, err := amendment.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	status, err := amendment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	impact, err := impactToDomain(dto.Impact)
	if err != nil {
		return nil, err
	}

	changes := make([]amendment.Change, 0, len(dto.Changes))
	for _, c := range dto.Changes {
		change, changeErr := changeToDomain(c)
		if changeErr != nil {
			return nil, changeErr
		}
		changes = append(changes, change)
	}

	return amendment.Restore(amendment.State{
		Proposal: amendment.Proposal{
			ID:                   id,
			OrderID:              orderID,
			Number:               number,
			Type:                 typ,
			Reason:               reason,
			Priority:             priority,
			Changes:              changes,
			ProposedBy:           proposer,
			RequiresApprovalFrom: approver,
			Notes:                dto.Notes,
			SupportingDocuments:  dto.SupportingDocuments,
			ExpiresAt:            utc(dto.ExpiresAt),
			Impact:               impact,
		},
		Status:        status,
		ProposedAt:    dto.ProposedAt.UTC(),
		ApprovedAt:    utc(dto.ApprovedAt),
		AppliedAt:     utc(dto.AppliedAt),
		ApprovalNotes: dto.ApprovalNotes,
		RequiresERP:   dto.RequiresERPSync,
		ERPSyncStatus: dto.ERPSyncStatus,
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
		Version:       dto.Version,
	})
}

func impactToDomain(dto ImpactDTO) (*amendment.ImpactAssessment, error) {
	if !dto.Assessed {
		return nil, nil
	}
	level, err := amendment.ParseImpactLevel(dto.Level)
	if err != nil {
		return nil, err
	}
	facts := amendment.ImpactFacts{
		Level:              level,
		DeliveryImpactDays: dto.DeliveryImpactDays,
		AffectsPricing:     dto.AffectsPricing,
		AffectsDelivery:    dto.AffectsDelivery,
		AffectsQuality:     dto.AffectsQuality,
		AffectsCompliance:  dto.AffectsCompliance,
		RiskFactors:        dto.RiskFactors,
		MitigationActions:  dto.MitigationActions,
		Version:            dto.Version,
	}
	if dto.FinancialImpact.Valid {
		facts.FinancialImpact = &dto.FinancialImpact.Decimal
	}
	if dto.AssessedAt != nil {
		facts.AssessedAt = dto.AssessedAt.UTC()
	}
	return amendment.NewImpactAssessment(facts)
}

func changeToDomain(dto ChangeDTO) (amendment.Change, error) {
	field, err := order.ParseField(dto.Field)
	if err != nil {
		return amendment.Change{}, err
	}
	oldValue, err := order.DecodeValue(field, dto.OldValue)
	if err != nil {
		return amendment.Change{}, err
	}
	newValue, err := order.DecodeValue(field, dto.NewValue)
	if err != nil {
		return amendment.Change{}, err
	}
	return amendment.NewChange(field, oldValue, newValue, dto.Reason)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
