package amendment

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssessmentVersion identifies the rule set that produced an assessment.
const AssessmentVersion = "1.0"

// ImpactLevel is the coarse severity of a proposal. Levels are ordered.
type ImpactLevel int

const (
	ImpactUnknown ImpactLevel = iota
	ImpactMinimal
	ImpactModerate
	ImpactSignificant
	ImpactCritical
)

func getImpactLevelStrings() map[ImpactLevel]string {
	return map[ImpactLevel]string{
		ImpactMinimal:     "minimal",
		ImpactModerate:    "moderate",
		ImpactSignificant: "significant",
		ImpactCritical:    "critical",
	}
}

func ParseImpactLevel(s string) (ImpactLevel, error) {
	return parseEnum(getImpactLevelStrings(), "impact level", s)
}

func (l ImpactLevel) String() string {
	return enumName(getImpactLevelStrings(), l)
}

func (l ImpactLevel) Validate() error {
	return validateEnum(getImpactLevelStrings(), "impact level", l)
}

// Max returns the more severe of l and other.
func (l ImpactLevel) Max(other ImpactLevel) ImpactLevel {
	if other > l {
		return other
	}
	return l
}

// ImpactFacts is the raw content of an ImpactAssessment.
type ImpactFacts struct {
	Level              ImpactLevel
	FinancialImpact    *decimal.Decimal
	DeliveryImpactDays *int
	AffectsPricing     bool
	AffectsDelivery    bool
	AffectsQuality     bool
	AffectsCompliance  bool
	RiskFactors        []string
	MitigationActions  []string
	AssessedAt         time.Time
	Version            string
}

// ImpactAssessment is the immutable result of assessing a proposal.
type ImpactAssessment struct {
	facts ImpactFacts
}

// NewImpactAssessment validates the level and copies facts.
func NewImpactAssessment(facts ImpactFacts) (*ImpactAssessment, error) {
	if err := facts.Level.Validate(); err != nil {
		return nil, err
	}
	if facts.Version == "" {
		facts.Version = AssessmentVersion
	}
	facts.RiskFactors = append([]string(nil), facts.RiskFactors...)
	facts.MitigationActions = append([]string(nil), facts.MitigationActions...)
	if facts.FinancialImpact != nil {
		v := *facts.FinancialImpact
		facts.FinancialImpact = &v
	}
	if facts.DeliveryImpactDays != nil {
		v := *facts.DeliveryImpactDays
		facts.DeliveryImpactDays = &v
	}
	return &ImpactAssessment{facts: facts}, nil
}

func (a *ImpactAssessment) Level() ImpactLevel {
	return a.facts.Level
}

// FinancialImpact is the signed currency effect, absent when no change moves money.
func (a *ImpactAssessment) FinancialImpact() (decimal.Decimal, bool) {
	if a.facts.FinancialImpact == nil {
		return decimal.Zero, false
	}
	return *a.facts.FinancialImpact, true
}

// DeliveryImpactDays is the signed delivery shift, absent when no date changes.
func (a *ImpactAssessment) DeliveryImpactDays() (int, bool) {
	if a.facts.DeliveryImpactDays == nil {
		return 0, false
	}
	return *a.facts.DeliveryImpactDays, true
}

func (a *ImpactAssessment) AffectsPricing() bool {
	return a.facts.AffectsPricing
}

func (a *ImpactAssessment) AffectsDelivery() bool {
	return a.facts.AffectsDelivery
}

func (a *ImpactAssessment) AffectsQuality() bool {
	return a.facts.AffectsQuality
}

func (a *ImpactAssessment) AffectsCompliance() bool {
	return a.facts.AffectsCompliance
}

func (a *ImpactAssessment) AssessedAt() time.Time {
	return a.facts.AssessedAt
}

func (a *ImpactAssessment) Version() string {
	return a.facts.Version
}

func (a *ImpactAssessment) RiskFactors() []string {
	return append([]string(nil), a.facts.RiskFactors...)
}

func (a *ImpactAssessment) MitigationActions() []string {
	return append([]string(nil), a.facts.MitigationActions...)
}

// Facts returns a copy of the assessment content, used by persistence adapters.
func (a *ImpactAssessment) Facts() ImpactFacts {
	facts := a.facts
	facts.RiskFactors = a.RiskFactors()
	facts.MitigationActions = a.MitigationActions()
	return facts
}
