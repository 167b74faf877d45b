package services

import (
	"fmt"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// percentThresholds are the inclusive upper bounds of the minimal, moderate and
// significant levels; anything above the last bound is critical.
type percentThresholds [3]decimal.Decimal

func thresholds(minimal, moderate, significant int64) percentThresholds {
	return percentThresholds{
		decimal.NewFromInt(minimal),
		decimal.NewFromInt(moderate),
		decimal.NewFromInt(significant),
	}
}

var (
	quantityThresholds  = thresholds(5, 15, 30)
	unitPriceThresholds = thresholds(2, 10, 25)
	receivedThresholds  = thresholds(2, 10, 20)
	dateThresholds      = [3]int{3, 14, 30}

	hundred = decimal.NewFromInt(100)
)

func (t percentThresholds) level(pct decimal.Decimal) amendment.ImpactLevel {
	switch {
	case pct.LessThanOrEqual(t[0]):
		return amendment.ImpactMinimal
	case pct.LessThanOrEqual(t[1]):
		return amendment.ImpactModerate
	case pct.LessThanOrEqual(t[2]):
		return amendment.ImpactSignificant
	default:
		return amendment.ImpactCritical
	}
}

// ImpactAssessor computes the financial, delivery and quality effect of a proposal.
//
// Every change is assessed on its own and the overall level is the most severe
// one encountered. Financial impact accumulates across quantity, unit price and
// received quantity changes; delivery impact accumulates date shifts in days.
type ImpactAssessor struct{}

func NewImpactAssessor() ImpactAssessor {
	return ImpactAssessor{}
}

// impactDraft accumulates per-change results before they are frozen into an assessment.
type impactDraft struct {
	level      amendment.ImpactLevel
	financial  decimal.Decimal
	hasMoney   bool
	days       int
	hasDays    bool
	facts      amendment.ImpactFacts
	matchedAny bool
}

func (d *impactDraft) raise(level amendment.ImpactLevel) {
	d.level = d.level.Max(level)
}

func (d *impactDraft) addMoney(v decimal.Decimal) {
	d.financial = d.financial.Add(v)
	d.hasMoney = true
}

func (d *impactDraft) note(risk, mitigation string) {
	if risk != "" {
		d.facts.RiskFactors = append(d.facts.RiskFactors, risk)
	}
	if mitigation != "" {
		d.facts.MitigationActions = append(d.facts.MitigationActions, mitigation)
	}
}

// Assess returns nil when no change concerns a known order field.
func (s ImpactAssessor) Assess(
	changes []amendment.Change,
	o *order.Order,
	now time.Time,
) (*amendment.ImpactAssessment, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	d := &impactDraft{level: amendment.ImpactMinimal}
	for _, c := range changes {
		switch c.Field() {
		case order.FieldQuantity:
			s.assessQuantity(d, c, o)
		case order.FieldUnitPrice:
			s.assessUnitPrice(d, c, o)
		case order.FieldDeliveryDate:
			s.assessDeliveryDate(d, c)
		case order.FieldDeliveryLocation:
			s.assessDeliveryLocation(d)
		case order.FieldComposition:
			s.assessComposition(d)
		case order.FieldReceivedQuantity:
			s.assessReceivedQuantity(d, c, o)
		case order.FieldUnknown:
			continue
		}
		d.matchedAny = true
	}

	if !d.matchedAny {
		return nil, nil
	}

	facts := d.facts
	facts.Level = d.level
	facts.AssessedAt = now
	facts.Version = amendment.AssessmentVersion
	if d.hasMoney {
		rounded := d.financial.Round(2)
		facts.FinancialImpact = &rounded
	}
	if d.hasDays {
		days := d.days
		facts.DeliveryImpactDays = &days
	}
	return amendment.NewImpactAssessment(facts)
}

func (s ImpactAssessor) assessQuantity(d *impactDraft, c amendment.Change, o *order.Order) {
	oldQty, newQty, ok := numbers(c)
	if !ok {
		return
	}
	diff := newQty.Sub(oldQty)
	d.addMoney(diff.Mul(o.UnitPrice()))

	pct, level := percentLevel(diff, oldQty, quantityThresholds)
	d.raise(level)
	switch {
	case diff.IsPositive():
		d.note(
			fmt.Sprintf("Quantity increase of %s%% may exceed supplier capacity", pct.StringFixed(1)),
			"Confirm production capacity with the supplier",
		)
	case diff.IsNegative():
		d.note(
			fmt.Sprintf("Quantity decrease of %s%% may fall below minimum order quantity", pct.StringFixed(1)),
			"Check minimum order commitments before approving",
		)
	}
}

func (s ImpactAssessor) assessUnitPrice(d *impactDraft, c amendment.Change, o *order.Order) {
	d.facts.AffectsPricing = true
	oldPrice, newPrice, ok := numbers(c)
	if !ok {
		return
	}
	diff := newPrice.Sub(oldPrice)
	d.addMoney(diff.Mul(o.Quantity()))

	pct, level := percentLevel(diff, oldPrice, unitPriceThresholds)
	d.raise(level)
	switch {
	case diff.IsPositive():
		d.note(
			fmt.Sprintf("Unit price increase of %s%% raises total order cost", pct.StringFixed(1)),
			"Review budget approval for the price increase",
		)
	case diff.IsNegative():
		d.note(
			fmt.Sprintf("Unit price decrease of %s%% may indicate specification or margin pressure", pct.StringFixed(1)),
			"Verify product specifications are unchanged",
		)
	}
}

func (s ImpactAssessor) assessDeliveryDate(d *impactDraft, c amendment.Change) {
	d.facts.AffectsDelivery = true
	if c.NewValue().IsNull() {
		d.note("Delivery date is being removed", "Agree on a replacement delivery date")
		return
	}
	if c.OldValue().IsNull() {
		d.note("Delivery date is set for the first time", "")
		return
	}

	delta := int(c.NewValue().Date().Sub(c.OldValue().Date()).Hours() / 24)
	d.days += delta
	d.hasDays = true

	abs := delta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= dateThresholds[0]:
		d.raise(amendment.ImpactMinimal)
	case abs <= dateThresholds[1]:
		d.raise(amendment.ImpactModerate)
	case abs <= dateThresholds[2]:
		d.raise(amendment.ImpactSignificant)
	default:
		d.raise(amendment.ImpactCritical)
	}

	switch {
	case delta > 0:
		d.note(
			fmt.Sprintf("Delivery delayed by %d days", delta),
			"Adjust downstream production and sales schedules",
		)
	case delta < 0:
		d.note(
			fmt.Sprintf("Delivery brought forward by %d days", -delta),
			"Confirm warehouse receiving capacity for the earlier date",
		)
	}
}

func (s ImpactAssessor) assessDeliveryLocation(d *impactDraft) {
	d.facts.AffectsDelivery = true
	d.raise(amendment.ImpactModerate)
	d.note(
		"Delivery location change affects logistics routing and transport cost",
		"Re-quote transport and update shipping documents",
	)
}

func (s ImpactAssessor) assessComposition(d *impactDraft) {
	d.facts.AffectsQuality = true
	d.facts.AffectsCompliance = true
	d.raise(amendment.ImpactModerate)
	d.note(
		"Composition change may invalidate product certifications and origin data",
		"Re-validate certifications and traceability records for the new composition",
	)
}

// assessReceivedQuantity measures against the previously recorded received
// quantity, falling back to the ordered quantity.
func (s ImpactAssessor) assessReceivedQuantity(d *impactDraft, c amendment.Change, o *order.Order) {
	d.facts.AffectsDelivery = true
	if c.NewValue().IsNull() {
		return
	}
	baseline, recorded := o.ReceivedQuantity()
	if !recorded {
		baseline = o.Quantity()
	}
	diff := c.NewValue().Number().Sub(baseline)
	d.addMoney(diff.Mul(o.UnitPrice()))

	pct, level := percentLevel(diff, baseline, receivedThresholds)
	d.raise(level)
	switch {
	case diff.IsNegative():
		d.note(
			fmt.Sprintf("Received quantity is %s%% below the expected quantity", pct.StringFixed(1)),
			"Raise a delivery shortage claim with the supplier",
		)
	case diff.IsPositive():
		d.note(
			fmt.Sprintf("Received quantity exceeds the expected quantity by %s%%", pct.StringFixed(1)),
			"Agree on invoicing or return of the excess goods",
		)
	}
}

func numbers(c amendment.Change) (decimal.Decimal, decimal.Decimal, bool) {
	if c.OldValue().IsNull() || c.NewValue().IsNull() {
		return decimal.Zero, decimal.Zero, false
	}
	return c.OldValue().Number(), c.NewValue().Number(), true
}

// percentLevel returns |diff/base|*100 and its level. A zero base is critical
// unless nothing changed.
func percentLevel(diff, base decimal.Decimal, t percentThresholds) (decimal.Decimal, amendment.ImpactLevel) {
	if base.IsZero() {
		if diff.IsZero() {
			return decimal.Zero, amendment.ImpactMinimal
		}
		return hundred, amendment.ImpactCritical
	}
	pct := diff.Div(base).Abs().Mul(hundred)
	return pct, t.level(pct)
}
