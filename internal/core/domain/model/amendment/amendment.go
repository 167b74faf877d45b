package amendment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/optional"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmendmentIsNotConstructed is returned when an Amendment was not created through Propose or Restore.
	ErrAmendmentIsNotConstructed = errors.New("Amendment must be created via Propose or Restore constructor")
)

// Proposal carries everything needed to open a new amendment.
type Proposal struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	Number               Number
	Type                 Type
	Reason               Reason
	Priority             Priority
	Changes              []Change
	ProposedBy           kernel.UUID
	RequiresApprovalFrom kernel.UUID
	Notes                string
	SupportingDocuments  []string
	ExpiresAt            *time.Time
	Impact               *ImpactAssessment
}

// State is the complete persisted form of an amendment.
type State struct {
	Proposal
	Status        Status
	ProposedAt    time.Time
	ApprovedAt    *time.Time
	AppliedAt     *time.Time
	ApprovalNotes string
	RequiresERP   bool
	ERPSyncStatus *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
}

// Revision is a partial update by the proposer. Unset fields are left alone;
// a null ExpiresAt removes the expiration.
type Revision struct {
	Priority            optional.Value[Priority]
	Notes               optional.Value[string]
	SupportingDocuments optional.Value[[]string]
	ExpiresAt           optional.Value[time.Time]
}

// IsEmpty reports whether the revision changes nothing.
func (r Revision) IsEmpty() bool {
	return !r.Priority.IsSet() && !r.Notes.IsSet() && !r.SupportingDocuments.IsSet() && !r.ExpiresAt.IsSet()
}

// Amendment is a proposed modification of a purchase order awaiting, or
// having received, a decision from the counterparty.
type Amendment struct {
	id                   kernel.UUID
	orderID              kernel.UUID
	number               Number
	typ                  Type
	reason               Reason
	priority             Priority
	changes              []Change
	proposedBy           kernel.UUID
	requiresApprovalFrom kernel.UUID
	status               Status
	proposedAt           time.Time
	approvedAt           *time.Time
	appliedAt            *time.Time
	expiresAt            *time.Time
	notes                string
	approvalNotes        string
	supportingDocuments  []string
	impact               *ImpactAssessment
	requiresERPSync      bool
	erpSyncStatus        *string
	createdAt            time.Time
	updatedAt            time.Time
	version              int

	events        []kernel.DomainEvent
	isConstructed bool
}

// Propose opens a pending amendment at now and records EventProposed.
func Propose(p Proposal, now time.Time) (*Amendment, error) {
	a, err := build(State{
		Proposal:   p,
		Status:     StatusPending,
		ProposedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	if a.expiresAt != nil && !a.expiresAt.After(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expiresAt", errors.New("must lie in the future"))
	}

	a.record(EventProposed, a.notes, now)
	return a, nil
}

// Restore rehydrates an amendment from persistence. No events are recorded.
func Restore(s State) (*Amendment, error) {
	return build(s)
}

func build(s State) (*Amendment, error) {
	a := &Amendment{
		number:              s.Number,
		status:              s.Status,
		proposedAt:          s.ProposedAt,
		approvedAt:          copyTime(s.ApprovedAt),
		appliedAt:           copyTime(s.AppliedAt),
		expiresAt:           copyTime(s.ExpiresAt),
		notes:               strings.TrimSpace(s.Notes),
		approvalNotes:       s.ApprovalNotes,
		supportingDocuments: append([]string(nil), s.SupportingDocuments...),
		impact:              s.Impact,
		requiresERPSync:     s.RequiresERP,
		erpSyncStatus:       s.ERPSyncStatus,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		version:             s.Version,
		isConstructed:       true,
	}

	var numberErr error
	if s.Number.IsZero() {
		numberErr = errs.NewValueIsRequiredError("amendment number")
	}

	if err := errors.Join(
		a.setIDs(s.ID, s.OrderID),
		numberErr,
		a.setClassification(s.Type, s.Reason, s.Priority),
		a.setParties(s.ProposedBy, s.RequiresApprovalFrom),
		a.setChanges(s.Changes),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Amendment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAmendmentIsNotConstructed
	}
	return nil
}

func (a *Amendment) ID() kernel.UUID {
	return a.id
}

func (a *Amendment) OrderID() kernel.UUID {
	return a.orderID
}

func (a *Amendment) Number() Number {
	return a.number
}

func (a *Amendment) Type() Type {
	return a.typ
}

func (a *Amendment) Reason() Reason {
	return a.reason
}

func (a *Amendment) Priority() Priority {
	return a.priority
}

func (a *Amendment) ProposedBy() kernel.UUID {
	return a.proposedBy
}

func (a *Amendment) RequiresApprovalFrom() kernel.UUID {
	return a.requiresApprovalFrom
}

func (a *Amendment) ProposedAt() time.Time {
	return a.proposedAt
}

func (a *Amendment) ApprovedAt() *time.Time {
	return copyTime(a.approvedAt)
}

func (a *Amendment) AppliedAt() *time.Time {
	return copyTime(a.appliedAt)
}

func (a *Amendment) ExpiresAt() *time.Time {
	return copyTime(a.expiresAt)
}

func (a *Amendment) Notes() string {
	return a.notes
}

func (a *Amendment) ApprovalNotes() string {
	return a.approvalNotes
}

func (a *Amendment) Impact() *ImpactAssessment {
	return a.impact
}

func (a *Amendment) RequiresERPSync() bool {
	return a.requiresERPSync
}

func (a *Amendment) ERPSyncStatus() *string {
	return a.erpSyncStatus
}

func (a *Amendment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Amendment) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Amendment) Version() int {
	return a.version
}

// Status is the persisted status. Use EffectiveStatus for anything time-sensitive.
func (a *Amendment) Status() Status {
	return a.status
}

func (a *Amendment) Changes() []Change {
	return append([]Change(nil), a.changes...)
}

func (a *Amendment) SupportingDocuments() []string {
	return append([]string(nil), a.supportingDocuments...)
}

// IsExpired is true iff an expiration is set and now is past it.
func (a *Amendment) IsExpired(now time.Time) bool {
	return a.expiresAt != nil && now.After(*a.expiresAt)
}

// EffectiveStatus reports a pending amendment past its expiration as expired.
func (a *Amendment) EffectiveStatus(now time.Time) Status {
	if a.status == StatusPending && a.IsExpired(now) {
		return StatusExpired
	}
	return a.status
}

func (a *Amendment) CanBeApproved(now time.Time) bool {
	return a.status == StatusPending && !a.IsExpired(now)
}

func (a *Amendment) CanBeApplied(now time.Time) bool {
	return a.status == StatusApproved && !a.IsExpired(now)
}

// IsParty reports whether company proposed the amendment or must decide on it.
func (a *Amendment) IsParty(company kernel.UUID) bool {
	return company.IsEqual(a.proposedBy) || company.IsEqual(a.requiresApprovalFrom)
}

// PrimaryChangeDescription describes the first change, e.g. "unitPrice: 10 → 12".
func (a *Amendment) PrimaryChangeDescription() string {
	if len(a.changes) == 0 {
		return ""
	}
	return a.changes[0].Description()
}

// FinancialImpact is the assessed financial impact, zero when unassessed.
func (a *Amendment) FinancialImpact() decimal.Decimal {
	if a.impact == nil {
		return decimal.Zero
	}
	impact, _ := a.impact.FinancialImpact()
	return impact
}

// Revise applies the set fields of r. Only pending, unexpired amendments may be revised.
func (a *Amendment) Revise(r Revision, now time.Time) error {
	if err := a.guardPending(now); err != nil {
		return err
	}
	if r.IsEmpty() {
		return nil
	}

	if r.Priority.IsSet() {
		p, _ := r.Priority.Get()
		if err := p.Validate(); err != nil {
			return err
		}
		a.priority = p
	}
	if r.ExpiresAt.IsSet() {
		if at, ok := r.ExpiresAt.Get(); ok {
			if !at.After(now) {
				return errs.NewValueIsInvalidErrorWithCause("expiresAt", errors.New("must lie in the future"))
			}
			a.expiresAt = &at
		} else {
			a.expiresAt = nil
		}
	}
	if r.Notes.IsSet() {
		a.notes = strings.TrimSpace(r.Notes.OrElse(""))
	}
	if r.SupportingDocuments.IsSet() {
		a.supportingDocuments = append([]string(nil), r.SupportingDocuments.OrElse(nil)...)
	}

	a.updatedAt = now
	a.record(EventRevised, a.notes, now)
	return nil
}

// Approve records the approver's decision. The orchestrator applies the
// changes to the order and calls MarkApplied in the same transaction.
func (a *Amendment) Approve(notes string, now time.Time) error {
	if err := a.guardExpiry(now); err != nil {
		return err
	}
	next, err := a.status.Approve()
	if err != nil {
		return err
	}

	a.status = next
	a.approvalNotes = strings.TrimSpace(notes)
	a.approvedAt = &now
	a.updatedAt = now
	a.record(EventApproved, a.approvalNotes, now)
	return nil
}

func (a *Amendment) Reject(notes string, now time.Time) error {
	if err := a.guardExpiry(now); err != nil {
		return err
	}
	next, err := a.status.Reject()
	if err != nil {
		return err
	}

	a.status = next
	a.approvalNotes = strings.TrimSpace(notes)
	a.approvedAt = &now
	a.updatedAt = now
	a.record(EventRejected, a.approvalNotes, now)
	return nil
}

// ApplyTo writes every new value into o. It does not change the amendment status.
func (a *Amendment) ApplyTo(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.ID().IsEqual(a.orderID) {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("amendment %s belongs to order %s", a.number, a.orderID))
	}
	if err := a.guardExpiry(now); err != nil {
		return err
	}
	if a.status != StatusApproved {
		return a.status.conflict(StatusApproved)
	}
	for _, c := range a.changes {
		if err := o.Apply(c.Field(), c.NewValue()); err != nil {
			return err
		}
	}
	return nil
}

func (a *Amendment) MarkApplied(now time.Time) error {
	next, err := a.status.Apply()
	if err != nil {
		return err
	}

	a.status = next
	a.appliedAt = &now
	a.updatedAt = now
	a.record(EventApplied, "", now)
	return nil
}

// Cancel withdraws a pending, unexpired amendment.
func (a *Amendment) Cancel(now time.Time) error {
	if err := a.guardExpiry(now); err != nil {
		return err
	}
	next, err := a.status.Cancel()
	if err != nil {
		return err
	}

	a.status = next
	a.updatedAt = now
	a.record(EventCancelled, "", now)
	return nil
}

// Expire persists the expired status of a pending amendment whose expiration has passed.
func (a *Amendment) Expire(now time.Time) error {
	if !a.IsExpired(now) {
		return errs.NewBusinessRuleViolationError("expiration", fmt.Sprintf("amendment %s has not expired yet", a.number))
	}
	next, err := a.status.Expire()
	if err != nil {
		return err
	}

	a.status = next
	a.updatedAt = now
	a.record(EventExpired, "", now)
	return nil
}

// IncrementVersion is called by the repository after a successful optimistic write.
func (a *Amendment) IncrementVersion() {
	a.version++
}

// PullDomainEvents returns the recorded events and clears them.
func (a *Amendment) PullDomainEvents() []kernel.DomainEvent {
	events := a.events
	a.events = nil
	return events
}

func (a *Amendment) guardExpiry(now time.Time) error {
	if a.IsExpired(now) {
		return errs.NewExpiredError("amendment", a.number.String(), *a.expiresAt)
	}
	return nil
}

func (a *Amendment) guardPending(now time.Time) error {
	if err := a.guardExpiry(now); err != nil {
		return err
	}
	return a.status.ValidateMutable()
}

func (a *Amendment) setIDs(id, orderID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return err
	}
	a.id = id
	a.orderID = orderID
	return nil
}

func (a *Amendment) setClassification(t Type, r Reason, p Priority) error {
	if err := errors.Join(t.Validate(), r.Validate(), p.Validate()); err != nil {
		return err
	}
	a.typ = t
	a.reason = r
	a.priority = p
	return nil
}

func (a *Amendment) setParties(proposedBy, approver kernel.UUID) error {
	if err := errors.Join(proposedBy.Validate(), approver.Validate()); err != nil {
		return err
	}
	if proposedBy.IsEqual(approver) {
		return errs.NewValueIsInvalidErrorWithCause(
			"requiresApprovalFromCompanyId",
			errors.New("approver must differ from proposer"),
		)
	}
	a.proposedBy = proposedBy
	a.requiresApprovalFrom = approver
	return nil
}

func (a *Amendment) setChanges(changes []Change) error {
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}
	seen := make(map[order.Field]bool, len(changes))
	for i, c := range changes {
		if err := c.Field().Validate(); err != nil {
			return fmt.Errorf("changes[%d]: %w", i, err)
		}
		if seen[c.Field()] {
			return errs.NewValueIsInvalidErrorWithCause(
				"changes",
				fmt.Errorf("field %s is changed more than once", c.Field()),
			)
		}
		seen[c.Field()] = true
		if a.typ != TypeUnknown && !a.typ.AllowsField(c.Field()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"changes",
				fmt.Errorf("%s amendments cannot change %s", a.typ, c.Field()),
			)
		}
	}
	a.changes = append([]Change(nil), changes...)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
