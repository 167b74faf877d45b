package amendment

import (
	"time"

	"amendments/internal/core/domain/model/kernel"
)

const (
	EventProposed  = "amendment.proposed"
	EventRevised   = "amendment.revised"
	EventApproved  = "amendment.approved"
	EventRejected  = "amendment.rejected"
	EventApplied   = "amendment.applied"
	EventCancelled = "amendment.cancelled"
	EventExpired   = "amendment.expired"
)

// EventPayload is the body of every amendment event.
type EventPayload struct {
	AmendmentID     string    `json:"amendmentId"`
	AmendmentNumber string    `json:"amendmentNumber"`
	OrderID         string    `json:"orderId"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	ProposedBy      string    `json:"proposedByCompanyId"`
	RequiresFrom    string    `json:"requiresApprovalFromCompanyId"`
	Summary         string    `json:"summary"`
	ImpactLevel     string    `json:"impactLevel,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Event is a lifecycle fact about one amendment.
type Event struct {
	id          kernel.UUID
	name        string
	aggregateID kernel.UUID
	occurredAt  time.Time
	payload     EventPayload
}

var _ kernel.DomainEvent = Event{}

func (e Event) EventID() kernel.UUID {
	return e.id
}

func (e Event) EventName() string {
	return e.name
}

func (e Event) AggregateID() kernel.UUID {
	return e.aggregateID
}

func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e Event) Payload() any {
	return e.payload
}

func (a *Amendment) record(name, notes string, at time.Time) {
	payload := EventPayload{
		AmendmentID:     a.id.String(),
		AmendmentNumber: a.number.String(),
		OrderID:         a.orderID.String(),
		Type:            a.typ.String(),
		Status:          a.status.String(),
		Priority:        a.priority.String(),
		ProposedBy:      a.proposedBy.String(),
		RequiresFrom:    a.requiresApprovalFrom.String(),
		Summary:         a.PrimaryChangeDescription(),
		Notes:           notes,
		OccurredAt:      at,
	}
	if a.impact != nil {
		payload.ImpactLevel = a.impact.Level().String()
	}

	a.events = append(a.events, Event{
		id:          kernel.NewUUID(),
		name:        name,
		aggregateID: a.id,
		occurredAt:  at,
		payload:     payload,
	})
}
