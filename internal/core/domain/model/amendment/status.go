package amendment

import (
	"amendments/internal/pkg/errs"
)

// Status is the amendment lifecycle state.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusRejected
	StatusApplied
	StatusCancelled
	StatusExpired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending:   "pending",
		StatusApproved:  "approved",
		StatusRejected:  "rejected",
		StatusApplied:   "applied",
		StatusCancelled: "cancelled",
		StatusExpired:   "expired",
	}
}

func ParseStatus(s string) (Status, error) {
	return parseEnum(getStatusStrings(), "amendment status", s)
}

func (s Status) String() string {
	return enumName(getStatusStrings(), s)
}

func (s Status) Validate() error {
	return validateEnum(getStatusStrings(), "amendment status", s)
}

// IsTerminal reports whether no further transition or mutation is allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusApplied, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// Approve transitions pending to approved.
func (s Status) Approve() (Status, error) {
	return s.transition(StatusApproved, StatusPending)
}

// Reject transitions pending to rejected.
func (s Status) Reject() (Status, error) {
	return s.transition(StatusRejected, StatusPending)
}

// Apply transitions approved to applied.
func (s Status) Apply() (Status, error) {
	return s.transition(StatusApplied, StatusApproved)
}

// Cancel transitions pending to cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(StatusCancelled, StatusPending)
}

// Expire transitions pending to expired.
func (s Status) Expire() (Status, error) {
	return s.transition(StatusExpired, StatusPending)
}

func (s Status) transition(to, from Status) (Status, error) {
	if s != from {
		return StatusUnknown, s.conflict(from)
	}
	return to, nil
}

// ValidateMutable rejects edits of anything but a pending amendment.
func (s Status) ValidateMutable() error {
	if s != StatusPending {
		return s.conflict(StatusPending)
	}
	return nil
}

func (s Status) conflict(allowed ...Status) error {
	if s.IsTerminal() {
		return errs.NewStatusConflictError("amendment", s.String())
	}
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, a.String())
	}
	return errs.NewStatusConflictError("amendment", s.String(), names...)
}
