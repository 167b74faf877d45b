package order

import (
	"fmt"

	"amendments/internal/pkg/errs"
)

// Status is the purchase order lifecycle state.
//
//	Draft ──> Pending ──> Confirmed ──> InTransit ──> Shipped ──> Delivered
//	  └──────────┴───────────┴─────> Cancelled
//
// Draft and Pending are the pre-confirmation statuses; Confirmed through
// Delivered are post-confirmation. Transitions are driven by the ordering
// subsystem and are not modelled here.
type Status int

const (
	// Unknown catches uninitialised Status values.
	Unknown Status = iota
	Draft
	Pending
	Confirmed
	InTransit
	Shipped
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Draft:     "draft",
		Pending:   "pending",
		Confirmed: "confirmed",
		InTransit: "in_transit",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus resolves the persisted name of a status.
func ParseStatus(name string) (Status, error) {
	for s, str := range getStatusStrings() {
		if str == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsPreConfirmation reports whether the terms of the order are still negotiable.
func (s Status) IsPreConfirmation() bool {
	return s == Draft || s == Pending
}

// IsPostConfirmation reports whether the order was confirmed by both parties and not cancelled.
func (s Status) IsPostConfirmation() bool {
	return s == Confirmed || s == InTransit || s == Shipped || s == Delivered
}

// IsIn reports whether s is one of statuses.
func (s Status) IsIn(statuses ...Status) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// Names renders statuses for error messages.
func Names(statuses ...Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
