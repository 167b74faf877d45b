// Package amendment implements the Amendment aggregate: a proposed, trackable
// change to one or more fields of a purchase order, negotiated between the
// order's two companies.
//
// Lifecycle:
//
//	pending ──┬──> approved ──> applied
//	          ├──> rejected
//	          ├──> cancelled
//	          └──> expired
//
// Rejected, applied, cancelled and expired are terminal. An amendment whose
// expiresAt has passed is treated as expired by every read and guard even
// before a sweep persists the expired status (see EffectiveStatus).
package amendment
