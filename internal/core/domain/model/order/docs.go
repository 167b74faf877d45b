// Package order models the purchase order as seen by the amendment engine.
//
// Orders are owned by the ordering subsystem. This package only exposes the
// fields an amendment may change, the two counterparties, and the lifecycle
// status that decides which amendment types are allowed. The single mutation
// path is Order.Apply, used when an approved amendment is applied.
//
// Amendable fields form a closed set (see Field). Each field has a fixed Kind,
// and values travel as the tagged union Value so that the impact assessor and
// validators dispatch with an exhaustive switch instead of matching names.
package order
