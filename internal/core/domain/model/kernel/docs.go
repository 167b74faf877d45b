// Package kernel holds the primitives shared by every aggregate of the amendment engine:
// identifiers, the clock abstraction used for expiration checks, and the domain event
// contract collected by the unit of work after a successful commit.
package kernel
