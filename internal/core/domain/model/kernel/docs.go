// Package kernel holds the value objects shared by every aggregate in the marketplace:
// identifiers (UUID), geographic positions (Location), amounts of money in minor units
// (Money) and the Clock abstraction used wherever the domain needs "now".
//
// Values are immutable once constructed. Zero values fail Validate, so an aggregate
// can never silently carry an identifier or location that skipped its constructor.
package kernel
