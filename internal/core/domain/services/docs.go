// Package services contains stateless domain services that implement business
// logic spanning multiple aggregates or providing derived computations.
//
// The package includes:
//   - ConsumptionReporter: read-only derived views over the solvent ledger
//     (monthly rollups, days-remaining estimate from consumption velocity)
//
// Domain services hold no state and are safe for concurrent use.
package services
