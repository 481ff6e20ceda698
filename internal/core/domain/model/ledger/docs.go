// Package ledger provides the domain model for the shared washout-solvent
// inventory in the platetrack system.
//
// The package includes:
//   - Ledger: The singleton aggregate owning barrel stock, current volume, and settings
//   - UsageEvent: An immutable, append-only record of solvent consumed by one order
//   - Settings: The configurable cost and consumption parameters with patch-merge
//
// Key business rules:
//   - Refills add whole 200-liter barrels and never lose volume
//   - Usage is metered at most once per order
//   - Deductions may overdraw the stock, but never silently: the overdraw is
//     reported as a warning while the event is still recorded, because workflow
//     progress must not be blocked by inventory bookkeeping
//   - The fill percentage shown to operators is clamped to [0, 100]
package ledger
