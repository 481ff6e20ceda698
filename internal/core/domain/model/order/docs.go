// Package order provides domain entities and business logic for production
// order management in the platetrack system. It implements the Order aggregate
// root with workflow lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, stage progress, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - WorkflowTemplate: The configurable per-product-line set of prepress sub-processes
//   - Dimensions: The declared plate geometry and its processed-area computation
//
// Key business rules:
//   - Order status follows the workflow: Submitted -> Designing -> DesignDone ->
//     InPrepress -> ReadyForDelivery -> Delivered -> Completed
//   - OnHold and Cancelled are operator overrides reachable from any non-terminal status
//   - The prepress sub-process set is fixed per order by its workflow template
//   - Completing all sub-processes surfaces readiness but never auto-advances status
//   - Solvent usage is metered at most once per order via the usage-recorded latch
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
