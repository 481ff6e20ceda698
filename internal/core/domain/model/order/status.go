package order

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when a requested status change is not
// allowed by the order workflow adjacency rules.
var ErrIllegalTransition = errors.New("illegal status transition")

// Status represents the lifecycle state of a production order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct production workflow.
//
// State transitions:
//
//	Submitted ──> Designing ──> DesignDone ──> InPrepress ──> ReadyForDelivery ──┬──> Delivered ──> Completed
//	                                                                             └──> Completed
//
// OnHold and Cancelled are override states reachable from any non-terminal
// status. They are terminal: no further automatic transitions happen from them.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Submitted is the initial status when an order is first received.
	Submitted

	// Designing indicates design work on the order has started.
	Designing

	// DesignDone indicates the design stage is finished and approved.
	DesignDone

	// InPrepress indicates plate prepress sub-processes are underway.
	InPrepress

	// ReadyForDelivery indicates prepress was reviewed and the order awaits shipment.
	ReadyForDelivery

	// Delivered indicates the finished plates reached the client.
	Delivered

	// Completed indicates the order is closed out.
	// This is a final state with no further transitions allowed.
	Completed

	// OnHold indicates the order was paused by an operator.
	// Terminal for automatic transitions; only reachable from non-terminal states.
	OnHold

	// Cancelled indicates the order was abandoned.
	// Terminal for automatic transitions; only reachable from non-terminal states.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "Unknown",
		Submitted:        "Submitted",
		Designing:        "Designing",
		DesignDone:       "DesignDone",
		InPrepress:       "InPrepress",
		ReadyForDelivery: "ReadyForDelivery",
		Delivered:        "Delivered",
		Completed:        "Completed",
		OnHold:           "OnHold",
		Cancelled:        "Cancelled",
	}
}

// getForwardTransitions returns the forward adjacency table of the workflow.
// Override edges to OnHold/Cancelled are handled separately in CanTransitionTo.
func getForwardTransitions() map[Status][]Status {
	return map[Status][]Status{
		Submitted:        {Designing},
		Designing:        {DesignDone},
		DesignDone:       {InPrepress},
		InPrepress:       {ReadyForDelivery},
		ReadyForDelivery: {Delivered, Completed},
		Delivered:        {Completed},
	}
}

// StatusFromString parses a status from its string representation.
// Returns Unknown and an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%q is not a valid status", s)
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return fmt.Errorf("%d is not a valid status", s)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid status", s)
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
// Completed, OnHold, and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	return s == Completed || s == OnHold || s == Cancelled
}

// CanTransitionTo reports whether a transition from s to target is legal.
//
// A transition is legal when either:
//   - target is the next forward step in the workflow adjacency table, or
//   - target is OnHold or Cancelled and s is not terminal (operator override).
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}

	if s.IsTerminal() {
		return false
	}

	if target == OnHold || target == Cancelled {
		return true
	}

	for _, next := range getForwardTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition to target.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, error wrapping ErrIllegalTransition) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIllegalTransition, err)
	}

	if !s.CanTransitionTo(target) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
	}

	return target, nil
}
