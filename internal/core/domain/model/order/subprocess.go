package order

import (
	"fmt"
	"time"
)

// SubProcessStatus represents the progress of a single prepress sub-process.
// Sub-processes are binary: either still pending or completed.
type SubProcessStatus int

const (
	SubProcessPending SubProcessStatus = iota
	SubProcessCompleted
)

// String returns the human-readable name of the sub-process status.
func (s SubProcessStatus) String() string {
	if s == SubProcessCompleted {
		return "Completed"
	}
	return "Pending"
}

// SubProcessStatusFromString parses a display name back into a status.
func SubProcessStatusFromString(s string) (SubProcessStatus, error) {
	switch s {
	case "Pending":
		return SubProcessPending, nil
	case "Completed":
		return SubProcessCompleted, nil
	default:
		return SubProcessPending, fmt.Errorf("%w: %q", ErrUnknownSubProcessStatus, s)
	}
}

// Validate checks the status is one of the two known values.
func (s SubProcessStatus) Validate() error {
	if s != SubProcessPending && s != SubProcessCompleted {
		return ErrUnknownSubProcessStatus
	}
	return nil
}

// SubProcessState holds the progress of one named prepress sub-process.
// The set of sub-processes is fixed per order by its workflow template.
// CompletedAt is set on the transition to Completed and cleared on the
// transition back to Pending.
type SubProcessState struct {
	Name        string           `json:"name"`
	Status      SubProcessStatus `json:"status"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}
