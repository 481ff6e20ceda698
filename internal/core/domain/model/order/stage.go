package order

import "time"

// StageName identifies one of the fixed top-level production stages.
type StageName string

// The four production stages every order moves through.
const (
	StageDesign     StageName = "design"
	StagePrepress   StageName = "prepress"
	StageProduction StageName = "production"
	StageDelivery   StageName = "delivery"
)

// getStageNames returns the stages in workflow order.
func getStageNames() []StageName {
	return []StageName{StageDesign, StagePrepress, StageProduction, StageDelivery}
}

// StageStatus represents the progress of a single production stage.
type StageStatus int

const (
	StagePending StageStatus = iota
	StageInProgress
	StageCompleted
)

// String returns the human-readable name of the stage status.
func (s StageStatus) String() string {
	switch s {
	case StageInProgress:
		return "InProgress"
	case StageCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// StageState holds the progress of one production stage.
// CompletedAt is set only while Status is StageCompleted.
type StageState struct {
	Status      StageStatus `json:"status"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}
