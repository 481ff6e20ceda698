package order

import (
	"errors"
	"fmt"
	"time"

	"platetrack/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrUnknownSubProcess is returned when a sub-process name is not part of
	// the order's configured workflow template.
	ErrUnknownSubProcess = errors.New("unknown sub-process")

	// ErrUnknownSubProcessStatus is returned for sub-process status values
	// other than Pending and Completed.
	ErrUnknownSubProcessStatus = errors.New("unknown sub-process status")

	// ErrPrepressIncomplete is returned when prepress completion is requested
	// while at least one sub-process is still pending.
	ErrPrepressIncomplete = errors.New("prepress is incomplete")
)

// Order represents a printed-packaging production job. It is the aggregate root
// that manages the order workflow from submission through design, prepress,
// production, and delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - The sub-process set is fixed by the workflow template at creation
//   - Top-level status transitions follow the adjacency rules in Status
//   - Solvent usage is metered at most once per order (usageRecorded latch)
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. All mutations go through the
// workflow command handlers.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// status is the current top-level workflow state
	status Status

	// stages tracks per-stage progress (design, prepress, production, delivery)
	stages map[StageName]StageState

	// subProcesses is the ordered prepress step list fixed by the template
	subProcesses []SubProcessState

	// templateID names the workflow template the order was created with
	templateID TemplateID

	// dimensions is the declared plate geometry; nil until specified
	dimensions *Dimensions

	// usageRecorded guards against metering solvent consumption twice
	usageRecorded bool

	// version supports optimistic concurrency in persistence
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Submitted status with all stages pending and
// the sub-process set of the given workflow template.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - templateID: Registered workflow template for the product line
//   - dimensions: Declared plate geometry; may be nil when not yet known
//
// Returns an error if the id is invalid, the template is unknown, or the
// dimensions value was not properly constructed.
func NewOrder(id kernel.UUID, templateID TemplateID, dimensions *Dimensions) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	template, err := TemplateByID(templateID)
	if err != nil {
		return nil, err
	}

	if dimensions != nil {
		if err = dimensions.Validate(); err != nil {
			return nil, err
		}
	}

	stages := make(map[StageName]StageState, len(getStageNames()))
	for _, name := range getStageNames() {
		stages[name] = StageState{Status: StagePending}
	}

	return &Order{
		id:            id,
		status:        Submitted,
		stages:        stages,
		subProcesses:  template.InitialSubProcessStates(),
		templateID:    templateID,
		dimensions:    dimensions,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// Unlike NewOrder it accepts the full persisted state, including status,
// stage progress, the usage-recorded latch, and the optimistic version.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	stages map[StageName]StageState,
	subProcesses []SubProcessState,
	templateID TemplateID,
	dimensions *Dimensions,
	usageRecorded bool,
	version int,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if _, err := TemplateByID(templateID); err != nil {
		return nil, err
	}

	if dimensions != nil {
		if err := dimensions.Validate(); err != nil {
			return nil, err
		}
	}

	restoredStages := make(map[StageName]StageState, len(stages))
	for name, state := range stages {
		restoredStages[name] = state
	}

	restoredSubs := make([]SubProcessState, len(subProcesses))
	copy(restoredSubs, subProcesses)

	return &Order{
		id:            id,
		status:        status,
		stages:        restoredStages,
		subProcesses:  restoredSubs,
		templateID:    templateID,
		dimensions:    dimensions,
		usageRecorded: usageRecorded,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current top-level workflow status.
func (o *Order) Status() Status {
	return o.status
}

// TemplateID returns the workflow template the order was created with.
func (o *Order) TemplateID() TemplateID {
	return o.templateID
}

// Dimensions returns the declared plate geometry, or nil when not specified.
func (o *Order) Dimensions() *Dimensions {
	return o.dimensions
}

// UsageRecorded reports whether solvent consumption has already been metered
// for this order.
func (o *Order) UsageRecorded() bool {
	return o.usageRecorded
}

// Version returns the optimistic concurrency version loaded from persistence.
func (o *Order) Version() int {
	return o.version
}

// Stages returns a copy of the per-stage progress map.
func (o *Order) Stages() map[StageName]StageState {
	stages := make(map[StageName]StageState, len(o.stages))
	for name, state := range o.stages {
		stages[name] = state
	}
	return stages
}

// Stage returns the state of one production stage.
func (o *Order) Stage(name StageName) StageState {
	return o.stages[name]
}

// SubProcesses returns a copy of the ordered prepress sub-process states.
func (o *Order) SubProcesses() []SubProcessState {
	subs := make([]SubProcessState, len(o.subProcesses))
	copy(subs, o.subProcesses)
	return subs
}

// SubProcess returns the state of one named sub-process.
// Returns an error wrapping ErrUnknownSubProcess when the name is not part of
// the order's workflow template.
func (o *Order) SubProcess(name string) (SubProcessState, error) {
	for _, sub := range o.subProcesses {
		if sub.Name == name {
			return sub, nil
		}
	}
	return SubProcessState{}, fmt.Errorf("%w: %q", ErrUnknownSubProcess, name)
}

// UpdateSubProcess sets the status of one prepress sub-process.
//
// On the transition to Completed the sub-process records now as its completion
// time; on the transition back to Pending the timestamp is cleared. Setting the
// current status again is a no-op. The prepress stage state is recomputed after
// every change: InProgress once any sub-process is done, Completed once all
// are, back to Pending when none are.
//
// This method never changes the order's top-level status. The caller inspects
// AllSubProcessesCompleted to surface readiness for review.
//
// Returns:
//   - error wrapping ErrUnknownSubProcess if name is not in the template's set
//   - error wrapping ErrUnknownSubProcessStatus for invalid status values
func (o *Order) UpdateSubProcess(name string, status SubProcessStatus, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := status.Validate(); err != nil {
		return err
	}

	idx := -1
	for i, sub := range o.subProcesses {
		if sub.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSubProcess, name)
	}

	if o.subProcesses[idx].Status == status {
		return nil
	}

	o.subProcesses[idx].Status = status
	if status == SubProcessCompleted {
		completedAt := now
		o.subProcesses[idx].CompletedAt = &completedAt
	} else {
		o.subProcesses[idx].CompletedAt = nil
	}

	o.recomputePrepressStage(now)
	return nil
}

// AllSubProcessesCompleted reports whether every sub-process in the order's
// template is completed.
func (o *Order) AllSubProcessesCompleted() bool {
	for _, sub := range o.subProcesses {
		if sub.Status != SubProcessCompleted {
			return false
		}
	}
	return len(o.subProcesses) > 0
}

// CompletePrepress confirms the prepress stage is finished.
//
// Requires every sub-process to be completed; returns an error wrapping
// ErrPrepressIncomplete otherwise. The order's top-level status is not
// advanced: moving to ReadyForDelivery is a separate explicit manager action.
func (o *Order) CompletePrepress(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if !o.AllSubProcessesCompleted() {
		pending := 0
		for _, sub := range o.subProcesses {
			if sub.Status != SubProcessCompleted {
				pending++
			}
		}
		return fmt.Errorf("%w: %d sub-processes pending", ErrPrepressIncomplete, pending)
	}

	if o.stages[StagePrepress].Status != StageCompleted {
		completedAt := now
		o.stages[StagePrepress] = StageState{Status: StageCompleted, CompletedAt: &completedAt}
	}

	return nil
}

// ChangeStatus transitions the order to the target top-level status,
// validating the move against the workflow adjacency rules.
//
// Stage progress is kept consistent with the new status: entering Designing
// starts the design stage, DesignDone completes it, InPrepress starts the
// prepress stage, ReadyForDelivery completes production, and Delivered
// completes the delivery stage.
//
// Returns an error wrapping ErrIllegalTransition for illegal moves.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.applyStageEffects(newStatus, now)
	return nil
}

// MarkUsageRecorded sets the latch that prevents a second solvent usage event
// for this order. Safe to call repeatedly.
func (o *Order) MarkUsageRecorded() {
	o.usageRecorded = true
}

// NeedsUsageRecording reports whether completing the washout sub-process
// should trigger solvent metering: geometry is present and no usage event has
// been recorded yet.
func (o *Order) NeedsUsageRecording() bool {
	return o.dimensions != nil && !o.usageRecorded
}

// recomputePrepressStage derives the prepress stage state from the
// sub-process states after a change.
func (o *Order) recomputePrepressStage(now time.Time) {
	completed := 0
	for _, sub := range o.subProcesses {
		if sub.Status == SubProcessCompleted {
			completed++
		}
	}

	switch {
	case completed == 0:
		o.stages[StagePrepress] = StageState{Status: StagePending}
	case completed == len(o.subProcesses):
		completedAt := now
		o.stages[StagePrepress] = StageState{Status: StageCompleted, CompletedAt: &completedAt}
	default:
		o.stages[StagePrepress] = StageState{Status: StageInProgress}
	}
}

// applyStageEffects keeps stage bookkeeping aligned with a status change.
func (o *Order) applyStageEffects(status Status, now time.Time) {
	completedAt := now

	switch status {
	case Designing:
		o.stages[StageDesign] = StageState{Status: StageInProgress}
	case DesignDone:
		o.stages[StageDesign] = StageState{Status: StageCompleted, CompletedAt: &completedAt}
	case InPrepress:
		if o.stages[StagePrepress].Status == StagePending {
			o.stages[StagePrepress] = StageState{Status: StageInProgress}
		}
	case ReadyForDelivery:
		o.stages[StageProduction] = StageState{Status: StageCompleted, CompletedAt: &completedAt}
		o.stages[StageDelivery] = StageState{Status: StageInProgress}
	case Delivered:
		o.stages[StageDelivery] = StageState{Status: StageCompleted, CompletedAt: &completedAt}
	case Unknown, Submitted, Completed, OnHold, Cancelled:
		// no stage side effects
	}
}
