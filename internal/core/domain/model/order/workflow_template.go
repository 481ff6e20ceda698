package order

import (
	"errors"
	"fmt"
)

// ErrUnknownWorkflowTemplate is returned when an order references a workflow
// template id that is not registered.
var ErrUnknownWorkflowTemplate = errors.New("unknown workflow template")

// Names of the prepress sub-processes used by the built-in templates.
// SubProcessWashout is special: its completion triggers solvent usage metering.
const (
	SubProcessPositioning  = "positioning"
	SubProcessBackExposure = "backExposure"
	SubProcessLaserImaging = "laserImaging"
	SubProcessMainExposure = "mainExposure"
	SubProcessWashout      = "washout"
	SubProcessDrying       = "drying"
	SubProcessPostExposure = "postExposure"
	SubProcessUVCExposure  = "uvcExposure"
	SubProcessFinishing    = "finishing"
)

// TemplateID identifies a workflow template for a product line.
type TemplateID string

// Built-in workflow templates.
const (
	// TemplateStandard is the full nine-step plate production workflow.
	TemplateStandard TemplateID = "standard"

	// TemplateCompact is the shortened six-step workflow used for
	// product lines that skip the laser and UVC steps.
	TemplateCompact TemplateID = "compact"
)

// WorkflowTemplate defines the ordered set of prepress sub-processes for one
// product line. The template is chosen at order creation and is fixed for the
// lifetime of the order.
type WorkflowTemplate struct {
	ID           TemplateID
	SubProcesses []string
}

// getTemplates returns the registered workflow templates keyed by id.
func getTemplates() map[TemplateID]WorkflowTemplate {
	return map[TemplateID]WorkflowTemplate{
		TemplateStandard: {
			ID: TemplateStandard,
			SubProcesses: []string{
				SubProcessPositioning,
				SubProcessBackExposure,
				SubProcessLaserImaging,
				SubProcessMainExposure,
				SubProcessWashout,
				SubProcessDrying,
				SubProcessPostExposure,
				SubProcessUVCExposure,
				SubProcessFinishing,
			},
		},
		TemplateCompact: {
			ID: TemplateCompact,
			SubProcesses: []string{
				SubProcessPositioning,
				SubProcessMainExposure,
				SubProcessWashout,
				SubProcessDrying,
				SubProcessPostExposure,
				SubProcessFinishing,
			},
		},
	}
}

// TemplateByID looks up a registered workflow template.
// Returns an error wrapping ErrUnknownWorkflowTemplate for unregistered ids.
func TemplateByID(id TemplateID) (WorkflowTemplate, error) {
	template, ok := getTemplates()[id]
	if !ok {
		return WorkflowTemplate{}, fmt.Errorf("%w: %q", ErrUnknownWorkflowTemplate, id)
	}
	return template, nil
}

// InitialSubProcessStates builds the pending sub-process states for the template.
func (t WorkflowTemplate) InitialSubProcessStates() []SubProcessState {
	states := make([]SubProcessState, 0, len(t.SubProcesses))
	for _, name := range t.SubProcesses {
		states = append(states, SubProcessState{Name: name, Status: SubProcessPending})
	}
	return states
}
