package model

import (
	"fmt"
	"time"
)

// Step identifies a wizard step.
type Step int

const (
	StepPackage Step = iota
	StepProfile
	StepWorkHistory
	StepEducation
	StepSkills
	StepProfessionalSummary
	StepUpload
	StepOptionalSections
	StepTemplate
	StepExtraServices
)

var stepNames = map[Step]string{
	StepPackage:             "package",
	StepProfile:             "profile",
	StepWorkHistory:         "work_history",
	StepEducation:           "education",
	StepSkills:              "skills",
	StepProfessionalSummary: "professional_summary",
	StepUpload:              "upload",
	StepOptionalSections:    "optional_sections",
	StepTemplate:            "template",
	StepExtraServices:       "extra_services",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Flow selects between manual entry and uploading an existing document.
type Flow string

const (
	FlowManual Flow = "manual"
	FlowUpload Flow = "upload"
)

var flowSteps = map[Flow][]Step{
	FlowManual: {
		StepPackage,
		StepProfile,
		StepWorkHistory,
		StepEducation,
		StepSkills,
		StepProfessionalSummary,
		StepTemplate,
		StepExtraServices,
	},
	FlowUpload: {
		StepPackage,
		StepUpload,
		StepOptionalSections,
		StepTemplate,
		StepExtraServices,
	},
}

// ParseFlow validates raw flow value.
func ParseFlow(raw string) (Flow, error) {
	f := Flow(raw)
	if _, ok := flowSteps[f]; !ok {
		return "", fmt.Errorf("unknown wizard flow %q", raw)
	}
	return f, nil
}

// Steps returns ordered steps of the flow.
func (f Flow) Steps() []Step {
	steps := flowSteps[f]
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// AllowsJump reports whether direct navigation via step indicator is supported.
func (f Flow) AllowsJump() bool {
	return f == FlowManual
}

// WizardState is the persisted position of a user in the wizard for an order.
type WizardState struct {
	UserID    int64
	OrderID   string
	Flow      Flow
	Index     int
	UpdatedAt time.Time
}

// Len returns number of steps in the active flow.
func (w WizardState) Len() int {
	return len(flowSteps[w.Flow])
}

// Step returns the current step.
func (w WizardState) Step() Step {
	steps := flowSteps[w.Flow]
	if w.Index < 0 || w.Index >= len(steps) {
		return StepPackage
	}
	return steps[w.Index]
}

// AtLast reports whether current step is the last content step.
func (w WizardState) AtLast() bool {
	return w.Index >= w.Len()-1
}

// WizardOutcome is the result of an advance request.
type WizardOutcome struct {
	State     WizardState
	Submitted bool
}
