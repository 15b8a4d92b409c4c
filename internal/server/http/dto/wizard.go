package dto

import (
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/usecase"
)

type StartWizardRequest struct {
	Flow string `json:"flow"`
}

type JumpRequest struct {
	Index *int `json:"index"`
}

// WizardResponse describes the wizard position.
type WizardResponse struct {
	OrderID   string   `json:"orderId"`
	Flow      string   `json:"flow"`
	Index     int      `json:"currentStepIndex"`
	Step      string   `json:"step"`
	Steps     []string `json:"steps"`
	Submitted bool     `json:"submitted"`
}

func NewWizardResponse(v *usecase.WizardView) WizardResponse {
	return WizardResponse{
		OrderID: v.State.OrderID,
		Flow:    string(v.State.Flow),
		Index:   v.State.Index,
		Step:    v.Step.String(),
		Steps:   Map(v.Steps, model.Step.String),
	}
}

func NewWizardOutcomeResponse(o *model.WizardOutcome) WizardResponse {
	steps := o.State.Flow.Steps()
	return WizardResponse{
		OrderID:   o.State.OrderID,
		Flow:      string(o.State.Flow),
		Index:     o.State.Index,
		Step:      o.State.Step().String(),
		Steps:     Map(steps, model.Step.String),
		Submitted: o.Submitted,
	}
}
