package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/domain/repository"
)

// WizardView describes the wizard position for presentation.
type WizardView struct {
	State model.WizardState
	Step  model.Step
	Steps []model.Step
}

// WizardUseCase drives step navigation of the order wizard.
type WizardUseCase struct {
	wizards repository.WizardRepository
	orders  repository.OrderRepository
	active  ActiveOrders
}

// NewWizardUseCase constructs WizardUseCase.
func NewWizardUseCase(wizards repository.WizardRepository, orders repository.OrderRepository, active ActiveOrders) *WizardUseCase {
	return &WizardUseCase{wizards: wizards, orders: orders, active: active}
}

// Start begins or resets the wizard of the active order at the first step.
func (u *WizardUseCase) Start(ctx context.Context, userID int64, flow model.Flow) (*WizardView, error) {
	orderID, err := u.active.ActiveOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := model.ParseFlow(string(flow)); err != nil {
		return nil, domainErrors.NewValidationError(domainErrors.FieldError{Field: "flow", Message: "Unknown flow"})
	}
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}

	state := model.WizardState{UserID: userID, OrderID: orderID, Flow: flow, UpdatedAt: time.Now().UTC()}
	if err := u.wizards.Save(ctx, state); err != nil {
		return nil, err
	}
	return view(state), nil
}

// Current returns the stored position; an unstarted wizard sits at the first manual step.
func (u *WizardUseCase) Current(ctx context.Context, userID int64) (*WizardView, error) {
	state, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return view(*state), nil
}

// Advance checks the current step and moves forward.
// At the last step it reports submission instead of moving.
func (u *WizardUseCase) Advance(ctx context.Context, userID int64) (*model.WizardOutcome, error) {
	state, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, state.OrderID)
	if err != nil {
		return nil, err
	}
	if err := stepComplete(state.Step(), order); err != nil {
		return nil, err
	}

	if state.AtLast() {
		return &model.WizardOutcome{State: *state, Submitted: true}, nil
	}

	next := *state
	next.Index++
	next.UpdatedAt = time.Now().UTC()
	if err := u.wizards.Save(ctx, next); err != nil {
		return nil, err
	}
	return &model.WizardOutcome{State: next}, nil
}

// Retreat moves one step back. The first step stays put.
func (u *WizardUseCase) Retreat(ctx context.Context, userID int64) (*WizardView, error) {
	state, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Index == 0 {
		return view(*state), nil
	}

	next := *state
	next.Index--
	next.UpdatedAt = time.Now().UTC()
	if err := u.wizards.Save(ctx, next); err != nil {
		return nil, err
	}
	return view(next), nil
}

// JumpTo moves straight to index. Manual flow only.
func (u *WizardUseCase) JumpTo(ctx context.Context, userID int64, index int) (*WizardView, error) {
	state, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.Flow.AllowsJump() {
		return nil, domainErrors.ErrJumpNotAllowed
	}
	if index < 0 || index >= state.Len() {
		return nil, domainErrors.ErrStepOutOfRange
	}

	next := *state
	next.Index = index
	next.UpdatedAt = time.Now().UTC()
	if err := u.wizards.Save(ctx, next); err != nil {
		return nil, err
	}
	return view(next), nil
}

func (u *WizardUseCase) load(ctx context.Context, userID int64) (*model.WizardState, error) {
	orderID, err := u.active.ActiveOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, err := u.wizards.Get(ctx, userID, orderID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return &model.WizardState{UserID: userID, OrderID: orderID, Flow: model.FlowManual}, nil
	}
	if err != nil {
		return nil, err
	}
	if state.Index < 0 || state.Index >= state.Len() {
		state.Index = 0
	}
	return state, nil
}

func stepComplete(step model.Step, order *model.Order) error {
	switch step {
	case model.StepUpload:
		if !order.HasResume() {
			return domainErrors.ErrResumeRequired
		}
	case model.StepExtraServices:
		return ValidateExtraServices(order)
	}
	return nil
}

func view(state model.WizardState) *WizardView {
	return &WizardView{State: state, Step: state.Step(), Steps: state.Flow.Steps()}
}
