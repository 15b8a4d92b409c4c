package app

import (
	"context"
	"io"

	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/usecase"
)

// HealthChecker reports readiness of backing services.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Facade is the single entry point used by HTTP handlers and the worker.
type Facade struct {
	auth     *usecase.AuthUseCase
	profiles *usecase.ProfileUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	wizard   *usecase.WizardUseCase
	payments *usecase.PaymentUseCase
	health   HealthChecker
}

// FacadeParams groups use cases composed by the facade.
type FacadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Profiles *usecase.ProfileUseCase
	Catalog  *usecase.CatalogUseCase
	Orders   *usecase.OrderUseCase
	Wizard   *usecase.WizardUseCase
	Payments *usecase.PaymentUseCase
	Health   HealthChecker
}

// NewFacade constructs Facade.
func NewFacade(p FacadeParams) *Facade {
	return &Facade{
		auth:     p.Auth,
		profiles: p.Profiles,
		catalog:  p.Catalog,
		orders:   p.Orders,
		wizard:   p.Wizard,
		payments: p.Payments,
		health:   p.Health,
	}
}

func (f *Facade) Register(ctx context.Context, reg model.Registration) (string, error) {
	_, token, err := f.auth.Register(ctx, reg)
	return token, err
}

func (f *Facade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *Facade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *Facade) IsStaff(ctx context.Context, userID int64) (bool, error) {
	return f.auth.IsStaff(ctx, userID)
}

func (f *Facade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *Facade) UpdateProfile(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error) {
	return f.auth.UpdateProfile(ctx, userID, upd)
}

func (f *Facade) UploadAvatar(ctx context.Context, userID int64, name string, r io.Reader) (string, error) {
	return f.profiles.UploadAvatar(ctx, userID, name, r)
}

func (f *Facade) WorkHistory(ctx context.Context, userID int64) ([]model.WorkHistory, error) {
	return f.profiles.WorkHistory(ctx, userID)
}

func (f *Facade) AddWorkHistory(ctx context.Context, userID int64, item model.WorkHistory) (*model.WorkHistory, error) {
	return f.profiles.AddWorkHistory(ctx, userID, item)
}

func (f *Facade) UpdateWorkHistory(ctx context.Context, userID int64, id string, item model.WorkHistory) (*model.WorkHistory, error) {
	return f.profiles.UpdateWorkHistory(ctx, userID, id, item)
}

func (f *Facade) DeleteWorkHistory(ctx context.Context, userID int64, id string) error {
	return f.profiles.DeleteWorkHistory(ctx, userID, id)
}

func (f *Facade) Education(ctx context.Context, userID int64) ([]model.Education, error) {
	return f.profiles.Education(ctx, userID)
}

func (f *Facade) AddEducation(ctx context.Context, userID int64, item model.Education) (*model.Education, error) {
	return f.profiles.AddEducation(ctx, userID, item)
}

func (f *Facade) UpdateEducation(ctx context.Context, userID int64, id string, item model.Education) (*model.Education, error) {
	return f.profiles.UpdateEducation(ctx, userID, id, item)
}

func (f *Facade) DeleteEducation(ctx context.Context, userID int64, id string) error {
	return f.profiles.DeleteEducation(ctx, userID, id)
}

func (f *Facade) Skills(ctx context.Context, userID int64) ([]model.Skill, error) {
	return f.profiles.Skills(ctx, userID)
}

func (f *Facade) AddSkill(ctx context.Context, userID int64, item model.Skill) (*model.Skill, error) {
	return f.profiles.AddSkill(ctx, userID, item)
}

func (f *Facade) UpdateSkill(ctx context.Context, userID int64, id string, item model.Skill) (*model.Skill, error) {
	return f.profiles.UpdateSkill(ctx, userID, id, item)
}

func (f *Facade) DeleteSkill(ctx context.Context, userID int64, id string) error {
	return f.profiles.DeleteSkill(ctx, userID, id)
}

func (f *Facade) Summary(ctx context.Context, userID int64) (*model.ProfessionalSummary, error) {
	return f.profiles.Summary(ctx, userID)
}

func (f *Facade) SaveSummary(ctx context.Context, userID int64, s model.ProfessionalSummary) (*model.ProfessionalSummary, error) {
	return f.profiles.SaveSummary(ctx, userID, s)
}

func (f *Facade) Packages() []model.Package {
	return f.catalog.Packages()
}

func (f *Facade) Templates() []model.Template {
	return f.catalog.Templates()
}

func (f *Facade) CreateOrder(ctx context.Context, userID int64, packageTitle string) (*model.Order, error) {
	return f.orders.Create(ctx, userID, packageTitle)
}

func (f *Facade) ActiveOrder(ctx context.Context, userID int64) (*model.Order, error) {
	return f.orders.Active(ctx, userID)
}

func (f *Facade) ClearActiveOrder(ctx context.Context, userID int64) error {
	return f.orders.ClearActive(ctx, userID)
}

func (f *Facade) Order(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *Facade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *Facade) DeleteOrder(ctx context.Context, userID int64, orderID string) error {
	return f.orders.Delete(ctx, userID, orderID)
}

func (f *Facade) UpdateResume(ctx context.Context, userID int64, orderID, name, description string, r io.Reader) (*model.Order, error) {
	return f.orders.UpdateResume(ctx, userID, orderID, name, description, r)
}

func (f *Facade) UpdateExtraServices(ctx context.Context, userID int64, orderID string, extras model.ExtraServices) (*model.Order, error) {
	return f.orders.UpdateExtraServices(ctx, userID, orderID, extras)
}

func (f *Facade) SaveTemplate(ctx context.Context, userID int64, orderID, name string) (*model.Order, error) {
	return f.orders.SaveTemplate(ctx, userID, orderID, name)
}

func (f *Facade) RequestRevision(ctx context.Context, userID int64, orderID string) (*model.RevisionResult, error) {
	return f.orders.RequestRevision(ctx, userID, orderID)
}

func (f *Facade) DownloadFile(ctx context.Context, userID int64, orderID, fileName string) (model.OrderFile, error) {
	return f.orders.DownloadFile(ctx, userID, orderID, fileName)
}

func (f *Facade) ConfirmOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return f.orders.Confirm(ctx, userID, orderID)
}

func (f *Facade) AllOrders(ctx context.Context, staffID int64, status *model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListAll(ctx, staffID, status)
}

func (f *Facade) ChangeOrderStatus(ctx context.Context, staffID int64, orderID string, req usecase.StatusChangeRequest) (*model.Order, error) {
	return f.orders.ChangeStatus(ctx, staffID, orderID, req)
}

func (f *Facade) UploadCompletedFile(ctx context.Context, staffID int64, orderID, name, description string, r io.Reader) (*model.Order, error) {
	return f.orders.UploadCompletedFile(ctx, staffID, orderID, name, description, r)
}

func (f *Facade) OrderHistory(ctx context.Context, userID int64, orderID string) ([]model.StatusChange, error) {
	return f.orders.History(ctx, userID, orderID)
}

func (f *Facade) StartWizard(ctx context.Context, userID int64, flow model.Flow) (*usecase.WizardView, error) {
	return f.wizard.Start(ctx, userID, flow)
}

func (f *Facade) Wizard(ctx context.Context, userID int64) (*usecase.WizardView, error) {
	return f.wizard.Current(ctx, userID)
}

func (f *Facade) AdvanceWizard(ctx context.Context, userID int64) (*model.WizardOutcome, error) {
	return f.wizard.Advance(ctx, userID)
}

func (f *Facade) RetreatWizard(ctx context.Context, userID int64) (*usecase.WizardView, error) {
	return f.wizard.Retreat(ctx, userID)
}

func (f *Facade) JumpWizard(ctx context.Context, userID int64, index int) (*usecase.WizardView, error) {
	return f.wizard.JumpTo(ctx, userID, index)
}

func (f *Facade) InitiateMobileMoney(ctx context.Context, userID int64, orderID string, req model.MobileMoneyRequest) (*model.PaymentOutcome, error) {
	return f.payments.InitiateMobileMoney(ctx, userID, orderID, req)
}

func (f *Facade) RecordWidgetEvent(ctx context.Context, userID int64, orderID, event, invoiceID string) (*model.PaymentOutcome, error) {
	return f.payments.RecordWidgetEvent(ctx, userID, orderID, event, invoiceID)
}

func (f *Facade) HandleWebhook(ctx context.Context, evt model.WebhookEvent) error {
	return f.payments.HandleWebhook(ctx, evt)
}

func (f *Facade) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.payments.PaymentsForReconciliation(ctx, limit)
}

func (f *Facade) CheckPayment(ctx context.Context, invoiceID string) (*model.PaymentStatus, error) {
	return f.payments.CheckPayment(ctx, invoiceID)
}

func (f *Facade) ApplyPaymentState(ctx context.Context, paymentID string, state model.PaymentState) error {
	return f.payments.ApplyState(ctx, paymentID, state)
}

// HealthCheck verifies that storage is reachable.
func (f *Facade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
