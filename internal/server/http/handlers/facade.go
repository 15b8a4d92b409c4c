package handlers

import (
	"context"
	"io"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
	IsStaff(ctx context.Context, userID int64) (bool, error)
}

// ProfileFacade manages the user profile and its sections.
type ProfileFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error)
	UploadAvatar(ctx context.Context, userID int64, name string, r io.Reader) (string, error)

	WorkHistory(ctx context.Context, userID int64) ([]model.WorkHistory, error)
	AddWorkHistory(ctx context.Context, userID int64, item model.WorkHistory) (*model.WorkHistory, error)
	UpdateWorkHistory(ctx context.Context, userID int64, id string, item model.WorkHistory) (*model.WorkHistory, error)
	DeleteWorkHistory(ctx context.Context, userID int64, id string) error

	Education(ctx context.Context, userID int64) ([]model.Education, error)
	AddEducation(ctx context.Context, userID int64, item model.Education) (*model.Education, error)
	UpdateEducation(ctx context.Context, userID int64, id string, item model.Education) (*model.Education, error)
	DeleteEducation(ctx context.Context, userID int64, id string) error

	Skills(ctx context.Context, userID int64) ([]model.Skill, error)
	AddSkill(ctx context.Context, userID int64, item model.Skill) (*model.Skill, error)
	UpdateSkill(ctx context.Context, userID int64, id string, item model.Skill) (*model.Skill, error)
	DeleteSkill(ctx context.Context, userID int64, id string) error

	Summary(ctx context.Context, userID int64) (*model.ProfessionalSummary, error)
	SaveSummary(ctx context.Context, userID int64, s model.ProfessionalSummary) (*model.ProfessionalSummary, error)
}

// CatalogFacade lists packages and templates.
type CatalogFacade interface {
	Packages() []model.Package
	Templates() []model.Template
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, packageTitle string) (*model.Order, error)
	ActiveOrder(ctx context.Context, userID int64) (*model.Order, error)
	ClearActiveOrder(ctx context.Context, userID int64) error
	Order(ctx context.Context, userID int64, orderID string) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	DeleteOrder(ctx context.Context, userID int64, orderID string) error
	UpdateResume(ctx context.Context, userID int64, orderID, name, description string, r io.Reader) (*model.Order, error)
	UpdateExtraServices(ctx context.Context, userID int64, orderID string, extras model.ExtraServices) (*model.Order, error)
	SaveTemplate(ctx context.Context, userID int64, orderID, name string) (*model.Order, error)
	RequestRevision(ctx context.Context, userID int64, orderID string) (*model.RevisionResult, error)
	DownloadFile(ctx context.Context, userID int64, orderID, fileName string) (model.OrderFile, error)
	ConfirmOrder(ctx context.Context, userID int64, orderID string) (*model.Order, error)
}

// StaffFacade exposes dashboard operations.
type StaffFacade interface {
	AllOrders(ctx context.Context, staffID int64, status *model.OrderStatus) ([]model.Order, error)
	ChangeOrderStatus(ctx context.Context, staffID int64, orderID string, req usecase.StatusChangeRequest) (*model.Order, error)
	UploadCompletedFile(ctx context.Context, staffID int64, orderID, name, description string, r io.Reader) (*model.Order, error)
	OrderHistory(ctx context.Context, userID int64, orderID string) ([]model.StatusChange, error)
}

// WizardFacade drives the submission wizard.
type WizardFacade interface {
	StartWizard(ctx context.Context, userID int64, flow model.Flow) (*usecase.WizardView, error)
	Wizard(ctx context.Context, userID int64) (*usecase.WizardView, error)
	AdvanceWizard(ctx context.Context, userID int64) (*model.WizardOutcome, error)
	RetreatWizard(ctx context.Context, userID int64) (*usecase.WizardView, error)
	JumpWizard(ctx context.Context, userID int64, index int) (*usecase.WizardView, error)
}

// PaymentFacade runs the checkout handshake.
type PaymentFacade interface {
	InitiateMobileMoney(ctx context.Context, userID int64, orderID string, req model.MobileMoneyRequest) (*model.PaymentOutcome, error)
	RecordWidgetEvent(ctx context.Context, userID int64, orderID, event, invoiceID string) (*model.PaymentOutcome, error)
	HandleWebhook(ctx context.Context, evt model.WebhookEvent) error
}

// HealthFacade reports service readiness.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	AuthFacade
	ProfileFacade
	CatalogFacade
	OrderFacade
	StaffFacade
	WizardFacade
	PaymentFacade
	HealthFacade
}
