package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/domain/repository"
	"github.com/polkiloo/cvorders/internal/events"
)

// StatusChangeRequest is a staff edit of an order.
type StatusChangeRequest struct {
	To           model.OrderStatus
	Note         *string
	DeliveryDate *time.Time
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	users   repository.UserRepository
	catalog *CatalogUseCase
	active  ActiveOrders
	files   FileStore
	events  events.Publisher
	logger  *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	catalog *CatalogUseCase,
	active ActiveOrders,
	files FileStore,
	publisher events.Publisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:  orders,
		users:   users,
		catalog: catalog,
		active:  active,
		files:   files,
		events:  publisher,
		logger:  logger,
	}
}

// Create places a Pending order for the package and makes it the active order.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, packageTitle string) (*model.Order, error) {
	if userID == 0 {
		return nil, domainErrors.ErrNoIdentity
	}
	pkg, err := u.catalog.Package(packageTitle)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Package:   pkg,
		Status:    model.OrderStatusPending,
		Date:      now,
		UpdatedAt: now,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := u.active.Bind(ctx, userID, order.ID); err != nil {
		return nil, err
	}

	u.emit(ctx, events.OrderCreated, order, model.ActorUser)
	return order, nil
}

// Active returns the order bound to the user's session.
func (u *OrderUseCase) Active(ctx context.Context, userID int64) (*model.Order, error) {
	orderID, err := u.active.ActiveOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if errors.Is(err, domainErrors.ErrNotFound) {
		_ = u.active.Clear(ctx, userID)
		return nil, domainErrors.ErrNoActiveOrder
	}
	return order, err
}

// ClearActive forgets the user's active order.
func (u *OrderUseCase) ClearActive(ctx context.Context, userID int64) error {
	return u.active.Clear(ctx, userID)
}

// Get returns the order to its owner or to staff.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return u.visible(ctx, userID, orderID)
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order for the staff dashboard.
func (u *OrderUseCase) ListAll(ctx context.Context, staffID int64, status *model.OrderStatus) ([]model.Order, error) {
	if err := u.requireStaff(ctx, staffID); err != nil {
		return nil, err
	}
	return u.orders.ListAll(ctx, status)
}

// History returns status changes of the order.
func (u *OrderUseCase) History(ctx context.Context, userID int64, orderID string) ([]model.StatusChange, error) {
	if _, err := u.visible(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return u.orders.History(ctx, orderID)
}

// Delete removes an order of the owner.
func (u *OrderUseCase) Delete(ctx context.Context, userID int64, orderID string) error {
	order, err := u.owned(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if err := u.orders.Delete(ctx, orderID); err != nil {
		return err
	}
	if active, err := u.active.ActiveOrder(ctx, userID); err == nil && active == orderID {
		if err := u.active.Clear(ctx, userID); err != nil {
			u.logger.Warn("clear active order", slog.String("order", orderID), slog.String("error", err.Error()))
		}
	}
	u.emit(ctx, events.OrderDeleted, order, model.ActorUser)
	return nil
}

// UpdateResume stores the uploaded source resume.
func (u *OrderUseCase) UpdateResume(ctx context.Context, userID int64, orderID, name, description string, r io.Reader) (*model.Order, error) {
	order, err := u.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	file, err := u.saveFile(ctx, name, description, r)
	if err != nil {
		return nil, err
	}
	if err := u.orders.UpdateResume(ctx, orderID, file); err != nil {
		return nil, err
	}
	order.Resume = &file
	return order, nil
}

// UpdateExtraServices merges and validates cover letter and LinkedIn add-ons.
func (u *OrderUseCase) UpdateExtraServices(ctx context.Context, userID int64, orderID string, extras model.ExtraServices) (*model.Order, error) {
	order, err := u.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	extras.Apply(order)
	if err := ValidateExtraServices(order); err != nil {
		return nil, err
	}
	if err := u.orders.UpdateExtras(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SaveTemplate attaches a catalog template to the order.
func (u *OrderUseCase) SaveTemplate(ctx context.Context, userID int64, orderID, name string) (*model.Order, error) {
	tpl, err := u.catalog.Template(name)
	if err != nil {
		return nil, err
	}
	order, err := u.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := u.orders.UpdateTemplate(ctx, orderID, tpl); err != nil {
		return nil, err
	}
	order.Template = &tpl
	return order, nil
}

// UploadCompletedFile appends a deliverable. Staff only.
func (u *OrderUseCase) UploadCompletedFile(ctx context.Context, staffID int64, orderID, name, description string, r io.Reader) (*model.Order, error) {
	if err := u.requireStaff(ctx, staffID); err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	file, err := u.saveFile(ctx, name, description, r)
	if err != nil {
		return nil, err
	}
	if err := u.orders.AddCompletedFile(ctx, orderID, file); err != nil {
		return nil, err
	}
	order.CompletedFiles = append(order.CompletedFiles, file)
	u.emit(ctx, events.OrderFileUploaded, order, model.ActorStaff)
	return order, nil
}

// DownloadFile returns a deliverable of a completed order.
func (u *OrderUseCase) DownloadFile(ctx context.Context, userID int64, orderID, fileName string) (model.OrderFile, error) {
	order, err := u.visible(ctx, userID, orderID)
	if err != nil {
		return model.OrderFile{}, err
	}
	if !order.CanDownload() {
		return model.OrderFile{}, domainErrors.ErrNoCompletedFiles
	}
	if strings.TrimSpace(fileName) == "" {
		return order.CompletedFiles[len(order.CompletedFiles)-1], nil
	}
	file, ok := order.CompletedFile(fileName)
	if !ok {
		return model.OrderFile{}, domainErrors.ErrNotFound
	}
	return file, nil
}

// ChangeStatus applies a staff status edit, optionally with note and delivery date.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, staffID int64, orderID string, req StatusChangeRequest) (*model.Order, error) {
	if err := u.requireStaff(ctx, staffID); err != nil {
		return nil, err
	}
	if _, err := model.ParseOrderStatus(string(req.To)); err != nil {
		return nil, domainErrors.ErrInvalidStatus
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(model.ActorStaff, order, req.To); err != nil {
		return nil, err
	}
	if order.Status == req.To && req.Note == nil && req.DeliveryDate == nil {
		return order, nil
	}

	update := model.StatusUpdate{
		OrderID:      orderID,
		From:         order.Status,
		To:           req.To,
		Actor:        model.ActorStaff,
		Note:         req.Note,
		DeliveryDate: req.DeliveryDate,
	}
	if err := u.orders.UpdateStatus(ctx, update); err != nil {
		return nil, err
	}

	changed := order.Status != req.To
	order.Status = req.To
	if req.Note != nil {
		order.Note = *req.Note
	}
	if req.DeliveryDate != nil {
		d := *req.DeliveryDate
		order.DeliveryDate = &d
	}
	if changed {
		u.emit(ctx, events.OrderStatusChanged, order, model.ActorStaff)
	}
	return order, nil
}

// RequestRevision moves a Complete order back to Revision when allowance is left.
// An exhausted allowance is reported in the result and leaves the order untouched.
func (u *OrderUseCase) RequestRevision(ctx context.Context, userID int64, orderID string) (*model.RevisionResult, error) {
	order, err := u.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(model.ActorUser, order, model.OrderStatusRevision); err != nil || order.Status != model.OrderStatusComplete {
		return nil, domainErrors.ErrInvalidTransition
	}
	if order.RevisionsRemaining() == 0 {
		return &model.RevisionResult{Granted: false, Remaining: 0, Order: order}, nil
	}

	update := model.StatusUpdate{
		OrderID:         orderID,
		From:            model.OrderStatusComplete,
		To:              model.OrderStatusRevision,
		Actor:           model.ActorUser,
		ConsumeRevision: true,
	}
	if err := u.orders.UpdateStatus(ctx, update); err != nil {
		if !errors.Is(err, domainErrors.ErrConflict) {
			return nil, err
		}
		current, getErr := u.orders.GetByID(ctx, orderID)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status == model.OrderStatusComplete && current.RevisionsRemaining() == 0 {
			return &model.RevisionResult{Granted: false, Remaining: 0, Order: current}, nil
		}
		return nil, err
	}
	order.Status = model.OrderStatusRevision
	order.RevisionsUsed++

	u.emit(ctx, events.OrderStatusChanged, order, model.ActorUser)
	return &model.RevisionResult{Granted: true, Remaining: order.RevisionsRemaining(), Order: order}, nil
}

// Confirm finishes checkout. A staff-advanced order keeps its status.
func (u *OrderUseCase) Confirm(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	order, err := u.owned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := u.active.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (u *OrderUseCase) saveFile(ctx context.Context, name, description string, r io.Reader) (model.OrderFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.OrderFile{}, domainErrors.NewValidationError(domainErrors.FieldError{Field: "file", Message: "File is required"})
	}
	file, err := u.files.Save(ctx, name, r)
	if err != nil {
		return model.OrderFile{}, err
	}
	file.Description = strings.TrimSpace(description)
	return file, nil
}

func (u *OrderUseCase) owned(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if userID == 0 {
		return nil, domainErrors.ErrNoIdentity
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func (u *OrderUseCase) visible(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if userID == 0 {
		return nil, domainErrors.ErrNoIdentity
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == userID {
		return order, nil
	}
	if err := u.requireStaff(ctx, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (u *OrderUseCase) requireStaff(ctx context.Context, userID int64) error {
	if userID == 0 {
		return domainErrors.ErrNoIdentity
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrForbidden
		}
		return err
	}
	if !usr.IsStaff() {
		return domainErrors.ErrForbidden
	}
	return nil
}

func (u *OrderUseCase) emit(ctx context.Context, t events.Type, o *model.Order, actor model.Actor) {
	publish(ctx, u.events, u.logger, events.Event{
		Type:       t,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	})
}
