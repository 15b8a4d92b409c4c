package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/events"
	"github.com/polkiloo/cvorders/internal/session"
	testhelpers "github.com/polkiloo/cvorders/internal/test"
)

const (
	ownerID int64 = 1
	staffID int64 = 2
	otherID int64 = 3
)

type orderFixture struct {
	uc       *OrderUseCase
	orders   *testhelpers.OrderRepositoryStub
	sessions *testhelpers.SessionRepositoryStub
	files    *testhelpers.FileStoreStub
	events   *testhelpers.PublisherStub
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderFixture(orders ...model.Order) orderFixture {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID[ownerID] = &model.User{ID: ownerID, Email: "jane@example.com", Role: model.RoleUser}
	users.ByID[staffID] = &model.User{ID: staffID, Email: "writer@example.com", Role: model.RoleStaff}
	users.ByID[otherID] = &model.User{ID: otherID, Email: "john@example.com", Role: model.RoleUser}

	f := orderFixture{
		orders:   testhelpers.NewOrderRepositoryStub(orders...),
		sessions: testhelpers.NewSessionRepositoryStub(),
		files:    &testhelpers.FileStoreStub{},
		events:   &testhelpers.PublisherStub{},
	}
	f.uc = NewOrderUseCase(f.orders, users, NewCatalogUseCase(), session.NewAccessor(f.sessions), f.files, f.events, discardLogger())
	return f
}

func sampleOrder(status model.OrderStatus) model.Order {
	return model.Order{
		ID:      "order-1",
		UserID:  ownerID,
		Package: model.Package{Title: "Premium CV Writing", OrderRevision: 1},
		Status:  status,
		Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestOrderUseCaseCreateBindsActiveOrder(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	if _, err := f.uc.Create(ctx, ownerID, "Gold"); !errors.Is(err, domainErrors.ErrUnknownPackage) {
		t.Fatalf("expected unknown package, got %v", err)
	}
	if _, err := f.uc.Create(ctx, 0, "Premium CV Writing"); !errors.Is(err, domainErrors.ErrNoIdentity) {
		t.Fatalf("expected no identity, got %v", err)
	}

	order, err := f.uc.Create(ctx, ownerID, "premium cv writing")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending || order.Package.OrderRevision != 3 || order.ID == "" {
		t.Fatalf("unexpected order %+v", order)
	}
	if f.sessions.Active[ownerID] != order.ID {
		t.Fatalf("expected order to become active, got %q", f.sessions.Active[ownerID])
	}

	active, err := f.uc.Active(ctx, ownerID)
	if err != nil || active.ID != order.ID {
		t.Fatalf("unexpected active order %+v err=%v", active, err)
	}
	if types := f.events.Types(); len(types) != 1 || types[0] != events.OrderCreated {
		t.Fatalf("unexpected events %v", types)
	}
}

func TestOrderUseCaseActiveClearsDanglingBinding(t *testing.T) {
	f := newOrderFixture()
	f.sessions.Active[ownerID] = "gone"

	if _, err := f.uc.Active(context.Background(), ownerID); !errors.Is(err, domainErrors.ErrNoActiveOrder) {
		t.Fatalf("expected no active order, got %v", err)
	}
	if _, ok := f.sessions.Active[ownerID]; ok {
		t.Fatal("expected dangling binding to be cleared")
	}
}

func TestOrderUseCaseVisibility(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusPending))
	ctx := context.Background()

	if _, err := f.uc.Get(ctx, ownerID, "order-1"); err != nil {
		t.Fatalf("owner get returned error: %v", err)
	}
	if _, err := f.uc.Get(ctx, staffID, "order-1"); err != nil {
		t.Fatalf("staff get returned error: %v", err)
	}
	if _, err := f.uc.Get(ctx, otherID, "order-1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := f.uc.Get(ctx, ownerID, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.uc.ListAll(ctx, ownerID, nil); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected list all to be staff only, got %v", err)
	}
	pending := model.OrderStatusPending
	list, err := f.uc.ListAll(ctx, staffID, &pending)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected staff list %+v err=%v", list, err)
	}
}

func TestOrderUseCaseChangeStatusTransitions(t *testing.T) {
	withFiles := sampleOrder(model.OrderStatusInProgress)
	withFiles.CompletedFiles = []model.OrderFile{{Name: "cv-final.pdf", FileStorageName: "x.pdf"}}

	cases := []struct {
		name  string
		order model.Order
		to    model.OrderStatus
		err   error
	}{
		{"pending to in progress", sampleOrder(model.OrderStatusPending), model.OrderStatusInProgress, nil},
		{"in progress back to pending", sampleOrder(model.OrderStatusInProgress), model.OrderStatusPending, nil},
		{"complete without files", sampleOrder(model.OrderStatusInProgress), model.OrderStatusComplete, domainErrors.ErrNoCompletedFiles},
		{"complete with files", withFiles, model.OrderStatusComplete, nil},
		{"pending straight to complete", sampleOrder(model.OrderStatusPending), model.OrderStatusComplete, domainErrors.ErrInvalidTransition},
		{"staff cannot open revision", sampleOrder(model.OrderStatusComplete), model.OrderStatusRevision, domainErrors.ErrInvalidTransition},
		{"revision to in progress", sampleOrder(model.OrderStatusRevision), model.OrderStatusInProgress, nil},
		{"unknown status", sampleOrder(model.OrderStatusPending), model.OrderStatus("Shipped"), domainErrors.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(tc.order)
			order, err := f.uc.ChangeStatus(context.Background(), staffID, tc.order.ID, StatusChangeRequest{To: tc.to})
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				if f.orders.Orders[tc.order.ID].Status != tc.order.Status {
					t.Fatal("rejected transition must not change status")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if order.Status != tc.to || f.orders.Orders[tc.order.ID].Status != tc.to {
				t.Fatalf("expected status %s, got %s", tc.to, order.Status)
			}
			history, _ := f.uc.History(context.Background(), ownerID, tc.order.ID)
			if len(history) != 1 || history[0].Actor != model.ActorStaff {
				t.Fatalf("expected one staff history row, got %+v", history)
			}
		})
	}
}

func TestOrderUseCaseChangeStatusSameStateIsNoop(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusInProgress))

	order, err := f.uc.ChangeStatus(context.Background(), staffID, "order-1", StatusChangeRequest{To: model.OrderStatusInProgress})
	if err != nil || order.Status != model.OrderStatusInProgress {
		t.Fatalf("unexpected result %+v err=%v", order, err)
	}
	if len(f.orders.StatusUpdates) != 0 || len(f.events.Events()) != 0 {
		t.Fatal("no-op change must not write or publish")
	}

	note := "Waiting for references"
	delivery := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	order, err = f.uc.ChangeStatus(context.Background(), staffID, "order-1", StatusChangeRequest{To: model.OrderStatusInProgress, Note: &note, DeliveryDate: &delivery})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Note != note || order.DeliveryDate == nil || !order.DeliveryDate.Equal(delivery) {
		t.Fatalf("expected note and delivery date, got %+v", order)
	}
	if len(f.orders.Changes) != 0 {
		t.Fatal("same state edit must not add history")
	}
}

func TestOrderUseCaseChangeStatusRequiresStaff(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusPending))
	_, err := f.uc.ChangeStatus(context.Background(), ownerID, "order-1", StatusChangeRequest{To: model.OrderStatusInProgress})
	if !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestOrderUseCaseChangeStatusConflict(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusPending))
	f.orders.UpdateStatusFn = func(context.Context, model.StatusUpdate) error {
		return domainErrors.ErrConflict
	}
	_, err := f.uc.ChangeStatus(context.Background(), staffID, "order-1", StatusChangeRequest{To: model.OrderStatusInProgress})
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.events.Events()) != 0 {
		t.Fatal("lost race must not publish")
	}
}

func TestOrderUseCaseRequestRevision(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusComplete))
	ctx := context.Background()

	if _, err := f.uc.RequestRevision(ctx, otherID, "order-1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	res, err := f.uc.RequestRevision(ctx, ownerID, "order-1")
	if err != nil {
		t.Fatalf("revision returned error: %v", err)
	}
	if !res.Granted || res.Remaining != 0 || res.Order.Status != model.OrderStatusRevision {
		t.Fatalf("unexpected result %+v", res)
	}
	if f.orders.Orders["order-1"].RevisionsUsed != 1 {
		t.Fatal("expected revision to be consumed")
	}

	if _, err := f.uc.RequestRevision(ctx, ownerID, "order-1"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition outside Complete, got %v", err)
	}

	f.orders.Orders["order-1"].Status = model.OrderStatusComplete
	res, err = f.uc.RequestRevision(ctx, ownerID, "order-1")
	if err != nil {
		t.Fatalf("exhausted revision must not error, got %v", err)
	}
	if res.Granted || res.Order.Status != model.OrderStatusComplete {
		t.Fatalf("expected refusal with unchanged order, got %+v", res)
	}
	if f.orders.Orders["order-1"].RevisionsUsed != 1 {
		t.Fatal("refused revision must not consume allowance")
	}
}

func TestOrderUseCaseRequestRevisionStaleRead(t *testing.T) {
	stored := sampleOrder(model.OrderStatusComplete)
	stored.RevisionsUsed = 1
	f := newOrderFixture(stored)

	stale := sampleOrder(model.OrderStatusComplete)
	f.orders.GetByIDFn = func(ctx context.Context, id string) (*model.Order, error) {
		f.orders.GetByIDFn = nil
		return &stale, nil
	}

	res, err := f.uc.RequestRevision(context.Background(), ownerID, "order-1")
	if err != nil {
		t.Fatalf("exhausted revision must not error, got %v", err)
	}
	if res.Granted {
		t.Fatalf("expected stale request to be refused, got %+v", res)
	}
	order := f.orders.Orders["order-1"]
	if order.RevisionsUsed != 1 || order.Status != model.OrderStatusComplete {
		t.Fatalf("revision budget overspent: %+v", order)
	}
	if len(f.events.Events()) != 0 {
		t.Fatalf("refused revision must not publish events, got %v", f.events.Types())
	}
}

func TestOrderUseCaseRequestRevisionConflict(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusComplete))
	f.orders.UpdateStatusFn = func(ctx context.Context, update model.StatusUpdate) error {
		f.orders.Orders["order-1"].Status = model.OrderStatusInProgress
		return domainErrors.ErrConflict
	}
	if _, err := f.uc.RequestRevision(context.Background(), ownerID, "order-1"); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict when status moved, got %v", err)
	}
}

func TestOrderUseCaseFiles(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusInProgress))
	ctx := context.Background()

	if _, err := f.uc.DownloadFile(ctx, ownerID, "order-1", ""); !errors.Is(err, domainErrors.ErrNoCompletedFiles) {
		t.Fatalf("expected no completed files, got %v", err)
	}
	if _, err := f.uc.UploadCompletedFile(ctx, ownerID, "order-1", "cv.pdf", "", strings.NewReader("pdf")); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected upload to be staff only, got %v", err)
	}

	order, err := f.uc.UploadCompletedFile(ctx, staffID, "order-1", "cv-final.pdf", " final ", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("upload returned error: %v", err)
	}
	if len(order.CompletedFiles) != 1 || order.CompletedFiles[0].Description != "final" {
		t.Fatalf("unexpected completed files %+v", order.CompletedFiles)
	}

	file, err := f.uc.DownloadFile(ctx, ownerID, "order-1", "cv-final.pdf")
	if err != nil || file.Name != "cv-final.pdf" {
		t.Fatalf("unexpected download %+v err=%v", file, err)
	}
	if _, err := f.uc.DownloadFile(ctx, ownerID, "order-1", "other.pdf"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.uc.DownloadFile(ctx, otherID, "order-1", ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	resumed, err := f.uc.UpdateResume(ctx, ownerID, "order-1", "old-cv.docx", "", strings.NewReader("doc"))
	if err != nil || !resumed.HasResume() {
		t.Fatalf("unexpected resume update %+v err=%v", resumed, err)
	}
	if _, err := f.uc.UpdateResume(ctx, ownerID, "order-1", " ", "", strings.NewReader("doc")); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderUseCaseExtrasAndTemplate(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusPending))
	ctx := context.Background()

	yes := true
	bad := "https://example.com/jane"
	if _, err := f.uc.UpdateExtraServices(ctx, ownerID, "order-1", model.ExtraServices{RequireLinkedInOptimization: &yes, LinkedInURL: &bad}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	good := "https://www.linkedin.com/in/jane-doe"
	order, err := f.uc.UpdateExtraServices(ctx, ownerID, "order-1", model.ExtraServices{RequireLinkedInOptimization: &yes, LinkedInURL: &good})
	if err != nil || order.LinkedInURL != good {
		t.Fatalf("unexpected extras %+v err=%v", order, err)
	}

	if _, err := f.uc.SaveTemplate(ctx, ownerID, "order-1", "Nope"); !errors.Is(err, domainErrors.ErrUnknownTemplate) {
		t.Fatalf("expected unknown template, got %v", err)
	}
	order, err = f.uc.SaveTemplate(ctx, ownerID, "order-1", "Cascade")
	if err != nil || order.Template == nil || order.Template.Name != "Cascade" {
		t.Fatalf("unexpected template %+v err=%v", order.Template, err)
	}
}

func TestOrderUseCaseConfirmAndDelete(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusInProgress))
	ctx := context.Background()
	f.sessions.Active[ownerID] = "order-1"

	order, err := f.uc.Confirm(ctx, ownerID, "order-1")
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if order.Status != model.OrderStatusInProgress {
		t.Fatalf("confirm must not regress status, got %s", order.Status)
	}
	if _, ok := f.sessions.Active[ownerID]; ok {
		t.Fatal("confirm must clear active order")
	}

	f.sessions.Active[ownerID] = "order-1"
	if err := f.uc.Delete(ctx, otherID, "order-1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := f.uc.Delete(ctx, ownerID, "order-1"); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if _, ok := f.orders.Orders["order-1"]; ok {
		t.Fatal("expected order to be removed")
	}
	if _, ok := f.sessions.Active[ownerID]; ok {
		t.Fatal("expected active binding to be cleared")
	}
	types := f.events.Types()
	if len(types) != 1 || types[0] != events.OrderDeleted {
		t.Fatalf("unexpected events %v", types)
	}
}

func TestOrderUseCasePublishFailureDoesNotFail(t *testing.T) {
	f := newOrderFixture(sampleOrder(model.OrderStatusPending))
	f.events.Err = errors.New("broker down")

	if _, err := f.uc.ChangeStatus(context.Background(), staffID, "order-1", StatusChangeRequest{To: model.OrderStatusInProgress}); err != nil {
		t.Fatalf("publish failure must not fail the change: %v", err)
	}
}
