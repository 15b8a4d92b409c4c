package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *user
	stored.ID = s.Next
	stored.CreatedAt = time.Unix(0, 0).UTC()
	s.Next++
	s.Users[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Update overwrites stored profile fields.
func (s *UserRepositoryStub) Update(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.ByID[user.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	*stored = *user
	return nil
}

// SetAvatar stores avatar URL.
func (s *UserRepositoryStub) SetAvatar(ctx context.Context, id int64, url string) error {
	if s.Err != nil {
		return s.Err
	}
	stored, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	stored.AvatarURL = url
	return nil
}

// OrderRepositoryStub keeps orders in memory. Fn fields override behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	UpdateStatusFn func(context.Context, model.StatusUpdate) error
	UpdateExtrasFn func(context.Context, *model.Order) error
	MarkSubmitFn   func(context.Context, string) error

	Orders        map[string]*model.Order
	StatusUpdates []model.StatusUpdate
	Changes       []model.StatusChange

	mu sync.Mutex
}

// NewOrderRepositoryStub constructs an empty stub.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
	for i := range orders {
		o := orders[i]
		s.Orders[o.ID] = &o
	}
	return s
}

func (s *OrderRepositoryStub) lookup(id string) (*model.Order, error) {
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return o, nil
}

// Create stores a copy of the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	stored := *order
	s.Orders[order.ID] = &stored
	return nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	out := *o
	out.CompletedFiles = append([]model.OrderFile(nil), o.CompletedFiles...)
	return &out, nil
}

// ListByUser returns orders owned by user, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sortOrders(out)
	return out, nil
}

// ListAll returns all orders, optionally filtered by status.
func (s *OrderRepositoryStub) ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if status == nil || o.Status == *status {
			out = append(out, *o)
		}
	}
	sortOrders(out)
	return out, nil
}

func sortOrders(orders []model.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].Date.Equal(orders[j].Date) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].Date.After(orders[j].Date)
	})
}

// Delete removes the order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.Orders, id)
	return nil
}

// UpdateResume stores resume metadata.
func (s *OrderRepositoryStub) UpdateResume(ctx context.Context, id string, file model.OrderFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(id)
	if err != nil {
		return err
	}
	o.Resume = &file
	return nil
}

// UpdateExtras stores extra service fields.
func (s *OrderRepositoryStub) UpdateExtras(ctx context.Context, order *model.Order) error {
	if s.UpdateExtrasFn != nil {
		return s.UpdateExtrasFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(order.ID)
	if err != nil {
		return err
	}
	o.RequireCoverLetter = order.RequireCoverLetter
	o.CoverLetterDetails = order.CoverLetterDetails
	o.RequireLinkedInOptimization = order.RequireLinkedInOptimization
	o.LinkedInURL = order.LinkedInURL
	return nil
}

// UpdateTemplate stores template selection.
func (s *OrderRepositoryStub) UpdateTemplate(ctx context.Context, id string, tpl model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(id)
	if err != nil {
		return err
	}
	o.Template = &tpl
	return nil
}

// AddCompletedFile appends deliverable metadata.
func (s *OrderRepositoryStub) AddCompletedFile(ctx context.Context, id string, file model.OrderFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(id)
	if err != nil {
		return err
	}
	o.CompletedFiles = append(o.CompletedFiles, file)
	return nil
}

// UpdateStatus applies compare-and-set semantics and records history.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, update model.StatusUpdate) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, update)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(update.OrderID)
	if err != nil {
		return err
	}
	if o.Status != update.From {
		return domainErrors.ErrConflict
	}
	if update.ConsumeRevision && o.RevisionsUsed >= o.Package.OrderRevision {
		return domainErrors.ErrConflict
	}
	o.Status = update.To
	if update.ConsumeRevision {
		o.RevisionsUsed++
	}
	if update.Note != nil {
		o.Note = *update.Note
	}
	if update.DeliveryDate != nil {
		d := *update.DeliveryDate
		o.DeliveryDate = &d
	}
	s.StatusUpdates = append(s.StatusUpdates, update)
	if update.From == update.To {
		return nil
	}
	s.Changes = append(s.Changes, model.StatusChange{
		ID:      int64(len(s.Changes) + 1),
		OrderID: update.OrderID,
		From:    update.From,
		To:      update.To,
		Actor:   update.Actor,
	})
	return nil
}

// MarkSubmitted stamps submission time.
func (s *OrderRepositoryStub) MarkSubmitted(ctx context.Context, id string) error {
	if s.MarkSubmitFn != nil {
		return s.MarkSubmitFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	o.SubmittedAt = &now
	return nil
}

// History returns recorded changes for the order.
func (s *OrderRepositoryStub) History(ctx context.Context, id string) ([]model.StatusChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.StatusChange
	for _, c := range s.Changes {
		if c.OrderID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

// ProfileRepositoryStub keeps profile sub-entities in memory.
type ProfileRepositoryStub struct {
	AddWorkHistoryFn func(context.Context, *model.WorkHistory) error

	WorkHistory []model.WorkHistory
	Education   []model.Education
	Skills      []model.Skill
	Summaries   map[int64]model.ProfessionalSummary
}

// ListWorkHistory returns entries of the user.
func (s *ProfileRepositoryStub) ListWorkHistory(ctx context.Context, userID int64) ([]model.WorkHistory, error) {
	var out []model.WorkHistory
	for _, w := range s.WorkHistory {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// AddWorkHistory appends an entry.
func (s *ProfileRepositoryStub) AddWorkHistory(ctx context.Context, item *model.WorkHistory) error {
	if s.AddWorkHistoryFn != nil {
		return s.AddWorkHistoryFn(ctx, item)
	}
	s.WorkHistory = append(s.WorkHistory, *item)
	return nil
}

// UpdateWorkHistory replaces an entry owned by the user.
func (s *ProfileRepositoryStub) UpdateWorkHistory(ctx context.Context, item *model.WorkHistory) error {
	for i, w := range s.WorkHistory {
		if w.ID == item.ID && w.UserID == item.UserID {
			s.WorkHistory[i] = *item
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteWorkHistory removes an entry owned by the user.
func (s *ProfileRepositoryStub) DeleteWorkHistory(ctx context.Context, userID int64, id string) error {
	for i, w := range s.WorkHistory {
		if w.ID == id && w.UserID == userID {
			s.WorkHistory = append(s.WorkHistory[:i], s.WorkHistory[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ListEducation returns entries of the user.
func (s *ProfileRepositoryStub) ListEducation(ctx context.Context, userID int64) ([]model.Education, error) {
	var out []model.Education
	for _, e := range s.Education {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// AddEducation appends an entry.
func (s *ProfileRepositoryStub) AddEducation(ctx context.Context, item *model.Education) error {
	s.Education = append(s.Education, *item)
	return nil
}

// UpdateEducation replaces an entry owned by the user.
func (s *ProfileRepositoryStub) UpdateEducation(ctx context.Context, item *model.Education) error {
	for i, e := range s.Education {
		if e.ID == item.ID && e.UserID == item.UserID {
			s.Education[i] = *item
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteEducation removes an entry owned by the user.
func (s *ProfileRepositoryStub) DeleteEducation(ctx context.Context, userID int64, id string) error {
	for i, e := range s.Education {
		if e.ID == id && e.UserID == userID {
			s.Education = append(s.Education[:i], s.Education[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ListSkills returns skills of the user.
func (s *ProfileRepositoryStub) ListSkills(ctx context.Context, userID int64) ([]model.Skill, error) {
	var out []model.Skill
	for _, sk := range s.Skills {
		if sk.UserID == userID {
			out = append(out, sk)
		}
	}
	return out, nil
}

// AddSkill appends a skill.
func (s *ProfileRepositoryStub) AddSkill(ctx context.Context, item *model.Skill) error {
	s.Skills = append(s.Skills, *item)
	return nil
}

// UpdateSkill replaces a skill owned by the user.
func (s *ProfileRepositoryStub) UpdateSkill(ctx context.Context, item *model.Skill) error {
	for i, sk := range s.Skills {
		if sk.ID == item.ID && sk.UserID == item.UserID {
			s.Skills[i] = *item
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteSkill removes a skill owned by the user.
func (s *ProfileRepositoryStub) DeleteSkill(ctx context.Context, userID int64, id string) error {
	for i, sk := range s.Skills {
		if sk.ID == id && sk.UserID == userID {
			s.Skills = append(s.Skills[:i], s.Skills[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// GetSummary returns stored summary or not found.
func (s *ProfileRepositoryStub) GetSummary(ctx context.Context, userID int64) (*model.ProfessionalSummary, error) {
	summary, ok := s.Summaries[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &summary, nil
}

// UpsertSummary stores summary.
func (s *ProfileRepositoryStub) UpsertSummary(ctx context.Context, summary *model.ProfessionalSummary) error {
	if s.Summaries == nil {
		s.Summaries = make(map[int64]model.ProfessionalSummary)
	}
	s.Summaries[summary.UserID] = *summary
	return nil
}

// PaymentRepositoryStub keeps payments in memory.
type PaymentRepositoryStub struct {
	CreateFn      func(context.Context, *model.Payment) error
	UpdateStateFn func(context.Context, string, model.PaymentState) error
	BatchFn       func(context.Context, int) ([]model.Payment, error)

	Payments map[string]*model.Payment
	Events   map[string]bool

	mu sync.Mutex
}

// NewPaymentRepositoryStub constructs an empty stub.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{
		Payments: make(map[string]*model.Payment),
		Events:   make(map[string]bool),
	}
}

// Create stores the payment.
func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, payment)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *payment
	s.Payments[payment.ID] = &stored
	return nil
}

// GetByID returns a copy of the payment.
func (s *PaymentRepositoryStub) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Payments[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *p
	return &out, nil
}

// GetByInvoice looks the payment up by gateway invoice.
func (s *PaymentRepositoryStub) GetByInvoice(ctx context.Context, invoiceID string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Payments {
		if p.InvoiceID == invoiceID {
			out := *p
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// AttachInvoice stores gateway identifiers.
func (s *PaymentRepositoryStub) AttachInvoice(ctx context.Context, id, invoiceID, paymentURL string, state model.PaymentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Payments[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.InvoiceID = invoiceID
	p.PaymentURL = paymentURL
	p.State = state
	return nil
}

// UpdateState stores new state.
func (s *PaymentRepositoryStub) UpdateState(ctx context.Context, id string, state model.PaymentState) error {
	if s.UpdateStateFn != nil {
		return s.UpdateStateFn(ctx, id, state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Payments[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.State = state
	return nil
}

// SelectBatchForReconciliation returns non-final payments with an invoice.
func (s *PaymentRepositoryStub) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Payment
	for _, p := range s.Payments {
		if p.InvoiceID != "" && !p.State.Final() && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

// MarkEventProcessed reports first delivery of (invoice, state).
func (s *PaymentRepositoryStub) MarkEventProcessed(ctx context.Context, invoiceID string, state model.PaymentState) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Events == nil {
		s.Events = make(map[string]bool)
	}
	key := invoiceID + "/" + string(state)
	if s.Events[key] {
		return false, nil
	}
	s.Events[key] = true
	return true, nil
}

// SessionRepositoryStub stores active orders in memory.
type SessionRepositoryStub struct {
	ActiveOrderFn    func(context.Context, int64) (string, error)
	SetActiveOrderFn func(context.Context, int64, string) error

	Active map[int64]string
	mu     sync.Mutex
}

// NewSessionRepositoryStub constructs an empty stub.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{Active: make(map[int64]string)}
}

// ActiveOrder returns bound order or not found.
func (s *SessionRepositoryStub) ActiveOrder(ctx context.Context, userID int64) (string, error) {
	if s.ActiveOrderFn != nil {
		return s.ActiveOrderFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.Active[userID]
	if !ok {
		return "", domainErrors.ErrNotFound
	}
	return id, nil
}

// SetActiveOrder binds the order.
func (s *SessionRepositoryStub) SetActiveOrder(ctx context.Context, userID int64, orderID string) error {
	if s.SetActiveOrderFn != nil {
		return s.SetActiveOrderFn(ctx, userID, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Active == nil {
		s.Active = make(map[int64]string)
	}
	s.Active[userID] = orderID
	return nil
}

// ClearActiveOrder removes binding.
func (s *SessionRepositoryStub) ClearActiveOrder(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Active, userID)
	return nil
}

// WizardRepositoryStub stores wizard states in memory.
type WizardRepositoryStub struct {
	SaveFn func(context.Context, model.WizardState) error

	States map[string]model.WizardState
	Saves  int
}

// NewWizardRepositoryStub constructs an empty stub.
func NewWizardRepositoryStub() *WizardRepositoryStub {
	return &WizardRepositoryStub{States: make(map[string]model.WizardState)}
}

func wizardKey(userID int64, orderID string) string {
	return fmt.Sprintf("%d/%s", userID, orderID)
}

// Get returns stored state or not found.
func (s *WizardRepositoryStub) Get(ctx context.Context, userID int64, orderID string) (*model.WizardState, error) {
	state, ok := s.States[wizardKey(userID, orderID)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &state, nil
}

// Save stores state unless SaveFn fails.
func (s *WizardRepositoryStub) Save(ctx context.Context, state model.WizardState) error {
	s.Saves++
	if s.SaveFn != nil {
		if err := s.SaveFn(ctx, state); err != nil {
			return err
		}
	}
	if s.States == nil {
		s.States = make(map[string]model.WizardState)
	}
	s.States[wizardKey(state.UserID, state.OrderID)] = state
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.ProfileRepository = (*ProfileRepositoryStub)(nil)
	_ repository.PaymentRepository = (*PaymentRepositoryStub)(nil)
	_ repository.SessionRepository = (*SessionRepositoryStub)(nil)
	_ repository.WizardRepository  = (*WizardRepositoryStub)(nil)
)
