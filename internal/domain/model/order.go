package model

import (
	"fmt"
	"time"
)

// OrderStatus describes fulfillment lifecycle of a CV order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusRevision   OrderStatus = "Revision"
	OrderStatusComplete   OrderStatus = "Complete"
)

// ParseOrderStatus validates raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusRevision, OrderStatusComplete:
		return s, nil
	default:
		return "", fmt.Errorf("unknown order status %q", raw)
	}
}

// Actor identifies who requested a status change.
type Actor string

const (
	ActorUser   Actor = "user"
	ActorStaff  Actor = "staff"
	ActorSystem Actor = "system"
)

// Currency is a display currency with conversion rate.
type Currency struct {
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

// Package is a priced service tier. Immutable once attached to an order.
type Package struct {
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	Currency      Currency `json:"currency"`
	OrderRevision int      `json:"orderRevision"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
}

// Template is a visual CV template from the catalog.
type Template struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// OrderFile is metadata of an uploaded source or deliverable file.
type OrderFile struct {
	ID              string `json:"id"`
	FileStorageName string `json:"fileStorageName"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	URL             string `json:"url"`
}

// Order describes a purchase of a CV writing package.
type Order struct {
	ID                          string
	UserID                      int64
	Package                     Package
	Status                      OrderStatus
	RevisionsUsed               int
	RequireCoverLetter          bool
	CoverLetterDetails          string
	RequireLinkedInOptimization bool
	LinkedInURL                 string
	Template                    *Template
	Resume                      *OrderFile
	CompletedFiles              []OrderFile
	Note                        string
	Date                        time.Time
	DeliveryDate                *time.Time
	SubmittedAt                 *time.Time
	UpdatedAt                   time.Time
}

// RevisionsRemaining returns unused revision requests of the package allowance.
func (o *Order) RevisionsRemaining() int {
	left := o.Package.OrderRevision - o.RevisionsUsed
	if left < 0 {
		return 0
	}
	return left
}

// CanDownload reports whether deliverables are available.
func (o *Order) CanDownload() bool {
	return len(o.CompletedFiles) > 0
}

// HasResume reports whether a source resume was uploaded.
func (o *Order) HasResume() bool {
	return o.Resume != nil && o.Resume.Name != ""
}

// CompletedFile finds deliverable by its display or storage name.
func (o *Order) CompletedFile(name string) (OrderFile, bool) {
	for _, f := range o.CompletedFiles {
		if f.Name == name || f.FileStorageName == name {
			return f, true
		}
	}
	return OrderFile{}, false
}

// ExtraServices holds optional cover letter and LinkedIn add-ons.
// Nil pointers leave the stored value untouched.
type ExtraServices struct {
	RequireCoverLetter          *bool
	CoverLetterDetails          *string
	RequireLinkedInOptimization *bool
	LinkedInURL                 *string
}

// Apply merges non-nil fields into the order.
func (e ExtraServices) Apply(o *Order) {
	if e.RequireCoverLetter != nil {
		o.RequireCoverLetter = *e.RequireCoverLetter
	}
	if e.CoverLetterDetails != nil {
		o.CoverLetterDetails = *e.CoverLetterDetails
	}
	if e.RequireLinkedInOptimization != nil {
		o.RequireLinkedInOptimization = *e.RequireLinkedInOptimization
	}
	if e.LinkedInURL != nil {
		o.LinkedInURL = *e.LinkedInURL
	}
}

// StatusChange is a single entry of the order status history.
type StatusChange struct {
	ID        int64
	OrderID   string
	From      OrderStatus
	To        OrderStatus
	Actor     Actor
	ChangedAt time.Time
}

// StatusUpdate describes a compare-and-set status write.
type StatusUpdate struct {
	OrderID         string
	From            OrderStatus
	To              OrderStatus
	Actor           Actor
	ConsumeRevision bool
	Note            *string
	DeliveryDate    *time.Time
}

// RevisionResult is the outcome of a revision request.
type RevisionResult struct {
	Granted   bool
	Remaining int
	Order     *Order
}
