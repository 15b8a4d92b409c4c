package dto

import (
	"time"

	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/usecase"
)

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID                          string            `json:"id"`
	UserID                      int64             `json:"userId"`
	Package                     model.Package     `json:"package"`
	Status                      string            `json:"status"`
	RevisionsUsed               int               `json:"revisionsUsed"`
	RevisionsRemaining          int               `json:"revisionsRemaining"`
	RequireCoverLetter          bool              `json:"requireCoverLetter"`
	CoverLetterDetails          string            `json:"coverLetterDetails"`
	RequireLinkedInOptimization bool              `json:"requireLinkedInOptimization"`
	LinkedInURL                 string            `json:"linkedInUrl"`
	Template                    *model.Template   `json:"template"`
	Resume                      *model.OrderFile  `json:"resume"`
	CompletedFiles              []model.OrderFile `json:"completedFiles"`
	CanDownload                 bool              `json:"canDownload"`
	Note                        string            `json:"note"`
	Date                        time.Time         `json:"date"`
	DeliveryDate                *time.Time        `json:"deliveryDate"`
	SubmittedAt                 *time.Time        `json:"submittedAt"`
	UpdatedAt                   time.Time         `json:"updatedAt"`
}

// NewOrderResponse maps an order.
func NewOrderResponse(o model.Order) OrderResponse {
	files := o.CompletedFiles
	if files == nil {
		files = []model.OrderFile{}
	}
	return OrderResponse{
		ID:                          o.ID,
		UserID:                      o.UserID,
		Package:                     o.Package,
		Status:                      string(o.Status),
		RevisionsUsed:               o.RevisionsUsed,
		RevisionsRemaining:          o.RevisionsRemaining(),
		RequireCoverLetter:          o.RequireCoverLetter,
		CoverLetterDetails:          o.CoverLetterDetails,
		RequireLinkedInOptimization: o.RequireLinkedInOptimization,
		LinkedInURL:                 o.LinkedInURL,
		Template:                    o.Template,
		Resume:                      o.Resume,
		CompletedFiles:              files,
		CanDownload:                 o.CanDownload(),
		Note:                        o.Note,
		Date:                        o.Date,
		DeliveryDate:                o.DeliveryDate,
		SubmittedAt:                 o.SubmittedAt,
		UpdatedAt:                   o.UpdatedAt,
	}
}

// CreateOrderRequest selects a package.
type CreateOrderRequest struct {
	PackageTitle string `json:"packageTitle"`
}

// ExtraServicesRequest partially updates add-on services.
type ExtraServicesRequest struct {
	RequireCoverLetter          *bool   `json:"requireCoverLetter"`
	CoverLetterDetails          *string `json:"coverLetterDetails"`
	RequireLinkedInOptimization *bool   `json:"requireLinkedInOptimization"`
	LinkedInURL                 *string `json:"linkedInUrl"`
}

func (r ExtraServicesRequest) Model() model.ExtraServices {
	return model.ExtraServices{
		RequireCoverLetter:          r.RequireCoverLetter,
		CoverLetterDetails:          r.CoverLetterDetails,
		RequireLinkedInOptimization: r.RequireLinkedInOptimization,
		LinkedInURL:                 r.LinkedInURL,
	}
}

// TemplateRequest picks a catalog template.
type TemplateRequest struct {
	Name string `json:"name"`
}

// DownloadRequest names a deliverable. Empty name selects the latest.
type DownloadRequest struct {
	FileName string `json:"fileName"`
}

// DownloadResponse points at the stored deliverable.
type DownloadResponse struct {
	FileURL string `json:"fileUrl"`
}

// RevisionResponse reports remaining revision allowance.
type RevisionResponse struct {
	Remaining int           `json:"remaining"`
	Order     OrderResponse `json:"order"`
}

// StatusChangeRequest is the staff edit payload.
type StatusChangeRequest struct {
	Status       string     `json:"status"`
	Note         *string    `json:"note"`
	DeliveryDate *time.Time `json:"deliveryDate"`
}

func (r StatusChangeRequest) Model() usecase.StatusChangeRequest {
	return usecase.StatusChangeRequest{
		To:           model.OrderStatus(r.Status),
		Note:         r.Note,
		DeliveryDate: r.DeliveryDate,
	}
}

// StatusChangeResponse is one entry of order history.
type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Actor     string    `json:"actor"`
	ChangedAt time.Time `json:"changedAt"`
}

func NewStatusChangeResponse(c model.StatusChange) StatusChangeResponse {
	return StatusChangeResponse{From: string(c.From), To: string(c.To), Actor: string(c.Actor), ChangedAt: c.ChangedAt}
}

// SessionResponse describes the caller's server-held session.
type SessionResponse struct {
	User        UserResponse   `json:"user"`
	ActiveOrder *OrderResponse `json:"activeOrder"`
}
