package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

// OrderHandler processes customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), req.PackageTitle)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "order_created", "Order created successfully", dto.NewOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "orders", "Orders", dto.Map(orders, dto.NewOrderResponse))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "order", "Order", dto.NewOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "order_deleted", "Order deleted successfully", nil)
}

// UpdateResume handles PUT /api/orders/:id/resume as multipart with a file field.
func (h *OrderHandler) UpdateResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "File is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "File is unreadable")
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}
	order, err := h.facade.UpdateResume(c.Request.Context(), CurrentUserID(c), c.Param("id"), name, c.PostForm("description"), file)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "resume_updated", "Resume updated successfully", dto.NewOrderResponse(*order))
}

// UpdateExtras handles PUT /api/orders/:id/extras.
func (h *OrderHandler) UpdateExtras(c *gin.Context) {
	var req dto.ExtraServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	order, err := h.facade.UpdateExtraServices(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Model())
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "order_updated", "Order updated successfully", dto.NewOrderResponse(*order))
}

// SaveTemplate handles PUT /api/orders/:id/template.
func (h *OrderHandler) SaveTemplate(c *gin.Context) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	order, err := h.facade.SaveTemplate(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Name)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "template_saved", "Order template saved successfully", dto.NewOrderResponse(*order))
}

// RequestRevision handles POST /api/orders/:id/revision.
// An exhausted allowance is reported with 200 and a distinct code.
func (h *OrderHandler) RequestRevision(c *gin.Context) {
	res, err := h.facade.RequestRevision(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	data := dto.RevisionResponse{Remaining: res.Remaining, Order: dto.NewOrderResponse(*res.Order)}
	if !res.Granted {
		success(c, "revisions_exhausted", "Your order has no more revision requests", data)
		return
	}
	success(c, "revision_requested", "Revision requested successfully", data)
}

// Download handles POST /api/orders/:id/download. An empty body selects the latest file.
func (h *OrderHandler) Download(c *gin.Context) {
	var req dto.DownloadRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, "Invalid request body")
			return
		}
	}
	file, err := h.facade.DownloadFile(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.FileName)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "file_downloaded", "File Downloaded Successfully", dto.DownloadResponse{FileURL: file.URL})
}

// Confirm handles POST /api/orders/:id/confirm.
func (h *OrderHandler) Confirm(c *gin.Context) {
	order, err := h.facade.ConfirmOrder(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "order_confirmed", "Order confirmed successfully", dto.NewOrderResponse(*order))
}
