package handlers

import (
	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

// StaffHandler serves the writers' dashboard.
type StaffHandler struct {
	facade StaffFacade
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(facade StaffFacade) *StaffHandler {
	return &StaffHandler{facade: facade}
}

// List handles GET /api/staff/orders with an optional status filter.
func (h *StaffHandler) List(c *gin.Context) {
	var filter *model.OrderStatus
	if raw := c.Query("status"); raw != "" {
		status, err := model.ParseOrderStatus(raw)
		if err != nil {
			fail(c, domainErrors.ErrInvalidStatus)
			return
		}
		filter = &status
	}
	orders, err := h.facade.AllOrders(c.Request.Context(), CurrentUserID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "orders", "Orders", dto.Map(orders, dto.NewOrderResponse))
}

// ChangeStatus handles PATCH /api/staff/orders/:id/status.
func (h *StaffHandler) ChangeStatus(c *gin.Context) {
	var req dto.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Model())
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "order_status_updated", "Order status updated successfully", dto.NewOrderResponse(*order))
}

// UploadFile handles POST /api/staff/orders/:id/files.
func (h *StaffHandler) UploadFile(c *gin.Context) {
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
	order, err := h.facade.UploadCompletedFile(c.Request.Context(), CurrentUserID(c), c.Param("id"), name, c.PostForm("description"), file)
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "completed_file_uploaded", "Order completed file uploaded successfully", dto.NewOrderResponse(*order))
}

// History handles GET /api/staff/orders/:id/history.
func (h *StaffHandler) History(c *gin.Context) {
	changes, err := h.facade.OrderHistory(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		fail(c, err, orderNotFound)
		return
	}
	success(c, "order_history", "Order history", dto.Map(changes, dto.NewStatusChangeResponse))
}
