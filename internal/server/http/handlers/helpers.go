package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/filestore"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
	"github.com/polkiloo/cvorders/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: the first matching sentinel wins.
var errorMappings = []errorMapping{
	{domainErrors.ErrValidation, http.StatusBadRequest, "validation_failed", "Validation failed"},
	{domainErrors.ErrInvalidStatus, http.StatusBadRequest, "invalid_status", "Invalid order status"},
	{domainErrors.ErrUnknownPackage, http.StatusBadRequest, "unknown_package", "Package not found"},
	{domainErrors.ErrUnknownTemplate, http.StatusBadRequest, "unknown_template", "Template not found"},
	{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials"},
	{domainErrors.ErrNoIdentity, http.StatusUnauthorized, "no_identity", "Authentication required"},
	{domainErrors.ErrInvalidWebhook, http.StatusUnauthorized, "invalid_webhook", "Invalid webhook"},
	{domainErrors.ErrForbidden, http.StatusForbidden, "forbidden", "Access denied"},
	{domainErrors.ErrPaymentNotAllowed, http.StatusForbidden, "payment_not_allowed", "Payment does not belong to this order"},
	{domainErrors.ErrNoActiveOrder, http.StatusNotFound, "no_active_order", "No active order"},
	{domainErrors.ErrNotFound, http.StatusNotFound, "not_found", "Not found"},
	{domainErrors.ErrAlreadyExists, http.StatusConflict, "already_exists", "Already exists"},
	{domainErrors.ErrConflict, http.StatusConflict, "conflict", "Order was modified concurrently"},
	{domainErrors.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "Status transition not allowed"},
	{domainErrors.ErrNoCompletedFiles, http.StatusConflict, "no_completed_files", "Order has no completed files"},
	{filestore.ErrTooLarge, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds upload limit"},
	{domainErrors.ErrResumeRequired, http.StatusUnprocessableEntity, "resume_required", "Please upload your resume to continue"},
	{domainErrors.ErrJumpNotAllowed, http.StatusUnprocessableEntity, "jump_not_allowed", "Jumping between steps is not allowed"},
	{domainErrors.ErrStepOutOfRange, http.StatusUnprocessableEntity, "step_out_of_range", "Step index out of range"},
	{domainErrors.ErrGateway, http.StatusBadGateway, "gateway_error", "Payment gateway error"},
}

func respond(c *gin.Context, status int, code, message string, data any) {
	c.JSON(status, dto.Result{Code: code, Message: message, Data: data})
}

func success(c *gin.Context, code, message string, data any) {
	respond(c, http.StatusOK, code, message, data)
}

func badRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, "bad_request", message, nil)
}

// fail maps err to a status and result code. Overrides replace the default
// code and message for specific sentinels.
func fail(c *gin.Context, err error, overrides ...errorMapping) {
	for _, m := range append(overrides, errorMappings...) {
		if !errors.Is(err, m.target) {
			continue
		}
		var data any
		var verr *domainErrors.ValidationError
		if errors.As(err, &verr) {
			data = verr.Fields
		}
		if m.status == 0 {
			m.status = statusOf(m.target)
		}
		respond(c, m.status, m.code, m.message, data)
		return
	}
	_ = c.Error(err)
	respond(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
}

func statusOf(target error) int {
	for _, m := range errorMappings {
		if m.target == target {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

var orderNotFound = errorMapping{target: domainErrors.ErrNotFound, code: "order_not_found", message: "Order not found"}
