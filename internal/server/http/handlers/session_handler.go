package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

// SessionFacade combines what the session endpoints read.
type SessionFacade interface {
	ProfileFacade
	OrderFacade
}

// SessionHandler exposes the server-held session of the caller.
type SessionHandler struct {
	facade SessionFacade
}

func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Get handles GET /api/session. activeOrder is null when nothing is bound.
func (h *SessionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	userID := CurrentUserID(c)

	user, err := h.facade.Profile(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}
	resp := dto.SessionResponse{User: dto.NewUserResponse(user)}

	order, err := h.facade.ActiveOrder(ctx, userID)
	switch {
	case errors.Is(err, domainErrors.ErrNoActiveOrder):
	case err != nil:
		fail(c, err)
		return
	default:
		o := dto.NewOrderResponse(*order)
		resp.ActiveOrder = &o
	}
	success(c, "session", "Session", resp)
}

// ClearOrder handles DELETE /api/session/order.
func (h *SessionHandler) ClearOrder(c *gin.Context) {
	if err := h.facade.ClearActiveOrder(c.Request.Context(), CurrentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	success(c, "session_cleared", "Active order cleared", nil)
}
