package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
	"github.com/polkiloo/cvorders/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	token, err := h.facade.Register(c.Request.Context(), model.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		fail(c, err, errorMapping{
			target:  domainErrors.ErrAlreadyExists,
			code:    "user_exists",
			message: "User with similar email already exists!",
		})
		return
	}

	middleware.SetAuthCookie(c, token)
	respond(c, http.StatusCreated, "user_registered", "User registered successfully", dto.TokenResponse{Token: token})
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	success(c, "logged_in", "Logged in successfully", dto.TokenResponse{Token: token})
}
