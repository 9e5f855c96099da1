package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/campuspoints/points-api/internal/domain/error"
	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/dto"
)

// AuthHandler handles sign-in requests
type AuthHandler struct {
	identityUseCase usecase.IdentityUseCase
	logger          coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(identityUseCase usecase.IdentityUseCase, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

// Login handles the POST /api/v1/auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredential),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.identityUseCase.Login(c.Request.Context(), authport.Provider(req.Provider), req.Credential, req.FullName)
	if err != nil {
		h.logger.Info("Login failed", map[string]any{
			"provider": req.Provider,
			"error":    err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		User:        dto.NewUserResponse(result.User),
	})
}
