package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/dto"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/middleware"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/cache"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	userCache   *cache.UserCache
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase usecase.UserUseCase,
	userCache *cache.UserCache,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		userCache:   userCache,
		logger:      logger,
	}
}

// GetUser handles the GET /api/v1/users/:userId endpoint
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if cached, hit := h.userCache.Get(c.Request.Context(), userID); hit {
		c.JSON(http.StatusOK, dto.NewUserResponse(cached))
		return
	}

	user, err := h.userUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.userCache.Set(c.Request.Context(), user)
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetMe handles the GET /api/v1/users/me endpoint
func (h *UserHandler) GetMe(c *gin.Context) {
	current := middleware.CurrentUser(c)
	if current == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	// The middleware already loaded a fresh row, no cache round trip
	c.JSON(http.StatusOK, dto.NewUserResponse(current))
}

// ListUsers handles the GET /api/v1/users endpoint
func (h *UserHandler) ListUsers(c *gin.Context) {
	page := dto.PageFromQuery(c)

	users, err := h.userUseCase.ListUsers(c.Request.Context(), page)
	if err != nil {
		h.logger.Error("Error listing users", map[string]any{
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// ListTransactions handles the GET /api/v1/users/:userId/transactions endpoint
func (h *UserHandler) ListTransactions(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	// Students may only read their own history; admins may read anyone's
	current := middleware.CurrentUser(c)
	if current == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if current.ID != userID && !current.IsAdmin() {
		respondError(c, domainerr.ErrForbidden)
		return
	}

	page := dto.PageFromQuery(c)
	txs, err := h.userUseCase.ListTransactions(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(txs))
}
