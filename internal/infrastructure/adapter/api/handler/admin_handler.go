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

// Descriptions recorded when an admin mutation carries none
const (
	addBalanceNote      = "Admin added balance"
	subtractBalanceNote = "Admin subtracted balance"
)

// AdminHandler handles privileged balance mutations and ledger reads
type AdminHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	userCache     *cache.UserCache
	logger        coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	ledgerUseCase usecase.LedgerUseCase,
	userCache *cache.UserCache,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		ledgerUseCase: ledgerUseCase,
		userCache:     userCache,
		logger:        logger,
	}
}

// AddBalance handles the POST /api/v1/admin/users/:userId/balance/add endpoint
func (h *AdminHandler) AddBalance(c *gin.Context) {
	h.applyChange(c, 1, addBalanceNote)
}

// SubtractBalance handles the POST /api/v1/admin/users/:userId/balance/subtract endpoint
func (h *AdminHandler) SubtractBalance(c *gin.Context) {
	h.applyChange(c, -1, subtractBalanceNote)
}

// applyChange runs one signed balance mutation through the ledger
func (h *AdminHandler) applyChange(c *gin.Context, sign int64, defaultNote string) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.BalanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidTransactionType),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	admin := middleware.CurrentUser(c)
	if admin == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	description := req.Description
	if description == "" {
		description = defaultNote
	}

	user, err := h.ledgerUseCase.ApplyDelta(c.Request.Context(), usecase.Delta{
		UserID:      userID,
		Amount:      sign * req.Amount,
		Description: description,
		AdminID:     &admin.ID,
	})
	if err != nil {
		h.logger.Error("Balance mutation failed", map[string]any{
			"user_id":  userID,
			"admin_id": admin.ID,
			"amount":   sign * req.Amount,
			"error":    err.Error(),
		})
		respondError(c, err)
		return
	}

	h.userCache.Invalidate(c.Request.Context(), userID)

	c.JSON(http.StatusOK, dto.BalanceChangeResponse{
		UserID:  user.ID,
		Balance: user.Balance,
	})
}

// ListAllTransactions handles the GET /api/v1/admin/transactions endpoint
func (h *AdminHandler) ListAllTransactions(c *gin.Context) {
	page := dto.PageFromQuery(c)

	txs, err := h.ledgerUseCase.ListAllTransactions(c.Request.Context(), page)
	if err != nil {
		h.logger.Error("Error listing ledger", map[string]any{
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(txs))
}
