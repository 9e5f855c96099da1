package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/campuspoints/points-api/internal/domain/error"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/dto"
)

// respondError maps a domain error to an HTTP status and writes the
// standardized error body
func respondError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, domainerr.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, domainerr.ErrTransactionNotFound):
		statusCode = http.StatusNotFound
		message = "Transaction not found"
	case errors.Is(err, domainerr.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidEmail),
		errors.Is(err, domainerr.ErrInvalidUsername),
		errors.Is(err, domainerr.ErrInvalidTransactionType):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domainerr.ErrInvalidCredential):
		statusCode = http.StatusUnauthorized
		message = "Invalid credential"
	case errors.Is(err, domainerr.ErrForbidden):
		statusCode = http.StatusForbidden
		message = "Forbidden"
	case errors.Is(err, domainerr.ErrEmailTaken):
		statusCode = http.StatusConflict
		message = "Email already in use"
	case errors.Is(err, domainerr.ErrUsernameTaken):
		statusCode = http.StatusConflict
		message = "Username already in use"
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// parseUserID reads the userId path parameter. On failure it writes the
// error response and returns false.
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := parseUint(c.Param("userId"))
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidUserID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
