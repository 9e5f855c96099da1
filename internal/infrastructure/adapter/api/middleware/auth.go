package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campuspoints/points-api/internal/domain/entity"
	domainerr "github.com/campuspoints/points-api/internal/domain/error"
	authport "github.com/campuspoints/points-api/internal/domain/port/auth"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/dto"
)

// currentUserKey is the gin context key holding the authenticated user
const currentUserKey = "currentUser"

// CurrentUser returns the authenticated user set by RequireAuth, or nil
func CurrentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAuth validates the bearer token and loads the user it was
// issued for into the request context
func RequireAuth(tokens authport.TokenIssuer, users usecase.UserUseCase, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredential),
				Message: "Missing or malformed Authorization header",
			})
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredential),
				Message: "Invalid or expired token",
			})
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			// A valid token for a deleted user is treated as unauthorized
			logger.Warn("Token subject not found", map[string]any{
				"user_id": userID,
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredential),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user is not an
// administrator. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Admin role required",
			})
			return
		}
		c.Next()
	}
}
