package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuspoints/points-api/internal/domain/port/usecase"
)

// PageFromQuery reads offset/limit query parameters and returns a
// normalized page. Unparseable values fall back to the defaults.
func PageFromQuery(c *gin.Context) usecase.Page {
	page := usecase.Page{}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page.Offset = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page.Limit = v
		}
	}
	return page.Normalize()
}
