package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

// DateLayout is the format of date query parameters
const DateLayout = "2006-01-02"

// parseUUIDParam reads a UUID path parameter, answering 400 when malformed
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD calendar day in loc
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, loc)
}

// parseOptionalDate is parseDate for an optional query parameter
func parseOptionalDate(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
