package handler

import (
	"strconv"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/request"
	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/internal/presentation/http/middleware"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, _ := c.Get(middleware.ContextUserRole)
	r, _ := role.(enum.UserRole)
	return r
}

// actor returns the authenticated user, writing a 401 when there is none.
func actor(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return uuid.Nil, false
	}
	return *userID, true
}

// pathID parses the :id path parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, writing a 400 when it cannot.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return false
	}
	return true
}

// parseRange reads startDate and the exclusive endDate from the query and
// converts them to an inclusive range. A missing bound is open.
func parseRange(q request.DateRangeQuery) (period.Range, error) {
	var v apperror.Collector
	start, err := parseOptionalDate(q.StartDate)
	v.Check(err == nil, "startDate", "must be a YYYY-MM-DD date")
	end, err := parseOptionalDate(q.EndDate)
	v.Check(err == nil, "endDate", "must be a YYYY-MM-DD date")
	if err := v.Err(); err != nil {
		return period.Range{}, err
	}

	r := period.FromExclusive(start, end)
	if !r.Valid() {
		return period.Range{}, apperror.NewFieldError("endDate", "must be after startDate")
	}
	return r, nil
}

// queryRange binds and parses the date window of the request, writing a
// 400 on failure.
func queryRange(c *gin.Context) (period.Range, bool) {
	var q request.DateRangeQuery
	if !bindQuery(c, &q) {
		return period.Range{}, false
	}
	r, err := parseRange(q)
	if err != nil {
		response.Error(c, err)
		return period.Range{}, false
	}
	return r, true
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return period.ParseDate(s)
}

// queryUUID parses an optional uuid query parameter.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, apperror.NewFieldError(name, "must be a uuid"))
		return nil, false
	}
	return &id, true
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(c, apperror.NewFieldError(name, "must be true or false"))
		return nil, false
	}
	return &b, true
}
