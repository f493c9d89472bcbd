package middleware

import (
	"log"
	"strconv"

	"github.com/aquaflow/sachet-api/internal/presentation/http/dto/response"
	"github.com/aquaflow/sachet-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeyFunc derives the rate limit key of a request. An empty key skips the
// limiter.
type KeyFunc func(c *gin.Context) string

// ByClientIP keys requests by remote address.
func ByClientIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// ByUser keys requests by the authenticated user, falling back to the
// client IP.
func ByUser(c *gin.Context) string {
	if id, ok := c.Get(ContextUserID); ok {
		if userID, ok := id.(uuid.UUID); ok {
			return "user:" + userID.String()
		}
	}
	return ByClientIP(c)
}

// RateLimit consumes one unit of the key's budget per request and rejects
// the request with 429 once it is spent. A limiter failure lets the request
// through.
func RateLimit(limiter ratelimit.Limiter, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}

		res, err := limiter.Consume(c.Request.Context(), k)
		if err != nil {
			log.Printf("rate limiter unavailable for %s: %v", k, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			response.TooManyRequests(c, res.RetryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}
