package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/ratelimit"
	"github.com/aquaflow/sachet-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(id uuid.UUID, role enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, id)
		c.Set(ContextUserRole, role)
		c.Next()
	}
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role enum.UserRole
		want int
	}{
		{enum.UserRoleAdmin, http.StatusOK},
		{enum.UserRoleReceptionist, http.StatusOK},
		{enum.UserRoleStorekeeper, http.StatusForbidden},
	}

	for _, tt := range tests {
		router := gin.New()
		router.GET("/settlements", withUser(uuid.New(), tt.role), RequireRole(enum.UserRoleReceptionist), ok)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settlements", nil))
		if w.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	router := gin.New()
	router.GET("/", RequireRole(enum.UserRoleAdmin), ok)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	token, err := jwt.GenerateAccessToken(userID, "Ada", string(enum.UserRoleStorekeeper))
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	var seen enum.UserRole
	router := gin.New()
	router.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		seen, _ = role.(enum.UserRole)
		ok(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if seen != enum.UserRoleStorekeeper {
		t.Fatalf("expected storekeeper role in context, got %q", seen)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestRateLimitRejectsSixthLogin(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{Requests: 5, Window: 15 * time.Minute}, 0)
	defer limiter.Close()

	router := gin.New()
	router.POST("/auth/login", RateLimit(limiter, ByClientIP), ok)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("expected a Retry-After header")
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("expected remaining 0, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
}

type failingLimiter struct{}

func (failingLimiter) Consume(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{}, context.DeadlineExceeded
}

func TestRateLimitFailsOpen(t *testing.T) {
	router := gin.New()
	router.GET("/", RateLimit(failingLimiter{}, ByClientIP), ok)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected the request through, got %d", w.Code)
	}
}

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) Get(_ context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keys[userID.String()+"/"+key], nil
}

func (r *memoryIdempotencyRepo) Create(_ context.Context, k *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[k.UserID.String()+"/"+k.Key] = k
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, k := range r.keys {
		if k.Expired(now) {
			delete(r.keys, id)
			n++
		}
	}
	return n, nil
}

func TestIdempotencyReplaysPayment(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0

	router := gin.New()
	router.POST("/settlement-payments",
		withUser(uuid.New(), enum.UserRoleReceptionist),
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"call": calls})
		})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/settlement-payments", strings.NewReader(body))
		req.Header.Set(IdempotencyKeyHeader, "pay-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send(`{"amount":1000}`)
	second := send(`{"amount":1000}`)
	if calls != 1 {
		t.Fatalf("expected the handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Fatalf("expected replay of %q, got %d %q", first.Body.String(), second.Code, second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("expected replay header")
	}

	if w := send(`{"amount":2000}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a different body, got %d", w.Code)
	}
}

func TestIdempotencySkipsFailures(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0

	router := gin.New()
	router.POST("/expenses/batch",
		withUser(uuid.New(), enum.UserRoleAdmin),
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
		})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/expenses/batch", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "batch-1")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("failed responses must not be replayed, handler ran %d times", calls)
	}
}
