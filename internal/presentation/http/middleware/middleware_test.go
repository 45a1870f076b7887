package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/enum"
	"github.com/lukusafi/laundry-api/pkg/pagination"
	"github.com/lukusafi/laundry-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}
func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (s *stubUsers) Update(context.Context, *entity.User) error            { return nil }
func (s *stubUsers) Count(context.Context) (int64, error)                  { return int64(len(s.users)), nil }
func (s *stubUsers) List(context.Context, *pagination.Params) ([]entity.User, int64, error) {
	return nil, 0, nil
}

type memoryKeys struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryKeys() *memoryKeys {
	return &memoryKeys{keys: map[string]*entity.IdempotencyKey{}}
}

func (m *memoryKeys) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[userID.String()+key], nil
}

func (m *memoryKeys) Create(_ context.Context, k *entity.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[k.UserID.String()+k.Key] = k
	return nil
}

func (m *memoryKeys) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memoryKeys) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}

type authFixture struct {
	jwt       *utils.JWTManager
	users     *stubUsers
	owner     *entity.User
	attendant *entity.User
}

func newAuthFixture() *authFixture {
	owner := &entity.User{ID: uuid.New(), Email: "owner@example.com", Name: "Owner", Role: enum.UserRoleOwner}
	attendant := &entity.User{ID: uuid.New(), Email: "desk@example.com", Name: "Desk", Role: enum.UserRoleAttendant}
	return &authFixture{
		jwt: utils.NewJWTManager("test-secret", time.Hour),
		users: &stubUsers{users: map[uuid.UUID]*entity.User{
			owner.ID:     owner,
			attendant.ID: attendant,
		}},
		owner:     owner,
		attendant: attendant,
	}
}

func (f *authFixture) token(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := f.jwt.GenerateAccessToken(u.ID, u.Email)
	require.NoError(t, err)
	return "Bearer " + tok
}

func serve(r http.Handler, method, path, auth, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (f *authFixture) router() *gin.Engine {
	r := gin.New()
	protected := r.Group("", AuthMiddleware(f.jwt, f.users))
	protected.GET("/me", func(c *gin.Context) {
		s, _ := GetSession(c)
		c.JSON(http.StatusOK, s)
	})
	protected.GET("/owner", RequireRole(enum.UserRoleOwner), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	f := newAuthFixture()
	r := f.router()

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Token abc", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Bearer not-a-jwt", "", nil).Code)
}

func TestAuthMiddleware_DeletedUserIsRejected(t *testing.T) {
	f := newAuthFixture()
	ghost := &entity.User{ID: uuid.New(), Email: "gone@example.com"}

	w := serve(f.router(), http.MethodGet, "/me", f.token(t, ghost), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_SessionCarriesStoredRole(t *testing.T) {
	f := newAuthFixture()
	r := f.router()

	w := serve(r, http.MethodGet, "/me", f.token(t, f.attendant), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"attendant"`)

	// promoting the user takes effect without a new token
	f.attendant.Role = enum.UserRoleOwner
	w = serve(r, http.MethodGet, "/me", f.token(t, f.attendant), "", nil)
	assert.Contains(t, w.Body.String(), `"role":"owner"`)
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture()
	r := f.router()

	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/owner", f.token(t, f.attendant), "", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/owner", f.token(t, f.owner), "", nil).Code)
}

func TestRequireRole_WithoutSession(t *testing.T) {
	r := gin.New()
	r.GET("/owner", RequireRole(enum.UserRoleOwner), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/owner", "", "", nil).Code)
}

func TestUserRateLimiter_LimitsPerUser(t *testing.T) {
	f := newAuthFixture()
	rl := NewUserRateLimiter(RateLimiterConfigFor(2, time.Hour))
	defer rl.Stop()

	r := gin.New()
	r.GET("/ping", AuthMiddleware(f.jwt, f.users), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	owner := f.token(t, f.owner)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", owner, "", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", owner, "", nil).Code)

	w := serve(r, http.MethodGet, "/ping", owner, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// another user has their own bucket
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ping", f.token(t, f.attendant), "", nil).Code)
	assert.Equal(t, 2, rl.ActiveUsers())
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(120, time.Minute)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	cfg = RateLimiterConfigFor(0, 0)
	assert.Equal(t, 1, cfg.BurstSize)
	assert.InDelta(t, 1.0/60, cfg.RequestsPerSecond, 1e-9)
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	f := newAuthFixture()
	keys := newMemoryKeys()
	calls := 0

	r := gin.New()
	r.POST("/orders", AuthMiddleware(f.jwt, f.users), Idempotency(IdempotencyConfig{Repo: keys}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	auth := f.token(t, f.owner)
	headers := map[string]string{IdempotencyKeyHeader: "order-1"}

	first := serve(r, http.MethodPost, "/orders", auth, `{}`, headers)
	require.Equal(t, http.StatusCreated, first.Code)

	second := serve(r, http.MethodPost, "/orders", auth, `{}`, headers)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// keys are scoped to the caller
	other := serve(r, http.MethodPost, "/orders", f.token(t, f.attendant), `{}`, headers)
	assert.Empty(t, other.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)
}

func TestIdempotency_DoesNotStoreFailures(t *testing.T) {
	f := newAuthFixture()
	keys := newMemoryKeys()

	r := gin.New()
	r.POST("/orders", AuthMiddleware(f.jwt, f.users), Idempotency(IdempotencyConfig{Repo: keys}), func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
	})

	w := serve(r, http.MethodPost, "/orders", f.token(t, f.owner), `{}`, map[string]string{IdempotencyKeyHeader: "k"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, keys.count())
}

func TestIdempotency_ExpiredKeyRunsAgain(t *testing.T) {
	f := newAuthFixture()
	keys := newMemoryKeys()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	calls := 0

	r := gin.New()
	r.POST("/expenses", AuthMiddleware(f.jwt, f.users), Idempotency(IdempotencyConfig{
		Repo: keys,
		Now:  func() time.Time { return now },
	}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	auth := f.token(t, f.owner)
	headers := map[string]string{IdempotencyKeyHeader: "exp-1"}
	serve(r, http.MethodPost, "/expenses", auth, `{}`, headers)

	now = now.Add(IdempotencyKeyTTL + time.Minute)
	w := serve(r, http.MethodPost, "/expenses", auth, `{}`, headers)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)
}

func TestLoggerMiddleware_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/x", "", "", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/x", "", "", nil)
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}
