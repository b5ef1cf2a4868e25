package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signedToken(t *testing.T, role users.Role) (string, uuid.UUID) {
	t.Helper()
	user := &users.User{ID: uuid.New(), Email: "crew@example.com", Role: role}
	token, err := users.IssueAccessToken(testSecret, user, time.Hour)
	require.NoError(t, err)
	return token, user.ID
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		actor, ok := users.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID.String(), "role": actor.Role})
	})
	engine.GET("/", handlers...)
	return engine
}

func TestJWTAuth(t *testing.T) {
	valid, _ := signedToken(t, users.RoleCustomer)
	foreign, err := users.IssueAccessToken("other-secret", &users.User{ID: uuid.New(), Role: users.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := users.IssueAccessToken(testSecret, &users.User{ID: uuid.New(), Role: users.RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	engine := newEngine(JWTAuth(testSecret))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	engine := newEngine(OptionalAuth(testSecret))

	t.Run("anonymous passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})

	t.Run("token populates actor", func(t *testing.T) {
		token, id := signedToken(t, users.RoleStaff)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id.String())
	})

	t.Run("garbage token is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
	})
}

func TestRequireCapability(t *testing.T) {
	engine := newEngine(JWTAuth(testSecret), RequireCapability(users.Role.CanManageFleet))

	for role, status := range map[users.Role]int{
		users.RoleCustomer: http.StatusForbidden,
		users.RoleStaff:    http.StatusOK,
		users.RoleAdmin:    http.StatusOK,
	} {
		t.Run(string(role), func(t *testing.T) {
			token, _ := signedToken(t, role)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, status, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
