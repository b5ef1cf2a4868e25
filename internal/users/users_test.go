package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skybook/internal/shared/testutil"
	"skybook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role         users.Role
		staffActions bool
		manageUsers  bool
	}{
		{users.RoleCustomer, false, false},
		{users.RoleStaff, true, false},
		{users.RoleAdmin, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.staffActions, tt.role.CanConfirmReservations())
			assert.Equal(t, tt.staffActions, tt.role.CanCancelAnyReservation())
			assert.Equal(t, tt.staffActions, tt.role.CanManageFleet())
			assert.Equal(t, tt.staffActions, tt.role.CanViewManifests())
			assert.Equal(t, tt.staffActions, tt.role.CanViewAllReservations())
			assert.Equal(t, tt.manageUsers, tt.role.CanManageUsers())
		})
	}

	role, err := users.ParseRole(" staff ")
	require.NoError(t, err)
	assert.Equal(t, users.RoleStaff, role)

	_, err = users.ParseRole("pilot")
	assert.Error(t, err)
}

func TestAccessToken(t *testing.T) {
	user := &users.User{ID: uuid.New(), Email: "crew@example.com", Role: users.RoleStaff}

	token, err := users.IssueAccessToken("secret", user, time.Hour)
	require.NoError(t, err)

	actor, err := users.ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, users.RoleStaff, actor.Role)
	assert.True(t, actor.Owns(user.ID))
	assert.False(t, actor.Owns(uuid.New()))

	_, err = users.ParseAccessToken("other-secret", token)
	assert.ErrorIs(t, err, users.ErrInvalidToken)

	expired, err := users.IssueAccessToken("secret", user, -time.Minute)
	require.NoError(t, err)
	_, err = users.ParseAccessToken("secret", expired)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestAccessToken_RejectsRefreshTokens(t *testing.T) {
	claims := users.Claims{
		UserID: uuid.NewString(),
		Role:   "CUSTOMER",
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = users.ParseAccessToken("secret", token)
	assert.ErrorIs(t, err, users.ErrInvalidToken)
}

func TestService_CreateAndList(t *testing.T) {
	db := testutil.NewDB(t)
	svc := users.NewService(users.NewRepository(db))
	admin := testutil.ActorOf(testutil.CreateUser(t, db, users.RoleAdmin))
	ctx := context.Background()

	user, err := svc.Create(ctx, admin, users.CreateUserRequest{
		FirstName: "Sam",
		LastName:  "Agent",
		Email:     " Sam.Agent@SkyBook.dev ",
		Role:      "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam.agent@skybook.dev", user.Email)
	assert.Equal(t, users.RoleStaff, user.Role)

	_, err = svc.Create(ctx, admin, users.CreateUserRequest{FirstName: "X", LastName: "Y", Email: "sam.agent@skybook.dev"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	customer, err := svc.Create(ctx, admin, users.CreateUserRequest{FirstName: "Tess", LastName: "T", Email: "tess@example.com"})
	require.NoError(t, err)
	assert.Equal(t, users.RoleCustomer, customer.Role)

	staffOnly, total, err := svc.List(ctx, admin, users.RoleStaff, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, staffOnly, 1)
	assert.Equal(t, user.ID, staffOnly[0].ID)

	_, _, err = svc.List(ctx, testutil.ActorOf(customer), "", 10, 0)
	assert.ErrorIs(t, err, users.ErrForbidden)
	_, err = svc.Create(ctx, users.Actor{UserID: user.ID, Role: users.RoleStaff}, users.CreateUserRequest{Email: "z@example.com"})
	assert.ErrorIs(t, err, users.ErrForbidden)
}

func TestService_ChangeRoleKeepsLastAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := users.NewService(users.NewRepository(db))
	adminUser := testutil.CreateUser(t, db, users.RoleAdmin)
	admin := testutil.ActorOf(adminUser)
	target := testutil.CreateUser(t, db, users.RoleCustomer)
	ctx := context.Background()

	promoted, err := svc.ChangeRole(ctx, admin, target.ID, users.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, promoted.Role)

	_, err = svc.ChangeRole(ctx, admin, adminUser.ID, users.RoleStaff)
	require.NoError(t, err)

	_, err = svc.ChangeRole(ctx, testutil.ActorOf(promoted), target.ID, users.RoleCustomer)
	assert.ErrorIs(t, err, users.ErrLastAdmin)

	_, err = svc.ChangeRole(ctx, testutil.ActorOf(promoted), uuid.New(), users.RoleStaff)
	assert.ErrorIs(t, err, users.ErrUserNotFound)

	_, err = svc.ChangeRole(ctx, users.Actor{UserID: target.ID, Role: users.RoleStaff}, target.ID, users.RoleCustomer)
	assert.ErrorIs(t, err, users.ErrForbidden)
}

func TestController_MeAndRoleChange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, users.RoleAdmin)
	customer := testutil.CreateUser(t, db, users.RoleCustomer)

	engine := gin.New()
	auth := func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader("X-Test-User"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		role := users.RoleCustomer
		if id == admin.ID {
			role = users.RoleAdmin
		}
		users.SetActor(c, users.Actor{UserID: id, Role: role})
		c.Next()
	}
	users.SetupUserRoutes(engine.Group("/api/v1"), users.NewController(users.NewService(users.NewRepository(db))), auth)

	do := func(method, path, as, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", as)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/api/v1/users/me", customer.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), customer.Email)

	path := "/api/v1/users/" + customer.ID.String() + "/role"
	assert.Equal(t, http.StatusForbidden, do(http.MethodPatch, path, customer.ID.String(), `{"role":"ADMIN"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPatch, path, admin.ID.String(), `{"role":"PILOT"}`).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPatch, path, admin.ID.String(), `{"role":"staff"}`).Code)

	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/api/v1/users?role=pilot", admin.ID.String(), "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/v1/users/me", "nobody", "").Code)
}
