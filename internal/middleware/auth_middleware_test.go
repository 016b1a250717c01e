package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/auth"
)

type fakeResolver struct {
	users map[int64]*models.User
}

func (f *fakeResolver) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func newAuthTestRouter(jwtService *auth.JWTService, resolver PrincipalResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService, resolver), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	return router
}

func authTestFixture(t *testing.T) (*auth.JWTService, *fakeResolver, string) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
	user := &models.User{ID: 7, Role: "PATIENT"}
	token, _, err := jwtService.GenerateToken(user)
	require.NoError(t, err)
	return jwtService, &fakeResolver{users: map[int64]*models.User{7: user}}, token
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	jwtService, resolver, token := authTestFixture(t)
	router := newAuthTestRouter(jwtService, resolver)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	jwtService, resolver, token := authTestFixture(t)
	router := newAuthTestRouter(jwtService, resolver)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewarePrefersCookieOverHeader(t *testing.T) {
	jwtService, resolver, token := authTestFixture(t)
	router := newAuthTestRouter(jwtService, resolver)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	req.Header.Set("Authorization", "Bearer garbage-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	jwtService, resolver, _ := authTestFixture(t)
	router := newAuthTestRouter(jwtService, resolver)

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	jwtService, resolver, _ := authTestFixture(t)
	router := newAuthTestRouter(jwtService, resolver)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey: "test-secret",
		TokenExp:  -time.Minute,
	})
	token, _, err := expired.GenerateToken(&models.User{ID: 7, Role: "PATIENT"})
	require.NoError(t, err)

	jwtService, resolver, _ := authTestFixture(t)
	router := newAuthTestRouter(jwtService, resolver)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	jwtService, _, token := authTestFixture(t)
	// Resolver without the user simulates deletion after token issue
	router := newAuthTestRouter(jwtService, &fakeResolver{users: map[int64]*models.User{}})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
