package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apartment_booking_backend/internal/models"
	"apartment_booking_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedEngine(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitSessionAuth("test-secret", time.Hour)

	engine := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetInt64("userID"),
			"username": c.GetString("username"),
			"userRole": c.GetString("userRole"),
		})
	})
	engine.GET("/protected", chain...)
	return engine
}

func request(engine *gin.Engine, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	engine := newProtectedEngine(t)

	token, err := utils.GenerateSessionToken(7, "dana", models.RoleUser)
	require.NoError(t, err)

	rec := request(engine, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userID":7`)
	assert.Contains(t, rec.Body.String(), `"username":"dana"`)
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	engine := newProtectedEngine(t)

	token, err := utils.GenerateSessionToken(7, "dana", models.RoleUser)
	require.NoError(t, err)

	rec := request(engine, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	engine := newProtectedEngine(t)

	rec := request(engine, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(engine, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "garbage"})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsTokenSignedWithOtherSecret(t *testing.T) {
	utils.InitSessionAuth("other-secret", time.Hour)
	token, err := utils.GenerateSessionToken(7, "dana", models.RoleUser)
	require.NoError(t, err)

	engine := newProtectedEngine(t) // resets the secret to test-secret
	rec := request(engine, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	engine := newProtectedEngine(t, RoleAuthMiddleware(models.RoleAdmin))

	adminToken, err := utils.GenerateSessionToken(1, "admin", models.RoleAdmin)
	require.NoError(t, err)
	userToken, err := utils.GenerateSessionToken(2, "dana", models.RoleUser)
	require.NoError(t, err)

	rec := request(engine, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: adminToken})
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(engine, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: userToken})
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
