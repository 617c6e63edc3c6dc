package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret"
	testAdminRole = "sindauto:admin"
)

func init() {
	_ = logging.InitLogger()
	gin.SetMode(gin.TestMode)
}

func createTestJWT(t *testing.T, secret string, roles []string, expiresIn time.Duration) string {
	t.Helper()
	claims := models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user123",
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		PreferredUsername: "admin.sindauto",
	}
	claims.RealmAccess.Roles = roles

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAdminRouter(secret string) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(secret), RequireAdmin(testAdminRole))
	router.GET("/test", func(c *gin.Context) {
		claims, err := ClaimsFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": claims.PreferredUsername})
	})
	return router
}

func doWithAuth(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Admin(t *testing.T) {
	router := newAdminRouter(testSecret)
	token := createTestJWT(t, testSecret, []string{"offline_access", testAdminRole}, time.Hour)

	w := doWithAuth(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin.sindauto")
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	router := newAdminRouter(testSecret)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + createTestJWT(t, "other-secret", []string{testAdminRole}, time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + createTestJWT(t, testSecret, []string{testAdminRole}, -time.Minute), http.StatusUnauthorized},
		{"missing role", "Bearer " + createTestJWT(t, testSecret, []string{"citizen"}, time.Hour), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doWithAuth(router, tt.header).Code)
		})
	}
}

func TestAuthMiddleware_RejectsNoneAlgorithm(t *testing.T) {
	router := newAdminRouter(testSecret)

	claims := models.JWTClaims{}
	claims.RealmAccess.Roles = []string{testAdminRole}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doWithAuth(router, "Bearer "+token).Code)
}

func TestAuthMiddleware_NotConfigured(t *testing.T) {
	router := newAdminRouter("")
	token := createTestJWT(t, testSecret, []string{testAdminRole}, time.Hour)

	assert.Equal(t, http.StatusServiceUnavailable, doWithAuth(router, "Bearer "+token).Code)
}

func TestRequireAdmin_NoClaims(t *testing.T) {
	router := gin.New()
	router.Use(RequireAdmin(testAdminRole))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, doWithAuth(router, "").Code)
}
