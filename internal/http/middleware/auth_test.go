package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"seaferry/internal/domain"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthRouter() (*gin.Engine, *domain.RequestContext) {
	gin.SetMode(gin.TestMode)
	var seen domain.RequestContext
	r := gin.New()
	r.GET("/private", Auth(testSecret), func(c *gin.Context) {
		rc, _ := GetRequestContext(c)
		seen = rc
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &seen
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r, seen := newAuthRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 42,
		"role":    "customer",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthRequest(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if seen.UserID != 42 || seen.Role != "customer" {
		t.Fatalf("request context = %+v", *seen)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	r, _ := newAuthRouter()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, []byte("other-secret"), jwt.MapClaims{
			"user_id": 42, "role": "customer", "exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"user_id": 42, "role": "customer", "exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing user id", "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"role": "customer", "exp": time.Now().Add(time.Hour).Unix(),
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := doAuthRequest(r, tc.header); w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		role := c.Query("role")
		SetRequestContext(c, domain.RequestContext{UserID: 1, Role: role})
	}, RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?role=admin", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin?role=customer", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("customer status = %d, want 403", w.Code)
	}
}
