package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func makeToken(t *testing.T, secret, subject, role string, expiry time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func authTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "staff": IsStaff(c)})
	})
	r.GET("/staff", Auth(testSecret), RequireStaff(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/open", OptionalAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r := authTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, testSecret, "user-1", "member", time.Hour))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	r := authTestRouter()
	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Token abc"},
		{"garbage", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + makeToken(t, "other-secret", "user-1", "member", time.Hour)},
		{"expired", "Bearer " + makeToken(t, testSecret, "user-1", "member", -time.Hour)},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, w.Code)
		}
	}
}

func TestRequireStaff(t *testing.T) {
	r := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, testSecret, "user-1", "member", time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("member on staff route: status = %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, testSecret, "staff-1", "staff", time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("staff on staff route: status = %d, want 200", w.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	r := authTestRouter()

	// Anonymous goes through with no identity.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK {
		t.Errorf("anonymous: status = %d", w.Code)
	}

	// A valid token attributes the request.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken(t, testSecret, "user-1", "member", time.Hour))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() == `{"user_id":""}` {
		t.Errorf("token not attributed: %d %s", w.Code, w.Body.String())
	}

	// A bad token is ignored rather than rejected.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("bad token on open route: status = %d", w.Code)
	}
}
