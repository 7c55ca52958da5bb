package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"designmecha-mes/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func runWithOperator(t *testing.T, apply func(*http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got string
	r := gin.New()
	r.Use(OperatorMiddleware())
	r.GET("/", func(c *gin.Context) {
		got = c.GetString("operator")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	apply(req)
	r.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func signToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestOperatorMiddleware(t *testing.T) {
	config.JwtKey = []byte("test-secret")

	t.Run("valid token wins", func(t *testing.T) {
		token := signToken(t, config.JwtKey, jwt.MapClaims{"operator": "김반장"})
		got := runWithOperator(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("X-Operator", "ignored")
		})
		if got != "김반장" {
			t.Errorf("operator = %q, want 김반장", got)
		}
	})

	t.Run("bad signature falls back to header", func(t *testing.T) {
		token := signToken(t, []byte("wrong-key"), jwt.MapClaims{"operator": "위조"})
		got := runWithOperator(t, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("X-Operator", "이기사")
		})
		if got != "이기사" {
			t.Errorf("operator = %q, want header fallback 이기사", got)
		}
	})

	t.Run("header only", func(t *testing.T) {
		got := runWithOperator(t, func(req *http.Request) {
			req.Header.Set("X-Operator", "박주임")
		})
		if got != "박주임" {
			t.Errorf("operator = %q, want 박주임", got)
		}
	})

	t.Run("nothing at all still proceeds", func(t *testing.T) {
		got := runWithOperator(t, func(req *http.Request) {})
		if got != "unknown" {
			t.Errorf("operator = %q, want unknown", got)
		}
	})
}
