package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "unit-test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/points", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tok := signedToken(t, testSecret, jwt.MapClaims{"sub": float64(42), "role": "USER"})
	rec, c := runJWT(t, "Bearer "+tok)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got, ok := c.Get("account_id").(float64); !ok || got != 42 {
		t.Errorf("account_id = %v, want float64 42", c.Get("account_id"))
	}
	if got, _ := c.Get("role").(string); got != "USER" {
		t.Errorf("role = %v, want USER", c.Get("role"))
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		rec, _ := runJWT(t, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("no bearer prefix", func(t *testing.T) {
		tok := signedToken(t, testSecret, jwt.MapClaims{"sub": "1"})
		rec, _ := runJWT(t, tok)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signedToken(t, "other-secret", jwt.MapClaims{"sub": "1"})
		rec, _ := runJWT(t, "Bearer "+tok)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := runJWT(t, "Bearer not.a.token")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	run := func(role interface{}, allowed ...string) int {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			c.Error(err)
		}
		return rec.Code
	}

	if code := run("VENDOR", "VENDOR"); code != http.StatusOK {
		t.Errorf("matching role: status = %d, want 200", code)
	}
	if code := run("USER", "USER", "VENDOR"); code != http.StatusOK {
		t.Errorf("role in allowed set: status = %d, want 200", code)
	}
	if code := run("USER", "ADMIN"); code != http.StatusForbidden {
		t.Errorf("disallowed role: status = %d, want 403", code)
	}
	if code := run(nil, "USER"); code != http.StatusForbidden {
		t.Errorf("missing role: status = %d, want 403", code)
	}
}
