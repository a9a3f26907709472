package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/pkg/token"
)

func signedToken(t *testing.T, codec *token.Codec, claims map[string]any) string {
	t.Helper()
	signed, err := codec.Issue(claims)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	e := echo.New()
	codec := token.NewCodec("secret", time.Hour)
	signed := signedToken(t, codec, map[string]any{"sub": "user_1", "email": "a@x.com"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(codec)(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != "user_1" {
			t.Fatalf("user_id not set: %v", c.Get("user_id"))
		}
		if c.Get("email") != "a@x.com" {
			t.Fatalf("email not set: %v", c.Get("email"))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func rejectionCode(t *testing.T, req *http.Request) int {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(token.NewCodec("secret", time.Hour))(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if code := rejectionCode(t, req); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "not-a-token"})
	if code := rejectionCode(t, req); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_WrongKey(t *testing.T) {
	other := token.NewCodec("other-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: signedToken(t, other, map[string]any{"sub": "u"})})
	if code := rejectionCode(t, req); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stale := token.NewCodec("secret", time.Hour).WithClock(func() time.Time { return issued })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: signedToken(t, stale, map[string]any{"sub": "u"})})
	if code := rejectionCode(t, req); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
