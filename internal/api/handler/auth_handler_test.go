package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/pkg/token"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, email, password, name string) (*domain.User, string, error)
	loginFn  func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	return s.signupFn(ctx, email, password, name)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func identityCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == token.CookieName {
			return ck
		}
	}
	t.Fatal("identity cookie not set")
	return nil
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(_ context.Context, email, password, name string) (*domain.User, string, error) {
			return &domain.User{ID: "user_1", Email: email, Name: name}, "signed-token", nil
		},
	}
	h := NewAuthHandler(svc, false)

	c, rec := newAuthContext(t, `{"email":"a@x.com","password":"pw123","name":"Ann"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != "user_1" || resp.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	ck := identityCookie(t, rec)
	if ck.Value != "signed-token" {
		t.Fatalf("unexpected cookie value: %s", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatal("expected http-only cookie")
	}
	if ck.Path != "/" {
		t.Fatalf("expected path /, got %s", ck.Path)
	}
	if ck.MaxAge != int(signupCookieTTL.Seconds()) {
		t.Fatalf("expected 24h max-age, got %d", ck.MaxAge)
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	for _, body := range []string{
		`{"password":"pw","name":"Ann"}`,
		`{"email":"a@x.com","name":"Ann"}`,
		`{"email":"a@x.com","password":"pw"}`,
		`not-json`,
	} {
		c, _ := newAuthContext(t, body)
		err := h.Signup(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	h := NewAuthHandler(svc, false)

	c, _ := newAuthContext(t, `{"email":"a@x.com","password":"pw","name":"Ann"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user_1", Email: email, Name: "Ann"}, "signed-token", nil
		},
	}
	h := NewAuthHandler(svc, false)

	c, rec := newAuthContext(t, `{"email":"a@x.com","password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := identityCookie(t, rec)
	if ck.MaxAge != int(loginCookieTTL.Seconds()) {
		t.Fatalf("expected 7d max-age, got %d", ck.MaxAge)
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected lax same-site, got %v", ck.SameSite)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc, false)

	c, _ := newAuthContext(t, `{"email":"a@x.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newAuthContext(t, "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ck := identityCookie(t, rec)
	if ck.Value != "" {
		t.Fatalf("expected empty cookie value, got %q", ck.Value)
	}
	if ck.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got max-age %d", ck.MaxAge)
	}
}
