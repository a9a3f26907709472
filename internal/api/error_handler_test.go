package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/pkg/token"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidBlog, http.StatusBadRequest},
		{fmt.Errorf("%w: title and content are required", domain.ErrInvalidBlog), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrBlogNotFound, http.StatusNotFound},
		{fmt.Errorf("find blog: %w", domain.ErrBlogNotFound), http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{fmt.Errorf("list blogs: %w", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{token.ErrNoSecret, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, _ := renderError(t, tc.err)
		if code != tc.code {
			t.Fatalf("error %v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid blog id format"))
	if code != http.StatusBadRequest || msg != "invalid blog id format" {
		t.Fatalf("unexpected render: %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	code, msg := renderError(t, errors.New("pq: secret connection string"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked to the client: %q", msg)
	}
}
