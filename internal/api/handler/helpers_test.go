package handler

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/api/middleware"
	"github.com/renovatepro/renovate-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, id, role string) *domain.Session {
	s := &domain.Session{ID: id, Email: id + "@example.com", Role: role}
	c.Set(middleware.ContextKeySession, s)
	c.Set(middleware.ContextKeyUserID, id)
	c.Set(middleware.ContextKeyRole, role)
	return s
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}

func expectValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range ve.Fields {
		if f == field {
			return
		}
	}
	t.Fatalf("expected field %q in %v", field, ve.Fields)
}
