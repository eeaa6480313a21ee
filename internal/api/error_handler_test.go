package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

func TestResolveError_DomainMapping(t *testing.T) {
	e := echo.New()

	tests := []struct {
		err      error
		wantCode int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrNothingToUpdate, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
		{echo.NewHTTPError(http.StatusForbidden, "forbidden"), http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		code, _ := resolveError(tt.err, zerolog.Nop(), c)
		if code != tt.wantCode {
			t.Fatalf("error %v: expected %d, got %d", tt.err, tt.wantCode, code)
		}
	}
}

func TestHTTPErrorHandler_Envelope(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(domain.ErrEmailTaken, c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"error\":\"email already taken\"}\n" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
