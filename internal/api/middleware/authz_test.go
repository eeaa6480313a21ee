package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

func contextWithIdentity(e *echo.Echo, identity *domain.Identity, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, *identity)
	}
	if paramName != "" {
		c.SetParamNames(paramName)
		c.SetParamValues(paramValue)
	}
	return c, rec
}

func runPolicy(e *echo.Echo, mw echo.MiddlewareFunc, c echo.Context, rec *httptest.ResponseRecorder) (int, bool) {
	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called
}

func TestRequireAuthenticated(t *testing.T) {
	e := echo.New()

	c, rec := contextWithIdentity(e, &domain.Identity{ID: 1, Role: domain.RoleUser}, "", "")
	if code, called := runPolicy(e, RequireAuthenticated(), c, rec); code != http.StatusOK || !called {
		t.Fatalf("expected pass, got code=%d called=%v", code, called)
	}

	c, rec = contextWithIdentity(e, nil, "", "")
	if code, called := runPolicy(e, RequireAuthenticated(), c, rec); code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401, got code=%d called=%v", code, called)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		identity *domain.Identity
		allowed  []string
		wantCode int
		wantPass bool
	}{
		{"admin allowed", &domain.Identity{ID: 1, Role: domain.RoleAdmin}, []string{domain.RoleAdmin}, http.StatusOK, true},
		{"user forbidden", &domain.Identity{ID: 1, Role: domain.RoleUser}, []string{domain.RoleAdmin}, http.StatusForbidden, false},
		{"no identity", nil, []string{domain.RoleAdmin}, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := contextWithIdentity(e, tt.identity, "", "")
			code, called := runPolicy(e, RequireRole(tt.allowed...), c, rec)
			if code != tt.wantCode || called != tt.wantPass {
				t.Fatalf("got code=%d called=%v, want code=%d called=%v", code, called, tt.wantCode, tt.wantPass)
			}
		})
	}
}

func TestRequireSelfOrRole(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		identity *domain.Identity
		resource string
		wantCode int
		wantPass bool
	}{
		{"self without elevated role", &domain.Identity{ID: 5, Role: domain.RoleUser}, "5", http.StatusOK, true},
		{"other user forbidden", &domain.Identity{ID: 5, Role: domain.RoleUser}, "6", http.StatusForbidden, false},
		{"admin on other resource", &domain.Identity{ID: 5, Role: domain.RoleAdmin}, "6", http.StatusOK, true},
		{"unparseable id", &domain.Identity{ID: 5, Role: domain.RoleAdmin}, "abc", http.StatusBadRequest, false},
		{"no identity", nil, "5", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := contextWithIdentity(e, tt.identity, "id", tt.resource)
			code, called := runPolicy(e, RequireSelfOrRole("id", domain.RoleAdmin), c, rec)
			if code != tt.wantCode || called != tt.wantPass {
				t.Fatalf("got code=%d called=%v, want code=%d called=%v", code, called, tt.wantCode, tt.wantPass)
			}
		})
	}
}
