package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acquisitions/accounts-api/internal/api/metrics"
	"github.com/acquisitions/accounts-api/internal/api/middleware"
	"github.com/acquisitions/accounts-api/internal/core/domain"
	"github.com/acquisitions/accounts-api/internal/core/ports"
)

// AuthHandler serves sign-up, sign-in and sign-out. It owns the auth
// cookie lifecycle: issued on sign-up/sign-in, cleared on sign-out.
type AuthHandler struct {
	authService   ports.AuthService
	codec         ports.TokenCodec
	audit         ports.AuditTrail
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, codec ports.TokenCodec, audit ports.AuditTrail, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		codec:         codec,
		audit:         audit,
		secureCookies: secureCookies,
	}
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
}

// SignUp registers a new account and signs the caller in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	if err := h.issueCookie(c, user); err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:  domain.AuditSignup,
		ActorID: user.ID,
		Subject: user.Email,
		IP:      c.RealIP(),
	})

	return c.JSON(http.StatusCreated, authResponse{Message: "User registered.", User: user})
}

// SignIn authenticates by email and password and sets the auth cookie.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SigninsTotal.WithLabelValues("rejected").Inc()
			h.audit.Enqueue(domain.AuditEvent{
				Action:  domain.AuditSigninFailed,
				Subject: req.Email,
				IP:      c.RealIP(),
			})
		}
		return err
	}

	if err := h.issueCookie(c, user); err != nil {
		return err
	}

	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	h.audit.Enqueue(domain.AuditEvent{
		Action:  domain.AuditSignin,
		ActorID: user.ID,
		Subject: user.Email,
		IP:      c.RealIP(),
	})

	return c.JSON(http.StatusOK, authResponse{Message: "Signed in.", User: user})
}

// SignOut clears the auth cookie. The token itself stays valid until it
// expires; there is no server-side revocation list.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	// The route is unauthenticated, but a still-valid cookie lets the
	// audit trail name the actor. Invalid cookies are cleared silently.
	if cookie, err := c.Cookie(middleware.TokenCookie); err == nil && cookie.Value != "" {
		if identity, err := h.codec.Verify(cookie.Value); err == nil {
			h.audit.Enqueue(domain.AuditEvent{
				Action:  domain.AuditSignout,
				ActorID: identity.ID,
				Subject: identity.Email,
				IP:      c.RealIP(),
			})
		}
	}

	c.SetCookie(h.cookie("", -1))

	return c.JSON(http.StatusOK, authResponse{Message: "Signed out."})
}

func (h *AuthHandler) issueCookie(c echo.Context, user *domain.User) error {
	signed, err := h.codec.Sign(user.Identity())
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	c.SetCookie(h.cookie(signed, int(h.codec.TTL().Seconds())))
	return nil
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
