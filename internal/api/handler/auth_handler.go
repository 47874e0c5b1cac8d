package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/traincamp/bootcamp-directory/internal/api/metrics"
	"github.com/traincamp/bootcamp-directory/internal/api/middleware"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// CookieSettings controls the http-only token cookie issued alongside every
// authenticated response.
type CookieSettings struct {
	TTL    time.Duration
	Secure bool
}

// AuthHandler handles registration, login and the password lifecycle.
type AuthHandler struct {
	service ports.AuthService
	cookie  CookieSettings
}

func NewAuthHandler(service ports.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusCreated, token)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return h.sendToken(c, http.StatusOK, token)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := principal(c)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, u)
}

// Logout handles GET /api/v1/auth/logout: the live token goes on the
// denylist and the cookie is overwritten.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), rawToken(c)); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
	})
	return respondData(c, http.StatusOK, map[string]any{})
}

// ForgotPassword handles POST /api/v1/auth/forgotpassword.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.PasswordResetsIssuedTotal.Inc()
	return respondData(c, http.StatusOK, "email sent")
}

// ResetPassword handles PUT /api/v1/auth/resetpassword/:resettoken.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, _, err := h.service.ResetPassword(c.Request().Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// UpdatePassword handles PUT /api/v1/auth/updatepassword.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := principal(c)
	if err != nil {
		return err
	}

	token, err := h.service.UpdatePassword(c.Request().Context(), u, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return h.sendToken(c, http.StatusOK, token)
}

// UpdateDetails handles PUT /api/v1/auth/updatedetails.
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	var req updateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := principal(c)
	if err != nil {
		return err
	}

	updated, err := h.service.UpdateDetails(c.Request().Context(), u, req.Name, req.Email)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, updated)
}

// sendToken writes the token cookie and the token envelope.
func (h *AuthHandler) sendToken(c echo.Context, code int, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
	})
	return c.JSON(code, tokenResponse{Success: true, Token: token})
}
