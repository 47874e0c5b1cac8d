package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
)

// principal extracts the account loaded by the Auth middleware and performs
// a fast-fail check before any service call: its presence proves the
// middleware ran on this route.
func principal(c echo.Context) (*domain.User, error) {
	u, ok := c.Get("user").(*domain.User)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return u, nil
}

// rawToken returns the bearer token the Auth middleware validated; empty on
// unauthenticated routes.
func rawToken(c echo.Context) string {
	s, _ := c.Get("token").(string)
	return s
}
