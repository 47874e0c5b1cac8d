package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// TokenCookie is the name of the http-only auth cookie set on login.
const TokenCookie = "token"

// Auth validates the JWT from the Authorization header or the token cookie,
// rejects revoked tokens, and loads the account into context under "user"
// (with "role" and the raw "token" alongside).
func Auth(jwtSecret string, users ports.UserRepository, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			revoked, err := denylist.IsRevoked(c.Request().Context(), raw)
			if err != nil {
				return err
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			sub, err := claims.GetSubject()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			uid, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			u, err := users.FindByID(c.Request().Context(), uid)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
			}

			c.Set("user", u)
			c.Set("role", u.Role)
			c.Set("token", raw)

			return next(c)
		}
	}
}

// extractToken prefers the Authorization header; the cookie is the fallback
// for browser clients.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(TokenCookie)
	if err != nil || cookie.Value == "none" {
		return ""
	}
	return cookie.Value
}
