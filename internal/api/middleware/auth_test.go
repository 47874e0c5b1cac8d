package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

type stubUsers struct {
	user *domain.User
}

func (s *stubUsers) Create(ctx context.Context, u *domain.User) error { return nil }

func (s *stubUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.FindByID(ctx, id)
}

func (s *stubUsers) List(ctx context.Context, p listing.Params) ([]domain.User, listing.PageMeta, error) {
	return nil, listing.PageMeta{}, nil
}

func (s *stubUsers) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubUsers) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return nil
}

func (s *stubUsers) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	return nil
}

func (s *stubUsers) ClearResetToken(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubUsers) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	return nil, domain.ErrResetTokenInvalid
}

func (s *stubUsers) EnsureIndexes(ctx context.Context) error { return nil }

type stubDenylist struct {
	revoked map[string]bool
}

func (s *stubDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[token] = true
	return nil
}

func (s *stubDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

func signToken(t *testing.T, secret string, uid primitive.ObjectID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uid.Hex(),
		"role": "publisher",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	e := echo.New()
	uid := primitive.NewObjectID()
	users := &stubUsers{user: &domain.User{ID: uid, Name: "alice", Role: "publisher"}}
	signed := signToken(t, "secret", uid)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", users, &stubDenylist{})
	handler := mw(func(c echo.Context) error {
		called = true
		u, ok := c.Get("user").(*domain.User)
		if !ok || u.ID != uid {
			t.Fatalf("user not loaded into context")
		}
		if c.Get("role") != "publisher" {
			t.Fatalf("role not set")
		}
		if c.Get("token") != signed {
			t.Fatalf("raw token not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	e := echo.New()
	uid := primitive.NewObjectID()
	users := &stubUsers{user: &domain.User{ID: uid, Role: "user"}}
	signed := signToken(t, "secret", uid)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", users, &stubDenylist{})
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubUsers{}, &stubDenylist{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	e := echo.New()
	uid := primitive.NewObjectID()
	users := &stubUsers{user: &domain.User{ID: uid, Role: "user"}}
	signed := signToken(t, "secret", uid)

	denylist := &stubDenylist{}
	if err := denylist.Revoke(context.Background(), signed, time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", users, denylist)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", &stubUsers{}, &stubDenylist{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
