package ports

import (
	"context"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
)

// RegisterInput carries the self-service registration fields. Role is
// restricted to user/publisher; admins are created through UserService.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration, login and the password lifecycle.
// Every method that authenticates or re-authenticates returns a signed JWT.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the raw token until its natural expiry.
	Logout(ctx context.Context, rawToken string) error
	// ForgotPassword issues a single-use reset token and mails it; it
	// reports ErrUserNotFound for unknown addresses.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a raw reset token exactly once.
	ResetPassword(ctx context.Context, rawToken, newPassword string) (string, *domain.User, error)
	UpdatePassword(ctx context.Context, principal *domain.User, current, next string) (string, error)
	UpdateDetails(ctx context.Context, principal *domain.User, name, email string) (*domain.User, error)
}
