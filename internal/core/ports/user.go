package ports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// UserRepository defines persistence operations for user accounts. Reads
// exclude the password hash unless the method says otherwise.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// FindByEmail includes the password hash; it exists for credential checks.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDWithPassword includes the hash for password-change flows.
	FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context, p listing.Params) ([]domain.User, listing.PageMeta, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	// FindByResetToken matches the stored token hash with an unexpired
	// deadline; ErrResetTokenInvalid otherwise.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)

	EnsureIndexes(ctx context.Context) error
}

// CreateUserInput carries the admin-supplied fields for a new account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a partial update; nil pointers leave fields untouched.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// UserService defines the admin-only account management use cases.
type UserService interface {
	List(ctx context.Context, p listing.Params) ([]domain.User, listing.PageMeta, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
