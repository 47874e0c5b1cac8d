package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// ReviewRepository defines persistence operations for reviews. The unique
// (bootcamp, user) index is the storage-level guard for the one-review-per-
// bootcamp-per-user invariant; Create surfaces it as ErrDuplicateReview.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	List(ctx context.Context, p listing.Params) ([]domain.Review, listing.PageMeta, error)
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]domain.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error

	// AverageRating aggregates the mean rating across all reviews of the
	// bootcamp; ErrNoAggregate when it has none.
	AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (float64, error)

	EnsureIndexes(ctx context.Context) error
}

// CreateReviewInput carries the client-supplied fields for a new review.
type CreateReviewInput struct {
	Title  string
	Text   string
	Rating int
}

// UpdateReviewInput is a partial update; nil pointers leave fields untouched.
type UpdateReviewInput struct {
	Title  *string
	Text   *string
	Rating *int
}

// ReviewService defines the review use cases. Mutations trigger
// average-rating maintenance on the parent bootcamp.
type ReviewService interface {
	List(ctx context.Context, p listing.Params) ([]domain.Review, listing.PageMeta, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, principal *domain.User, bootcampID string, in CreateReviewInput) (*domain.Review, error)
	Update(ctx context.Context, principal *domain.User, id string, in UpdateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, principal *domain.User, id string) error
}
