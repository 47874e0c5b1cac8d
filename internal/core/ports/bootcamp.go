package ports

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// BootcampRepository defines persistence operations for bootcamps.
type BootcampRepository interface {
	Create(ctx context.Context, b *domain.Bootcamp) error
	// FindByID resolves the bootcamp and populates its courses.
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error)
	// FindByOwner returns the bootcamp owned by userID, or ErrBootcampNotFound.
	FindByOwner(ctx context.Context, userID primitive.ObjectID) (*domain.Bootcamp, error)
	// List returns one page plus pagination metadata derived from the total
	// collection count.
	List(ctx context.Context, p listing.Params) ([]domain.Bootcamp, listing.PageMeta, error)
	// FindWithinRadius returns all bootcamps whose location lies inside the
	// sphere cap of radiusRadians centred on (lng, lat).
	FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]domain.Bootcamp, error)
	// Update applies the given partial field set and returns the new document.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Bootcamp, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	SetAverageCost(ctx context.Context, id primitive.ObjectID, cost int) error
	SetAverageRating(ctx context.Context, id primitive.ObjectID, rating float64) error

	EnsureIndexes(ctx context.Context) error
}

// CreateBootcampInput carries the client-supplied fields for a new bootcamp.
type CreateBootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGI      bool
}

// UpdateBootcampInput is a partial update; nil pointers leave the stored
// field untouched. A non-nil Address re-runs geocoding.
type UpdateBootcampInput struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGI      *bool
}

// PhotoUpload carries an uploaded photo stream and its metadata.
type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// BootcampService defines the bootcamp use cases.
type BootcampService interface {
	List(ctx context.Context, p listing.Params) ([]domain.Bootcamp, listing.PageMeta, error)
	Get(ctx context.Context, id string) (*domain.Bootcamp, error)
	Create(ctx context.Context, principal *domain.User, in CreateBootcampInput) (*domain.Bootcamp, error)
	Update(ctx context.Context, principal *domain.User, id string, in UpdateBootcampInput) (*domain.Bootcamp, error)
	// Delete cascades to the bootcamp's courses and reviews.
	Delete(ctx context.Context, principal *domain.User, id string) error
	WithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]domain.Bootcamp, error)
	// UploadPhoto stores the image and returns the generated object name.
	UploadPhoto(ctx context.Context, principal *domain.User, id string, upload PhotoUpload) (string, error)
}
