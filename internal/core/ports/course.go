package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) error
	// FindByID resolves the course and populates its bootcamp reference
	// (name, description).
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	List(ctx context.Context, p listing.Params) ([]domain.Course, listing.PageMeta, error)
	// ListByBootcamp returns all courses of one bootcamp, unpaginated.
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]domain.Course, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByBootcamp removes every course of a bootcamp (cascade delete).
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error

	// AverageTuition aggregates the mean tuition across all courses of the
	// bootcamp; ErrNoAggregate when it has none.
	AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, error)
}

// CreateCourseInput carries the client-supplied fields for a new course.
type CreateCourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
}

// UpdateCourseInput is a partial update; nil pointers leave fields untouched.
type UpdateCourseInput struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

// CourseService defines the course use cases. Create is scoped to a parent
// bootcamp; mutations trigger average-cost maintenance on the parent.
type CourseService interface {
	List(ctx context.Context, p listing.Params) ([]domain.Course, listing.PageMeta, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, principal *domain.User, bootcampID string, in CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, principal *domain.User, id string, in UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, principal *domain.User, id string) error
}
