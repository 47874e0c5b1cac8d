package domain

import "errors"

// Sentinel errors returned by services and repositories. The API layer maps
// these onto HTTP status codes in one place (internal/api/error_handler.go).
var (
	ErrBootcampNotFound = errors.New("bootcamp not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrNotOwner is returned when a principal who is neither the resource
	// owner nor an admin attempts a mutation.
	ErrNotOwner = errors.New("not authorized to modify this resource")

	// ErrBootcampLimit is returned when a non-admin publisher attempts to
	// create a second bootcamp.
	ErrBootcampLimit = errors.New("user has already published a bootcamp")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")

	ErrEmailTaken      = errors.New("email already registered")
	ErrDuplicateName   = errors.New("bootcamp name already taken")
	ErrDuplicateReview = errors.New("user has already reviewed this bootcamp")

	ErrInvalidCareer = errors.New("career not in the allowed set")
	ErrInvalidRole   = errors.New("role not allowed")
	ErrInvalidPhoto  = errors.New("photo upload rejected")

	// ErrNoAggregate is returned by average queries when the parent has no
	// children left to aggregate over.
	ErrNoAggregate = errors.New("no documents to aggregate")

	// ErrDependency wraps failures of outbound collaborators (geocoder,
	// mailer, object storage).
	ErrDependency = errors.New("upstream dependency failed")
)
