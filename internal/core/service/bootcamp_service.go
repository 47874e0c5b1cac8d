package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// earthRadiusMiles converts a search distance in miles into radians for the
// $centerSphere geo query.
const earthRadiusMiles = 3963.2

type BootcampService struct {
	repo     ports.BootcampRepository
	courses  ports.CourseRepository
	reviews  ports.ReviewRepository
	geocoder ports.Geocoder
	photos   ports.PhotoStore
	maxPhoto int64
	logger   zerolog.Logger
}

func NewBootcampService(
	repo ports.BootcampRepository,
	courses ports.CourseRepository,
	reviews ports.ReviewRepository,
	geocoder ports.Geocoder,
	photos ports.PhotoStore,
	maxPhotoBytes int64,
	logger zerolog.Logger,
) *BootcampService {
	return &BootcampService{
		repo:     repo,
		courses:  courses,
		reviews:  reviews,
		geocoder: geocoder,
		photos:   photos,
		maxPhoto: maxPhotoBytes,
		logger:   logger,
	}
}

func (s *BootcampService) List(ctx context.Context, p listing.Params) ([]domain.Bootcamp, listing.PageMeta, error) {
	return s.repo.List(ctx, p)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

// Create persists a new bootcamp owned by the principal. Non-admins may own
// at most one bootcamp; the check-then-insert is not transactional, so two
// concurrent creates from the same user can race (accepted gap).
func (s *BootcampService) Create(ctx context.Context, principal *domain.User, in ports.CreateBootcampInput) (*domain.Bootcamp, error) {
	if principal.Role != domain.RoleAdmin {
		if _, err := s.repo.FindByOwner(ctx, principal.ID); err == nil {
			return nil, fmt.Errorf("user %s: %w", principal.ID.Hex(), domain.ErrBootcampLimit)
		}
	}

	for _, c := range in.Careers {
		if !domain.ValidCareer(c) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCareer, c)
		}
	}

	loc, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", in.Address, err)
	}

	b := &domain.Bootcamp{
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Location:      *loc,
		Careers:       in.Careers,
		Photo:         domain.DefaultPhoto,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGI:      in.AcceptGI,
		UserID:        principal.ID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("bootcamp_id", b.ID.Hex()).
		Str("user_id", principal.ID.Hex()).
		Msg("bootcamp created")

	return b, nil
}

func (s *BootcampService) Update(ctx context.Context, principal *domain.User, id string, in ports.UpdateBootcampInput) (*domain.Bootcamp, error) {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(existing.UserID) {
		return nil, fmt.Errorf("user %s, bootcamp %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	fields := bson.M{}
	if in.Name != nil {
		fields["name"] = *in.Name
		fields["slug"] = slug.Make(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Website != nil {
		fields["website"] = *in.Website
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Careers != nil {
		for _, c := range in.Careers {
			if !domain.ValidCareer(c) {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCareer, c)
			}
		}
		fields["careers"] = in.Careers
	}
	if in.Housing != nil {
		fields["housing"] = *in.Housing
	}
	if in.JobAssistance != nil {
		fields["job_assistance"] = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		fields["job_guarantee"] = *in.JobGuarantee
	}
	if in.AcceptGI != nil {
		fields["accept_gi"] = *in.AcceptGI
	}
	if in.Address != nil {
		loc, err := s.geocoder.Geocode(ctx, *in.Address)
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", *in.Address, err)
		}
		fields["location"] = *loc
	}
	if len(fields) == 0 {
		return existing, nil
	}

	return s.repo.Update(ctx, oid, fields)
}

// Delete removes the bootcamp and cascades to its courses and reviews.
// The parent's aggregates need no recomputation afterwards since the parent
// itself is gone.
func (s *BootcampService) Delete(ctx context.Context, principal *domain.User, id string) error {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !principal.CanModify(existing.UserID) {
		return fmt.Errorf("user %s, bootcamp %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	if err := s.courses.DeleteByBootcamp(ctx, oid); err != nil {
		return fmt.Errorf("cascade courses: %w", err)
	}
	if err := s.reviews.DeleteByBootcamp(ctx, oid); err != nil {
		return fmt.Errorf("cascade reviews: %w", err)
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info().
		Str("bootcamp_id", id).
		Str("user_id", principal.ID.Hex()).
		Msg("bootcamp deleted")

	return nil
}

// WithinRadius geocodes the zipcode and returns every bootcamp inside the
// given distance in miles.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]domain.Bootcamp, error) {
	loc, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", zipcode, err)
	}
	if len(loc.Coordinates) < 2 {
		return nil, fmt.Errorf("geocode %q: %w", zipcode, domain.ErrDependency)
	}

	radius := distanceMiles / earthRadiusMiles
	return s.repo.FindWithinRadius(ctx, loc.Coordinates[0], loc.Coordinates[1], radius)
}

// UploadPhoto validates the upload, stores it under a generated object name
// and records that name on the bootcamp.
func (s *BootcampService) UploadPhoto(ctx context.Context, principal *domain.User, id string, upload ports.PhotoUpload) (string, error) {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return "", err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return "", err
	}
	if !principal.CanModify(existing.UserID) {
		return "", fmt.Errorf("user %s, bootcamp %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", fmt.Errorf("%w: content type %s", domain.ErrInvalidPhoto, upload.ContentType)
	}
	if upload.Size > s.maxPhoto {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", domain.ErrInvalidPhoto, upload.Size, s.maxPhoto)
	}

	name := fmt.Sprintf("photo_%s_%s%s", oid.Hex(), uuid.NewString(), filepath.Ext(upload.Filename))
	if err := s.photos.Put(ctx, name, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	if _, err := s.repo.Update(ctx, oid, bson.M{"photo": name}); err != nil {
		return "", err
	}

	return name, nil
}
