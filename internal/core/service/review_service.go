package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

type ReviewService struct {
	repo      ports.ReviewRepository
	bootcamps ports.BootcampRepository
	logger    zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, bootcamps ports.BootcampRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, bootcamps: bootcamps, logger: logger}
}

func (s *ReviewService) List(ctx context.Context, p listing.Params) ([]domain.Review, listing.PageMeta, error) {
	return s.repo.List(ctx, p)
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]domain.Review, error) {
	oid, err := objectID(bootcampID, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBootcamp(ctx, oid)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := objectID(id, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

// Create adds a review under the given bootcamp. The unique (bootcamp, user)
// index caps each user at one review per bootcamp; the parent's average
// rating is recomputed before the create is acknowledged.
func (s *ReviewService) Create(ctx context.Context, principal *domain.User, bootcampID string, in ports.CreateReviewInput) (*domain.Review, error) {
	parentID, err := objectID(bootcampID, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}
	if _, err := s.bootcamps.FindByID(ctx, parentID); err != nil {
		return nil, err
	}

	r := &domain.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		BootcampID: parentID,
		UserID:     principal.ID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.refreshAverageRating(ctx, parentID)
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, principal *domain.User, id string, in ports.UpdateReviewInput) (*domain.Review, error) {
	oid, err := objectID(id, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(existing.UserID) {
		return nil, fmt.Errorf("user %s, review %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	fields := bson.M{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Text != nil {
		fields["text"] = *in.Text
	}
	if in.Rating != nil {
		fields["rating"] = *in.Rating
	}
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}

	if in.Rating != nil {
		s.refreshAverageRating(ctx, existing.BootcampID)
	}
	return updated, nil
}

// Delete removes the review and recomputes the parent's average rating
// before acknowledging.
func (s *ReviewService) Delete(ctx context.Context, principal *domain.User, id string) error {
	oid, err := objectID(id, domain.ErrReviewNotFound)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !principal.CanModify(existing.UserID) {
		return fmt.Errorf("user %s, review %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	s.refreshAverageRating(ctx, existing.BootcampID)
	return nil
}

// refreshAverageRating re-reads all reviews of the bootcamp and overwrites
// the parent's average_rating with the plain scalar mean. Failures never
// propagate to the triggering operation: the previous stored value stays in
// place.
func (s *ReviewService) refreshAverageRating(ctx context.Context, bootcampID primitive.ObjectID) {
	avg, err := s.repo.AverageRating(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAggregate) {
			s.logger.Warn().
				Str("bootcamp_id", bootcampID.Hex()).
				Msg("no reviews left to aggregate, keeping previous average rating")
			return
		}
		s.logger.Error().Err(err).
			Str("bootcamp_id", bootcampID.Hex()).
			Msg("average rating aggregation failed")
		return
	}

	if err := s.bootcamps.SetAverageRating(ctx, bootcampID, avg); err != nil {
		s.logger.Error().Err(err).
			Str("bootcamp_id", bootcampID.Hex()).
			Float64("average_rating", avg).
			Msg("failed to store average rating")
	}
}
