package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

type CourseService struct {
	repo      ports.CourseRepository
	bootcamps ports.BootcampRepository
	logger    zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, bootcamps ports.BootcampRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, bootcamps: bootcamps, logger: logger}
}

func (s *CourseService) List(ctx context.Context, p listing.Params) ([]domain.Course, listing.PageMeta, error) {
	return s.repo.List(ctx, p)
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]domain.Course, error) {
	oid, err := objectID(bootcampID, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBootcamp(ctx, oid)
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := objectID(id, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

// Create adds a course under the given bootcamp. Only the bootcamp's owner
// (or an admin) may add courses to it. The parent's average cost is
// recomputed before the create is acknowledged.
func (s *CourseService) Create(ctx context.Context, principal *domain.User, bootcampID string, in ports.CreateCourseInput) (*domain.Course, error) {
	parentID, err := objectID(bootcampID, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}

	parent, err := s.bootcamps.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(parent.UserID) {
		return nil, fmt.Errorf("user %s, bootcamp %s: %w", principal.ID.Hex(), bootcampID, domain.ErrNotOwner)
	}

	c := &domain.Course{
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		BootcampID:           parentID,
		UserID:               principal.ID,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.refreshAverageCost(ctx, parentID)
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, principal *domain.User, id string, in ports.UpdateCourseInput) (*domain.Course, error) {
	oid, err := objectID(id, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(existing.UserID) {
		return nil, fmt.Errorf("user %s, course %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	fields := bson.M{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Weeks != nil {
		fields["weeks"] = *in.Weeks
	}
	if in.Tuition != nil {
		fields["tuition"] = *in.Tuition
	}
	if in.MinimumSkill != nil {
		fields["minimum_skill"] = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		fields["scholarship_available"] = *in.ScholarshipAvailable
	}
	if len(fields) == 0 {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, err
	}

	if in.Tuition != nil {
		s.refreshAverageCost(ctx, existing.BootcampID)
	}
	return updated, nil
}

// Delete removes the course and recomputes the parent's average cost before
// acknowledging.
func (s *CourseService) Delete(ctx context.Context, principal *domain.User, id string) error {
	oid, err := objectID(id, domain.ErrCourseNotFound)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !principal.CanModify(existing.UserID) {
		return fmt.Errorf("user %s, course %s: %w", principal.ID.Hex(), id, domain.ErrNotOwner)
	}

	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}

	s.refreshAverageCost(ctx, existing.BootcampID)
	return nil
}

// refreshAverageCost re-reads all courses of the bootcamp and overwrites the
// parent's average_cost, floored to the nearest multiple of 10. Re-reading
// instead of applying a delta keeps the field convergent even if an earlier
// refresh was missed. Failures never propagate to the triggering operation:
// the previous stored value stays in place.
func (s *CourseService) refreshAverageCost(ctx context.Context, bootcampID primitive.ObjectID) {
	avg, err := s.repo.AverageTuition(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAggregate) {
			s.logger.Warn().
				Str("bootcamp_id", bootcampID.Hex()).
				Msg("no courses left to aggregate, keeping previous average cost")
			return
		}
		s.logger.Error().Err(err).
			Str("bootcamp_id", bootcampID.Hex()).
			Msg("average cost aggregation failed")
		return
	}

	cost := int(math.Floor(avg/10) * 10)
	if err := s.bootcamps.SetAverageCost(ctx, bootcampID, cost); err != nil {
		s.logger.Error().Err(err).
			Str("bootcamp_id", bootcampID.Hex()).
			Int("average_cost", cost).
			Msg("failed to store average cost")
	}
}
