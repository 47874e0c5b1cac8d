package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type memBootcamps struct {
	items      map[primitive.ObjectID]*domain.Bootcamp
	avgCost    map[primitive.ObjectID]int
	avgRating  map[primitive.ObjectID]float64
	lastRadius float64
}

func newMemBootcamps() *memBootcamps {
	return &memBootcamps{
		items:     map[primitive.ObjectID]*domain.Bootcamp{},
		avgCost:   map[primitive.ObjectID]int{},
		avgRating: map[primitive.ObjectID]float64{},
	}
}

func (m *memBootcamps) Create(ctx context.Context, b *domain.Bootcamp) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.items[b.ID] = b
	return nil
}

func (m *memBootcamps) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, domain.ErrBootcampNotFound
	}
	return b, nil
}

func (m *memBootcamps) FindByOwner(ctx context.Context, userID primitive.ObjectID) (*domain.Bootcamp, error) {
	for _, b := range m.items {
		if b.UserID == userID {
			return b, nil
		}
	}
	return nil, domain.ErrBootcampNotFound
}

func (m *memBootcamps) List(ctx context.Context, p listing.Params) ([]domain.Bootcamp, listing.PageMeta, error) {
	out := []domain.Bootcamp{}
	for _, b := range m.items {
		out = append(out, *b)
	}
	return out, listing.PageMeta{}, nil
}

func (m *memBootcamps) FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]domain.Bootcamp, error) {
	m.lastRadius = radiusRadians
	out := []domain.Bootcamp{}
	for _, b := range m.items {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBootcamps) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Bootcamp, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, domain.ErrBootcampNotFound
	}
	if v, ok := fields["name"].(string); ok {
		b.Name = v
	}
	if v, ok := fields["slug"].(string); ok {
		b.Slug = v
	}
	if v, ok := fields["description"].(string); ok {
		b.Description = v
	}
	if v, ok := fields["photo"].(string); ok {
		b.Photo = v
	}
	if v, ok := fields["location"].(domain.Location); ok {
		b.Location = v
	}
	return b, nil
}

func (m *memBootcamps) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrBootcampNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memBootcamps) SetAverageCost(ctx context.Context, id primitive.ObjectID, cost int) error {
	m.avgCost[id] = cost
	return nil
}

func (m *memBootcamps) SetAverageRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	m.avgRating[id] = rating
	return nil
}

func (m *memBootcamps) EnsureIndexes(ctx context.Context) error { return nil }

type memCourses struct {
	items map[primitive.ObjectID]*domain.Course
}

func newMemCourses() *memCourses {
	return &memCourses{items: map[primitive.ObjectID]*domain.Course{}}
}

func (m *memCourses) Create(ctx context.Context, c *domain.Course) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.items[c.ID] = c
	return nil
}

func (m *memCourses) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return c, nil
}

func (m *memCourses) List(ctx context.Context, p listing.Params) ([]domain.Course, listing.PageMeta, error) {
	out := []domain.Course{}
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, listing.PageMeta{}, nil
}

func (m *memCourses) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, c := range m.items {
		if c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCourses) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Course, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	if v, ok := fields["title"].(string); ok {
		c.Title = v
	}
	if v, ok := fields["tuition"].(float64); ok {
		c.Tuition = v
	}
	return c, nil
}

func (m *memCourses) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memCourses) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	for id, c := range m.items {
		if c.BootcampID == bootcampID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memCourses) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, error) {
	var sum float64
	var n int
	for _, c := range m.items {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, domain.ErrNoAggregate
	}
	return sum / float64(n), nil
}

type memReviews struct {
	items map[primitive.ObjectID]*domain.Review
}

func newMemReviews() *memReviews {
	return &memReviews{items: map[primitive.ObjectID]*domain.Review{}}
}

func (m *memReviews) Create(ctx context.Context, r *domain.Review) error {
	for _, existing := range m.items {
		if existing.BootcampID == r.BootcampID && existing.UserID == r.UserID {
			return domain.ErrDuplicateReview
		}
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	m.items[r.ID] = r
	return nil
}

func (m *memReviews) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return r, nil
}

func (m *memReviews) List(ctx context.Context, p listing.Params) ([]domain.Review, listing.PageMeta, error) {
	out := []domain.Review{}
	for _, r := range m.items {
		out = append(out, *r)
	}
	return out, listing.PageMeta{}, nil
}

func (m *memReviews) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range m.items {
		if r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memReviews) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Review, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	if v, ok := fields["title"].(string); ok {
		r.Title = v
	}
	if v, ok := fields["text"].(string); ok {
		r.Text = v
	}
	if v, ok := fields["rating"].(int); ok {
		r.Rating = v
	}
	return r, nil
}

func (m *memReviews) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memReviews) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	for id, r := range m.items {
		if r.BootcampID == bootcampID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memReviews) AverageRating(ctx context.Context, bootcampID primitive.ObjectID) (float64, error) {
	var sum float64
	var n int
	for _, r := range m.items {
		if r.BootcampID == bootcampID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, domain.ErrNoAggregate
	}
	return sum / float64(n), nil
}

func (m *memReviews) EnsureIndexes(ctx context.Context) error { return nil }

type memUsers struct {
	items map[primitive.ObjectID]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[primitive.ObjectID]*domain.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range m.items {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	m.items[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByIDWithPassword(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return m.FindByID(ctx, id)
}

func (m *memUsers) List(ctx context.Context, p listing.Params) ([]domain.User, listing.PageMeta, error) {
	out := []domain.User{}
	for _, u := range m.items {
		out = append(out, *u)
	}
	return out, listing.PageMeta{}, nil
}

func (m *memUsers) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.User, error) {
	u, ok := m.items[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["email"].(string); ok {
		u.Email = v
	}
	if v, ok := fields["role"].(string); ok {
		u.Role = v
	}
	return u, nil
}

func (m *memUsers) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memUsers) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	u, ok := m.items[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func (m *memUsers) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	u, ok := m.items[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetPasswordToken = tokenHash
	u.ResetPasswordExpire = expire
	return nil
}

func (m *memUsers) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	u, ok := m.items[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = time.Time{}
	return nil
}

func (m *memUsers) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	for _, u := range m.items {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire.After(now) {
			return u, nil
		}
	}
	return nil, domain.ErrResetTokenInvalid
}

func (m *memUsers) EnsureIndexes(ctx context.Context) error { return nil }

// Collaborator stubs.

type stubGeocoder struct {
	loc *domain.Location
	err error
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.loc != nil {
		loc := *s.loc
		loc.FormattedAddress = address
		return &loc, nil
	}
	return &domain.Location{
		Type:        "Point",
		Coordinates: []float64{-71.0589, 42.3601},
		City:        "Boston",
	}, nil
}

type stubPhotos struct {
	names []string
	err   error
}

func (s *stubPhotos) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	if s.err != nil {
		return s.err
	}
	s.names = append(s.names, objectName)
	return nil
}

type stubQueue struct {
	jobs []ports.MailJob
	err  error
}

func (s *stubQueue) Enqueue(job ports.MailJob) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

type memDenylist struct {
	revoked map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: map[string]time.Duration{}}
}

func (m *memDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	m.revoked[token] = ttl
	return nil
}

func (m *memDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, ok := m.revoked[token]
	return ok, nil
}

var errStubFailure = errors.New("stub failure")
