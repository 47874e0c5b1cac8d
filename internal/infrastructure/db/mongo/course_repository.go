package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// bootcampPopulate resolves the parent bootcamp reference on course and
// review reads, projected down to name and description.
var bootcampPopulate = listing.Populate{
	From:         collectionBootcamps,
	LocalField:   "bootcamp",
	ForeignField: "_id",
	As:           "bootcamp_detail",
	Project:      []string{"name", "description"},
	Single:       true,
}

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// FindByID resolves the course with its bootcamp reference populated.
func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, lookupStages(bootcampPopulate)...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Course
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: id %s", domain.ErrCourseNotFound, id.Hex())
	}
	return &out[0], nil
}

func (r *CourseRepository) List(ctx context.Context, p listing.Params) ([]domain.Course, listing.PageMeta, error) {
	pop := bootcampPopulate
	return findPage[domain.Course](ctx, r.col, p, &pop)
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Course{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CourseRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c domain.Course
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: id %s", domain.ErrCourseNotFound, id.Hex())
		}
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: id %s", domain.ErrCourseNotFound, id.Hex())
	}
	return nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	return err
}

// AverageTuition computes the mean tuition across all courses of the
// bootcamp via a $match/$group pipeline. ErrNoAggregate when the bootcamp
// has no courses.
func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID primitive.ObjectID) (float64, error) {
	return averageField(ctx, r.col, bootcampID, "tuition")
}

// averageField runs the shared aggregate-maintenance pipeline: match all
// children of the bootcamp, group, average the named field.
func averageField(ctx context.Context, col *mongo.Collection, bootcampID primitive.ObjectID, field string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"bootcamp": bootcampID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$bootcamp",
			"average": bson.M{"$avg": "$" + field},
		}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Average float64 `bson:"average"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("bootcamp %s, field %s: %w", bootcampID.Hex(), field, domain.ErrNoAggregate)
	}
	return out[0].Average, nil
}
