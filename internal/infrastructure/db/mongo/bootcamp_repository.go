package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

const (
	collectionBootcamps = "bootcamps"
	collectionCourses   = "courses"
	collectionReviews   = "reviews"
)

// coursesPopulate resolves the virtual courses relation on bootcamp reads.
var coursesPopulate = listing.Populate{
	From:         collectionCourses,
	LocalField:   "_id",
	ForeignField: "bootcamp",
	As:           "courses",
}

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(collectionBootcamps)}
}

func (r *BootcampRepository) Create(ctx context.Context, b *domain.Bootcamp) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, b.Name)
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

// FindByID resolves the bootcamp with its courses populated (title,
// description, tuition).
func (r *BootcampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pop := coursesPopulate
	pop.Project = []string{"title", "description", "tuition"}

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, lookupStages(pop)...)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Bootcamp
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: id %s", domain.ErrBootcampNotFound, id.Hex())
	}
	return &out[0], nil
}

func (r *BootcampRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bootcamp
	err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BootcampRepository) List(ctx context.Context, p listing.Params) ([]domain.Bootcamp, listing.PageMeta, error) {
	pop := coursesPopulate
	return findPage[domain.Bootcamp](ctx, r.col, p, &pop)
}

func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"location": bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": []interface{}{[]float64{lng, lat}, radiusRadians},
		},
	}}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Bootcamp{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BootcampRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b domain.Bootcamp
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: id %s", domain.ErrBootcampNotFound, id.Hex())
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}
	return &b, nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: id %s", domain.ErrBootcampNotFound, id.Hex())
	}
	return nil
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id primitive.ObjectID, cost int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"average_cost": cost}})
	return err
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"average_rating": rating}})
	return err
}

// EnsureIndexes creates the bootcamp indexes: unique name, geo index on
// location, and an owner index backing the one-bootcamp-per-user check.
func (r *BootcampRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
