package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traincamp/bootcamp-directory/internal/core/listing"
)

// findPage executes one paged list query: compiled filter, sort, window,
// optional reference population and optional field projection, in a single
// aggregation pipeline. It is the shared backend of every List method.
//
// The total count is taken over the whole collection, not the filtered
// subset, so pagination metadata reflects collection size. Known
// simplification; callers are documented accordingly.
func findPage[T any](ctx context.Context, col *mongo.Collection, p listing.Params, populate *listing.Populate) ([]T, listing.PageMeta, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, listing.PageMeta{}, err
	}

	w := p.Window()
	pipeline := mongo.Pipeline{}
	if len(p.Filter) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: p.Filter}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: p.Sort}},
		bson.D{{Key: "$skip", Value: w.Skip}},
		bson.D{{Key: "$limit", Value: w.Limit}},
	)
	if populate != nil {
		pipeline = append(pipeline, lookupStages(*populate)...)
	}
	if len(p.Select) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection(p.Select)}})
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, listing.PageMeta{}, err
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, listing.PageMeta{}, err
	}

	return items, listing.Paginate(p.Page, p.Limit, total), nil
}

// lookupStages renders a Populate spec as a $lookup (let/pipeline form, so a
// sub-projection can be applied) plus an $unwind for single-document joins.
func lookupStages(pop listing.Populate) []bson.D {
	sub := []bson.M{{
		"$match": bson.M{
			"$expr": bson.M{"$eq": []string{"$" + pop.ForeignField, "$$local"}},
		},
	}}
	if len(pop.Project) > 0 {
		sub = append(sub, bson.M{"$project": projection(pop.Project)})
	}

	stages := []bson.D{{{Key: "$lookup", Value: bson.M{
		"from":     pop.From,
		"let":      bson.M{"local": "$" + pop.LocalField},
		"pipeline": sub,
		"as":       pop.As,
	}}}}

	if pop.Single {
		stages = append(stages, bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$" + pop.As,
			"preserveNullAndEmptyArrays": true,
		}}})
	}
	return stages
}

func projection(fields []string) bson.M {
	proj := bson.M{}
	for _, f := range fields {
		proj[f] = 1
	}
	return proj
}
