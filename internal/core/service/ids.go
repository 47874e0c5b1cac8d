package service

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectID parses a hex id from the URL path. Malformed ids behave like
// unknown ones: the caller's not-found sentinel is returned so the API
// answers 404 rather than leaking parser details.
func objectID(hex string, missing error) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: id %s", missing, hex)
	}
	return id, nil
}
