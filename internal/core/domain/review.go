package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a child of exactly one Bootcamp, at most one per (bootcamp, user)
// pair (enforced by a unique compound index). Creating or deleting a review
// triggers recomputation of the parent's average_rating.
type Review struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title  string             `json:"title" bson:"title"`
	Text   string             `json:"text" bson:"text"`
	Rating int                `json:"rating" bson:"rating"`

	BootcampID primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
	UserID     primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`

	// BootcampDetail is populated on reads that request it; never stored.
	BootcampDetail *BootcampRef `json:"bootcamp_detail,omitempty" bson:"bootcamp_detail,omitempty"`
}
