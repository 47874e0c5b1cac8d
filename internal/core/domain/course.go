package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// BootcampRef is the projected parent view attached when a course or review
// list populates its bootcamp reference.
type BootcampRef struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
}

// Course is a child of exactly one Bootcamp. Creating or deleting a course
// triggers recomputation of the parent's average_cost.
type Course struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title                string             `json:"title" bson:"title"`
	Description          string             `json:"description" bson:"description"`
	Weeks                int                `json:"weeks" bson:"weeks"`
	Tuition              float64            `json:"tuition" bson:"tuition"`
	MinimumSkill         string             `json:"minimum_skill" bson:"minimum_skill"`
	ScholarshipAvailable bool               `json:"scholarship_available" bson:"scholarship_available"`

	BootcampID primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
	UserID     primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`

	// BootcampDetail is populated on reads that request it; never stored.
	BootcampDetail *BootcampRef `json:"bootcamp_detail,omitempty" bson:"bootcamp_detail,omitempty"`
}
