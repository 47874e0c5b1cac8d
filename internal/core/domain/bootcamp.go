package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Careers a bootcamp may teach. Create/update requests are validated against
// this set before persistence.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"Business",
	"UI/UX",
	"Data Science",
	"Other",
}

// ValidCareer reports whether s is a member of the careers enumeration.
func ValidCareer(s string) bool {
	for _, c := range Careers {
		if c == s {
			return true
		}
	}
	return false
}

// DefaultPhoto is the sentinel filename stored before any photo is uploaded.
const DefaultPhoto = "no-photo.jpg"

// Location is a GeoJSON point plus the locality fields resolved by the
// geocoder from the submitted address.
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"` // [lng, lat]
	FormattedAddress string    `json:"formatted_address,omitempty" bson:"formatted_address,omitempty"`
	Street           string    `json:"street,omitempty" bson:"street,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	State            string    `json:"state,omitempty" bson:"state,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

// Bootcamp is the parent aggregate of the directory. AverageCost and
// AverageRating are derived fields maintained from child courses and reviews;
// they are never written directly by clients.
type Bootcamp struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`

	// Address is consumed by the geocoder on create/update and not stored;
	// Location carries the resolved result.
	Address  string   `json:"address,omitempty" bson:"-"`
	Location Location `json:"location" bson:"location"`

	Careers       []string `json:"careers" bson:"careers"`
	AverageRating float64  `json:"average_rating,omitempty" bson:"average_rating,omitempty"`
	AverageCost   int      `json:"average_cost,omitempty" bson:"average_cost,omitempty"`
	Photo         string   `json:"photo" bson:"photo"`

	Housing       bool `json:"housing" bson:"housing"`
	JobAssistance bool `json:"job_assistance" bson:"job_assistance"`
	JobGuarantee  bool `json:"job_guarantee" bson:"job_guarantee"`
	AcceptGI      bool `json:"accept_gi" bson:"accept_gi"`

	UserID    primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`

	// Courses is populated on reads that request it ($lookup); it is never
	// stored on the bootcamp document.
	Courses []Course `json:"courses,omitempty" bson:"courses,omitempty"`
}
