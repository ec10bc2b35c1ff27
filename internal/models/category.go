package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category types
const (
	CategoryTypeCourse  = "course"
	CategoryTypeCountry = "country"
)

// Category is a named tag of type course or country, used as a controlled
// vocabulary for student leads. Courses and countries share one collection,
// discriminated by Type.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidCategoryType reports whether t is one of the known category types
func ValidCategoryType(t string) bool {
	return t == CategoryTypeCourse || t == CategoryTypeCountry
}
