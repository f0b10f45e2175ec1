// internal/domain/models/trainingsession.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingSession is a single scheduled meeting of a course. Attendance is
// recorded directly on the session as the set of user ids present.
type TrainingSession struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CourseID      primitive.ObjectID   `bson:"course_id" json:"course_id"`
	Title         string               `bson:"title" json:"title"`
	Date          time.Time            `bson:"date" json:"date"`
	DurationHours int                  `bson:"duration_hours,omitempty" json:"duration_hours,omitempty"`
	Location      string               `bson:"location,omitempty" json:"location,omitempty"`
	Attendees     []primitive.ObjectID `bson:"attendees,omitempty" json:"attendees,omitempty"`
	Notes         string               `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
