// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a training course run by an instructor.
type Course struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title               string             `bson:"title" json:"title"`
	TitleCI             string             `bson:"title_ci" json:"title_ci"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	InstructorID        primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	InstructorName      string             `bson:"instructor_name,omitempty" json:"instructor_name,omitempty"`
	DurationHours       int                `bson:"duration_hours,omitempty" json:"duration_hours,omitempty"`
	Level               string             `bson:"level,omitempty" json:"level,omitempty"` // beginner | intermediate | advanced
	Category            string             `bson:"category,omitempty" json:"category,omitempty"`
	MaxParticipants     int                `bson:"max_participants,omitempty" json:"max_participants,omitempty"`
	CurrentParticipants int                `bson:"current_participants" json:"current_participants"`
	StartDate           time.Time          `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate             time.Time          `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Status              string             `bson:"status" json:"status"` // draft | active | completed | cancelled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
