// internal/domain/models/enrollment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment links a user to a course and tracks their progress through it.
type Enrollment struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID   `bson:"user_id" json:"user_id"`
	CourseID          primitive.ObjectID   `bson:"course_id" json:"course_id"`
	CompletedSessions []primitive.ObjectID `bson:"completed_sessions,omitempty" json:"completed_sessions,omitempty"`
	Progress          int                  `bson:"progress" json:"progress"` // percent, 0-100
	CertificateIssued bool                 `bson:"certificate_issued" json:"certificate_issued"`

	EnrolledAt   time.Time  `bson:"enrolled_at" json:"enrolled_at"`
	LastAccessed *time.Time `bson:"last_accessed,omitempty" json:"last_accessed,omitempty"`
}
