// internal/domain/models/rejecteduser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RejectedUser is the terminal record for a declined signup. It keeps the
// ObjectID of the pending record it was migrated from. rejected_at is
// assigned by the database server at migration time.
type RejectedUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"full_name" json:"full_name"`
	Email         string             `bson:"email" json:"email"`
	RequestedRole string             `bson:"requested_role,omitempty" json:"requested_role,omitempty"`
	Reason        string             `bson:"reason,omitempty" json:"reason,omitempty"` // admin's free-text feedback

	SubmittedAt time.Time `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	RejectedAt  time.Time `bson:"rejected_at" json:"rejected_at"`
}
