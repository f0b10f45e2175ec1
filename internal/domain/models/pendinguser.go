// internal/domain/models/pendinguser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingUser is a signup awaiting an administrator decision. It lives in
// the pendingUsers collection until the approval workflow migrates it to
// users (approve) or rejectedUsers (reject) and deletes it here.
type PendingUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"full_name" json:"full_name"`
	FullNameCI    string             `bson:"full_name_ci" json:"full_name_ci"`
	Email         string             `bson:"email" json:"email"`
	RequestedRole string             `bson:"requested_role" json:"requested_role"` // trainee | trainer
	PasswordHash  string             `bson:"password_hash,omitempty" json:"-"`
	SignupToken   string             `bson:"signup_token,omitempty" json:"-"` // opaque UUID issued at intake, used for status lookups

	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
}
