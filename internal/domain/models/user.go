// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an active account: admins, trainers, and regular users.
//
// NOTE:
//   - Accounts created through the approval workflow keep the ObjectID of
//     the pending record they were migrated from, so the id is stable
//     across the pendingUsers -> users transition.
//   - created_at on migrated accounts is assigned by the database server,
//     not the client clock.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"` // admin | trainer | user
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	LastLogin *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
}
