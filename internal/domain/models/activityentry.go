// internal/domain/models/activityentry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEntry is one append-only record in the activity_log collection.
// Approval decisions and auth events are recorded here in addition to the
// structured log stream.
type ActivityEntry struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventID   string              `bson:"event_id" json:"event_id"` // UUID, stable across db + log output
	Category  string              `bson:"category" json:"category"` // "auth" | "admin"
	EventType string              `bson:"event_type" json:"event_type"`
	ActorID   *primitive.ObjectID `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	ActorName string              `bson:"actor_name,omitempty" json:"actor_name,omitempty"`
	SubjectID *primitive.ObjectID `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	Success   bool                `bson:"success" json:"success"`
	IP        string              `bson:"ip,omitempty" json:"ip,omitempty"`
	Details   map[string]string   `bson:"details,omitempty" json:"details,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
