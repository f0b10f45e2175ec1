// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess             = "login_success"
	EventLoginFailedUserNotFound  = "login_failed_user_not_found"
	EventLoginFailedWrongPassword = "login_failed_wrong_password"
	EventLoginFailedUserDisabled  = "login_failed_user_disabled"
	EventLogout                   = "logout"
	EventSignupSubmitted          = "signup_submitted"
)

// Admin event types
const (
	EventUserApproved = "user_approved"
	EventUserRejected = "user_rejected"
)

// Store manages the append-only activity_log collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_log")}
}

// Record appends one entry. The event id and created_at are assigned here
// so callers only describe the event.
func (s *Store) Record(ctx context.Context, e models.ActivityEntry) (models.ActivityEntry, error) {
	e.EventID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.ActivityEntry{}, err
	}
	return e, nil
}

// ListRecent returns the most recent entries, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ActivityEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeOlderThan deletes entries older than the cutoff and returns the
// number removed. The retention worker calls this on a timer.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
