// internal/app/store/rejectedusers/rejectedstore.go
package rejectedstore

import (
	"context"

	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the rejectedUsers collection, the terminal state for
// declined signups. Records keep the pending record's id.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rejectedUsers")}
}

// CreateRejected writes the terminal record for a declined signup with the
// explicit field mapping from the pending record. rejected_at is assigned
// by the database server. Upsert keyed on _id keeps a retried migration
// from failing on a duplicate key.
func (s *Store) CreateRejected(ctx context.Context, p models.PendingUser, reason string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": p.ID},
		bson.M{
			"$set": bson.M{
				"full_name":      p.FullName,
				"email":          p.Email,
				"requested_role": p.RequestedRole,
				"reason":         reason,
				"submitted_at":   p.SubmittedAt,
			},
			"$currentDate": bson.M{"rejected_at": true},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetByID loads a rejected record. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RejectedUser, error) {
	var r models.RejectedUser
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Exists reports whether a rejected record exists for the id.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
