// internal/app/store/pendingusers/pendingstore.go
package pendingstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"github.com/kevharv/traintrack/internal/app/system/normalize"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when a signup with the same email is already waiting.
	ErrDuplicateEmail = errors.New("a signup with this email is already pending")
	// ErrNotFound is returned when no pending record exists for the given id.
	ErrNotFound = errors.New("pending user not found")

	errBadRequestedRole = errors.New(`requested_role must be "trainee"|"trainer"`)
)

// Store manages the pendingUsers collection. The collection name matches
// the original deployment; records are keyed by the ObjectID that follows
// the signup into its terminal collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pendingUsers")}
}

// Collection exposes the underlying collection for transactional callers
// (the approval workflow reads and deletes pending records inside a session).
func (s *Store) Collection() *mongo.Collection {
	return s.c
}

// Create files a new signup awaiting review. It normalizes fields, assigns
// the signup token, and stamps submitted_at.
func (s *Store) Create(ctx context.Context, p models.PendingUser) (models.PendingUser, error) {
	p.ID = primitive.NewObjectID()
	p.FullName = normalize.Name(p.FullName)
	p.FullNameCI = text.Fold(p.FullName)
	p.Email = normalize.Email(p.Email)
	p.RequestedRole = normalize.Role(p.RequestedRole)
	p.SignupToken = uuid.NewString()
	p.SubmittedAt = time.Now().UTC()

	switch p.RequestedRole {
	case "trainee", "trainer":
		// ok
	default:
		return models.PendingUser{}, errBadRequestedRole
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PendingUser{}, ErrDuplicateEmail
		}
		return models.PendingUser{}, err
	}
	return p, nil
}

// GetByID loads a pending signup. Returns ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PendingUser, error) {
	var p models.PendingUser
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByToken loads a pending signup by its signup token. This is the public
// status-check path, so it never matches on an empty token. Returns
// ErrNotFound when absent.
func (s *Store) GetByToken(ctx context.Context, token string) (*models.PendingUser, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var p models.PendingUser
	if err := s.c.FindOne(ctx, bson.M{"signup_token": token}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// EmailExists checks whether a signup with this email is already waiting.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// ListNewestFirst returns pending signups ordered by submission time,
// newest first. This is the admin review queue.
func (s *Store) ListNewestFirst(ctx context.Context, limit int64) ([]models.PendingUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PendingUser
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a pending record. It reports whether a document was
// actually deleted, so concurrent duplicate migrations can detect that the
// other invocation won.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// Count returns the number of signups waiting for review.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
