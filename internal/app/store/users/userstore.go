package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/kevharv/traintrack/internal/app/system/normalize"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusActive is the status accounts start in; disabled accounts cannot
// sign in.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"trainer"|"user"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields. This is
// the direct-creation path (admin provisioning, fixtures); accounts going
// through the approval workflow are written with CreateApproved instead.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = StatusActive
	}

	switch u.Role {
	case "admin", "trainer", "user":
		// ok
	default:
		return models.User{}, errBadRole
	}

	if u.Status != StatusActive && u.Status != StatusDisabled {
		return models.User{}, errBadStatus
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CreateApproved writes the active record for an approved pending signup,
// keeping the pending record's id. The role is always forced to "user" and
// created_at/updated_at are assigned by the database server, not the client
// clock. The write is an upsert keyed on _id so a retried migration does not
// produce a duplicate-key failure after a partial earlier run.
func (s *Store) CreateApproved(ctx context.Context, p models.PendingUser) error {
	set := bson.M{
		"full_name":    normalize.Name(p.FullName),
		"full_name_ci": text.Fold(normalize.Name(p.FullName)),
		"email":        normalize.Email(p.Email),
		"role":         "user",
		"status":       StatusActive,
	}
	if p.PasswordHash != "" {
		set["password_hash"] = p.PasswordHash
	}

	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": p.ID},
		bson.M{
			"$set": set,
			"$currentDate": bson.M{
				"created_at": true,
				"updated_at": true,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}

// SetLastLogin stamps the user's last successful sign-in.
func (s *Store) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

// EmailExists checks whether any active account uses the given email.
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

// CountByRole returns the number of users per role; used by the analytics
// overview.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$role"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Role] = row.Count
	}
	return counts, cur.Err()
}
