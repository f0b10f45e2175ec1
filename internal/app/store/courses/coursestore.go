// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/kevharv/traintrack/internal/app/system/normalize"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNoTitle      = errors.New("course title is required")
	errBadLevel     = errors.New(`level must be "beginner"|"intermediate"|"advanced"`)
	errBadStatus    = errors.New(`status must be "draft"|"active"|"completed"|"cancelled"`)
	errNoInstructor = errors.New("course must have an instructor")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

// Create inserts a new course after validating fields. New courses default
// to draft status.
func (s *Store) Create(ctx context.Context, c models.Course) (models.Course, error) {
	c.ID = primitive.NewObjectID()
	c.Title = normalize.Name(c.Title)
	c.TitleCI = text.Fold(c.Title)
	if c.Status == "" {
		c.Status = "draft"
	}

	if c.Title == "" {
		return models.Course{}, errNoTitle
	}
	if c.InstructorID == primitive.NilObjectID {
		return models.Course{}, errNoInstructor
	}
	if c.Level != "" {
		switch c.Level {
		case "beginner", "intermediate", "advanced":
			// ok
		default:
			return models.Course{}, errBadLevel
		}
	}
	switch c.Status {
	case "draft", "active", "completed", "cancelled":
		// ok
	default:
		return models.Course{}, errBadStatus
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// GetByID loads a course by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByInstructor returns the instructor's courses, newest first.
func (s *Store) ListByInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, bson.M{"instructor_id": instructorID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Course
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves a course between lifecycle states.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case "draft", "active", "completed", "cancelled":
		// ok
	default:
		return errBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// IncrementParticipants bumps current_participants when an enrollment is
// created. The filter guards the course capacity so an over-full course is
// not incremented past max_participants.
func (s *Store) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id": id,
			"$or": bson.A{
				bson.M{"max_participants": bson.M{"$exists": false}},
				bson.M{"max_participants": 0},
				bson.M{"$expr": bson.M{"$lt": bson.A{"$current_participants", "$max_participants"}}},
			},
		},
		bson.M{"$inc": bson.M{"current_participants": 1}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// CountByStatus returns course counts per status for the analytics overview.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
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
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}
