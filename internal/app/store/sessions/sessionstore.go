// internal/app/store/sessions/sessionstore.go
package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNoCourse = errors.New("session must belong to a course")
	errNoTitle  = errors.New("session title is required")
	errNoDate   = errors.New("session date is required")
)

// Store manages the training_sessions collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("training_sessions")}
}

// Create schedules a new session for a course.
func (s *Store) Create(ctx context.Context, ts models.TrainingSession) (models.TrainingSession, error) {
	ts.ID = primitive.NewObjectID()

	if ts.CourseID == primitive.NilObjectID {
		return models.TrainingSession{}, errNoCourse
	}
	if ts.Title == "" {
		return models.TrainingSession{}, errNoTitle
	}
	if ts.Date.IsZero() {
		return models.TrainingSession{}, errNoDate
	}

	ts.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, ts); err != nil {
		return models.TrainingSession{}, err
	}
	return ts, nil
}

// GetByID loads a session by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TrainingSession, error) {
	var ts models.TrainingSession
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// ListByCourse returns a course's sessions in chronological order.
func (s *Store) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.TrainingSession, error) {
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TrainingSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAttendance records a user as present at a session. $addToSet keeps
// repeated marks idempotent.
func (s *Store) MarkAttendance(ctx context.Context, sessionID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$addToSet": bson.M{"attendees": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of scheduled sessions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
