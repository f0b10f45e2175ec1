// internal/app/store/enrollments/enrollmentstore.go
package enrollmentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadyEnrolled is returned when the user already has an enrollment
// for the course (unique index on user_id+course_id).
var ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")

// Store manages the enrollments collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enrollments")}
}

// Enroll links a user to a course.
func (s *Store) Enroll(ctx context.Context, userID, courseID primitive.ObjectID) (models.Enrollment, error) {
	e := models.Enrollment{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		CourseID:   courseID,
		Progress:   0,
		EnrolledAt: time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Enrollment{}, ErrAlreadyEnrolled
		}
		return models.Enrollment{}, err
	}
	return e, nil
}

// ListByUser returns a user's enrollments, most recent first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Enrollment, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Enrollment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteSession records that the user finished a session of the course
// and recomputes the progress percentage from the given session total.
func (s *Store) CompleteSession(ctx context.Context, userID, courseID, sessionID primitive.ObjectID, totalSessions int) error {
	filter := bson.M{"user_id": userID, "course_id": courseID}

	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$addToSet": bson.M{"completed_sessions": sessionID},
		"$set":      bson.M{"last_accessed": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if totalSessions <= 0 {
		return nil
	}

	var e models.Enrollment
	if err := s.c.FindOne(ctx, filter).Decode(&e); err != nil {
		return err
	}
	progress := len(e.CompletedSessions) * 100 / totalSessions
	if progress > 100 {
		progress = 100
	}
	_, err = s.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"progress": progress}})
	return err
}

// Count returns the total number of enrollments.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
