// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "admin")
}

// CreateTrainer creates a test trainer user.
func (f *Fixtures) CreateTrainer(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, "trainer")
}

// CreateDisabledUser creates a test user with disabled status.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       "user",
		Status:     "disabled",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create disabled test user: %v", err)
	}

	return user
}

// CreatePendingUser creates a signup request awaiting review.
func (f *Fixtures) CreatePendingUser(ctx context.Context, fullName, email, requestedRole string) models.PendingUser {
	f.t.Helper()

	p := models.PendingUser{
		ID:            primitive.NewObjectID(),
		FullName:      fullName,
		FullNameCI:    text.Fold(fullName),
		Email:         email,
		RequestedRole: requestedRole,
		SignupToken:   uuid.NewString(),
		SubmittedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("pendingUsers").InsertOne(ctx, p)
	if err != nil {
		f.t.Fatalf("failed to create test pending user: %v", err)
	}

	return p
}

// CreateCourse creates a test course owned by the given instructor.
func (f *Fixtures) CreateCourse(ctx context.Context, title string, instructorID primitive.ObjectID) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:              primitive.NewObjectID(),
		Title:           title,
		TitleCI:         text.Fold(title),
		Description:     "Test course description",
		InstructorID:    instructorID,
		Level:           "beginner",
		Status:          "active",
		MaxParticipants: 30,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := f.db.Collection("courses").InsertOne(ctx, course)
	if err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}

	return course
}

// CreateTrainingSession creates a scheduled session for the given course.
func (f *Fixtures) CreateTrainingSession(ctx context.Context, courseID primitive.ObjectID, date time.Time) models.TrainingSession {
	f.t.Helper()

	s := models.TrainingSession{
		ID:            primitive.NewObjectID(),
		CourseID:      courseID,
		Title:         "Test session",
		Date:          date.UTC(),
		DurationHours: 1,
		Location:      "Room 1",
		CreatedAt:     time.Now().UTC(),
	}

	_, err := f.db.Collection("training_sessions").InsertOne(ctx, s)
	if err != nil {
		f.t.Fatalf("failed to create test training session: %v", err)
	}

	return s
}

// CreateEnrollment enrolls a user on a course.
func (f *Fixtures) CreateEnrollment(ctx context.Context, userID, courseID primitive.ObjectID) models.Enrollment {
	f.t.Helper()

	e := models.Enrollment{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		CourseID:   courseID,
		Progress:   0,
		EnrolledAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("enrollments").InsertOne(ctx, e)
	if err != nil {
		f.t.Fatalf("failed to create test enrollment: %v", err)
	}

	return e
}
