package sessionstore_test

import (
	"errors"
	"testing"
	"time"

	sessionstore "github.com/kevharv/traintrack/internal/app/store/sessions"
	"github.com/kevharv/traintrack/internal/domain/models"
	"github.com/kevharv/traintrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.TrainingSession{
		CourseID: primitive.NewObjectID(),
		Title:    "Week 1",
		Date:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cases := []struct {
		name    string
		session models.TrainingSession
	}{
		{"no course", models.TrainingSession{Title: "X", Date: time.Now()}},
		{"no title", models.TrainingSession{CourseID: primitive.NewObjectID(), Date: time.Now()}},
		{"no date", models.TrainingSession{CourseID: primitive.NewObjectID(), Title: "X"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.session); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStore_ListByCourse_Chronological(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	courseID := primitive.NewObjectID()
	base := time.Now().UTC().Truncate(time.Millisecond)

	// Insert out of order; the list must come back sorted by date.
	fixtures.CreateTrainingSession(ctx, courseID, base.Add(48*time.Hour))
	fixtures.CreateTrainingSession(ctx, courseID, base)
	fixtures.CreateTrainingSession(ctx, courseID, base.Add(24*time.Hour))
	fixtures.CreateTrainingSession(ctx, primitive.NewObjectID(), base)

	list, err := store.ListByCourse(ctx, courseID)
	if err != nil {
		t.Fatalf("ListByCourse failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.Before(list[i-1].Date) {
			t.Errorf("sessions not in chronological order at %d", i)
		}
	}
}

func TestStore_MarkAttendance_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fixtures.CreateTrainingSession(ctx, primitive.NewObjectID(), time.Now())
	userID := primitive.NewObjectID()

	if err := store.MarkAttendance(ctx, s.ID, userID); err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}
	// Marking twice must not duplicate the attendee.
	if err := store.MarkAttendance(ctx, s.ID, userID); err != nil {
		t.Fatalf("second MarkAttendance failed: %v", err)
	}

	got, err := store.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Attendees) != 1 {
		t.Errorf("expected 1 attendee, got %d", len(got.Attendees))
	}
}

func TestStore_MarkAttendance_UnknownSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.MarkAttendance(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}
