package enrollmentstore_test

import (
	"errors"
	"testing"

	enrollmentstore "github.com/kevharv/traintrack/internal/app/store/enrollments"
	"github.com/kevharv/traintrack/internal/app/system/indexes"
	"github.com/kevharv/traintrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Enroll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	e, err := store.Enroll(ctx, userID, courseID)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if e.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if e.Progress != 0 {
		t.Errorf("expected progress 0, got %d", e.Progress)
	}
	if e.EnrolledAt.IsZero() {
		t.Error("expected EnrolledAt to be set")
	}
}

func TestStore_Enroll_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The duplicate guard is the unique user_id+course_id index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	if _, err := store.Enroll(ctx, userID, courseID); err != nil {
		t.Fatalf("first Enroll failed: %v", err)
	}
	_, err := store.Enroll(ctx, userID, courseID)
	if !errors.Is(err, enrollmentstore.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestStore_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	if _, err := store.Enroll(ctx, userID, primitive.NewObjectID()); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if _, err := store.Enroll(ctx, userID, primitive.NewObjectID()); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if _, err := store.Enroll(ctx, primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	list, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 enrollments, got %d", len(list))
	}
}

func TestStore_CompleteSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()
	if _, err := store.Enroll(ctx, userID, courseID); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	s1 := primitive.NewObjectID()
	s2 := primitive.NewObjectID()

	if err := store.CompleteSession(ctx, userID, courseID, s1, 4); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}
	// Completing the same session again must not double-count.
	if err := store.CompleteSession(ctx, userID, courseID, s1, 4); err != nil {
		t.Fatalf("repeat CompleteSession failed: %v", err)
	}
	if err := store.CompleteSession(ctx, userID, courseID, s2, 4); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}

	list, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 enrollment, got %d", len(list))
	}
	e := list[0]
	if len(e.CompletedSessions) != 2 {
		t.Errorf("expected 2 completed sessions, got %d", len(e.CompletedSessions))
	}
	if e.Progress != 50 {
		t.Errorf("progress: got %d, want 50", e.Progress)
	}
	if e.LastAccessed == nil {
		t.Error("expected last_accessed to be stamped")
	}
}

func TestStore_CompleteSession_NotEnrolled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := enrollmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.CompleteSession(ctx, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), 4)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}
