package rejectedstore_test

import (
	"testing"
	"time"

	rejectedstore "github.com/kevharv/traintrack/internal/app/store/rejectedusers"
	"github.com/kevharv/traintrack/internal/domain/models"
	"github.com/kevharv/traintrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rejectedstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending := models.PendingUser{
		ID:            primitive.NewObjectID(),
		FullName:      "Carol Example",
		Email:         "carol@example.com",
		RequestedRole: "trainer",
		SubmittedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := store.CreateRejected(ctx, pending, "Incomplete application"); err != nil {
		t.Fatalf("CreateRejected failed: %v", err)
	}

	r, err := store.GetByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if r.FullName != pending.FullName || r.Email != pending.Email {
		t.Errorf("copied fields mismatch: %q/%q", r.FullName, r.Email)
	}
	if r.Reason != "Incomplete application" {
		t.Errorf("reason: got %q", r.Reason)
	}
	if !r.SubmittedAt.Equal(pending.SubmittedAt) {
		t.Errorf("submitted_at: got %v, want %v", r.SubmittedAt, pending.SubmittedAt)
	}
	// Server-assigned
	if r.RejectedAt.IsZero() {
		t.Error("expected server-assigned RejectedAt")
	}
}

func TestStore_CreateRejected_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rejectedstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pending := models.PendingUser{
		ID:          primitive.NewObjectID(),
		FullName:    "Dana Example",
		Email:       "dana@example.com",
		SubmittedAt: time.Now().UTC(),
	}

	if err := store.CreateRejected(ctx, pending, "first"); err != nil {
		t.Fatalf("first CreateRejected failed: %v", err)
	}
	if err := store.CreateRejected(ctx, pending, "second"); err != nil {
		t.Fatalf("second CreateRejected failed: %v", err)
	}

	n, err := db.Collection("rejectedUsers").CountDocuments(ctx, bson.M{"_id": pending.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 rejected doc, got %d", n)
	}
}

func TestStore_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rejectedstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := primitive.NewObjectID()
	exists, err := store.Exists(ctx, id)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected false before create")
	}

	if err := store.CreateRejected(ctx, models.PendingUser{ID: id, FullName: "X", Email: "x@example.com", SubmittedAt: time.Now()}, "r"); err != nil {
		t.Fatalf("CreateRejected failed: %v", err)
	}

	exists, err = store.Exists(ctx, id)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected true after create")
	}
}
