package indexes_test

import (
	"testing"

	"github.com/kevharv/traintrack/internal/app/system/indexes"
	"github.com/kevharv/traintrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// First call
	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	err = indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesUserIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := indexes.EnsureAll(ctx, db)
	if err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	// Verify user indexes exist
	cur, err := db.Collection("users").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}

	expected := []string{
		"uniq_users_email",
		"idx_users_role_status_fullnameci_id",
		"idx_users_role",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("expected index %q to exist, got %v", name, names)
		}
	}
}

func TestEnsureAll_CreatesPendingAndEnrollmentIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	checks := map[string][]string{
		"pendingUsers": {"uniq_pending_email", "idx_pending_submittedat"},
		"enrollments":  {"uniq_enrollments_user_course", "idx_enrollments_course"},
		"activity_log": {"idx_activity_createdat"},
	}
	for coll, want := range checks {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("%s: List indexes failed: %v", coll, err)
		}
		names := make(map[string]bool)
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			if name, ok := idx["name"].(string); ok {
				names[name] = true
			}
		}
		cur.Close(ctx)
		for _, name := range want {
			if !names[name] {
				t.Errorf("%s: expected index %q to exist, got %v", coll, name, names)
			}
		}
	}
}
