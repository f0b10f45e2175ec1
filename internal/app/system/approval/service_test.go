package approval_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	pendingstore "github.com/kevharv/traintrack/internal/app/store/pendingusers"
	rejectedstore "github.com/kevharv/traintrack/internal/app/store/rejectedusers"
	userstore "github.com/kevharv/traintrack/internal/app/store/users"
	"github.com/kevharv/traintrack/internal/app/system/approval"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/mailer"
	"github.com/kevharv/traintrack/internal/domain/models"
	"github.com/kevharv/traintrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func adminActor() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  "admin",
	}
}

type env struct {
	db       *mongo.Database
	svc      *approval.Service
	mail     *mailer.Recorder
	pending  *pendingstore.Store
	users    *userstore.Store
	rejected *rejectedstore.Store
	fix      *testutil.Fixtures
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mail := &mailer.Recorder{}
	pending := pendingstore.New(db)
	userStore := userstore.New(db)
	rejected := rejectedstore.New(db)
	svc := approval.NewService(db.Client(), pending, userStore, rejected, mail, nil, "TrainTrack", zap.NewNop())
	return &env{
		db:       db,
		svc:      svc,
		mail:     mail,
		pending:  pending,
		users:    userStore,
		rejected: rejected,
		fix:      testutil.NewFixtures(t, db),
	}
}

func validRequest(p models.PendingUser, decision string) approval.Request {
	return approval.Request{
		PendingUserID: p.ID.Hex(),
		ToName:        p.FullName,
		ToEmail:       p.Email,
		Message:       "Welcome aboard",
		Decision:      decision,
	}
}

func TestResolve_ValidationFailures(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Alice Example", "alice@example.com", "trainee")

	cases := []struct {
		name   string
		mutate func(*approval.Request)
	}{
		{"missing id", func(r *approval.Request) { r.PendingUserID = "" }},
		{"missing name", func(r *approval.Request) { r.ToName = "" }},
		{"missing email", func(r *approval.Request) { r.ToEmail = "" }},
		{"missing message", func(r *approval.Request) { r.Message = "  " }},
		{"missing action", func(r *approval.Request) { r.Decision = "" }},
		{"unknown action", func(r *approval.Request) { r.Decision = "purge" }},
		{"malformed id", func(r *approval.Request) { r.PendingUserID = "not-a-hex-id" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(p, approval.DecisionApprove)
			tc.mutate(&req)

			_, err := e.svc.Resolve(ctx, adminActor(), req)
			if !errors.Is(err, approval.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	if n := len(e.mail.Sent()); n != 0 {
		t.Errorf("validation failures must not send email, sent %d", n)
	}
	if _, err := e.pending.GetByID(ctx, p.ID); err != nil {
		t.Errorf("pending record must survive validation failures: %v", err)
	}
}

func TestResolve_RequiresAdmin(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Bob Example", "bob@example.com", "trainee")
	req := validRequest(p, approval.DecisionApprove)

	actors := []*auth.SessionUser{
		nil,
		{ID: primitive.NewObjectID().Hex(), Name: "Trainer", Email: "t@test.com", Role: "trainer"},
		{ID: primitive.NewObjectID().Hex(), Name: "User", Email: "u@test.com", Role: "user"},
	}
	for _, actor := range actors {
		_, err := e.svc.Resolve(ctx, actor, req)
		if !errors.Is(err, approval.ErrPermissionDenied) {
			t.Fatalf("actor %+v: expected ErrPermissionDenied, got %v", actor, err)
		}
	}

	if n := len(e.mail.Sent()); n != 0 {
		t.Errorf("authorization failures must not send email, sent %d", n)
	}
	if _, err := e.pending.GetByID(ctx, p.ID); err != nil {
		t.Errorf("pending record must survive authorization failures: %v", err)
	}
}

func TestResolve_ApprovePath(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Alice Example", "alice@example.com", "trainee")

	res, err := e.svc.Resolve(ctx, adminActor(), validRequest(p, approval.DecisionApprove))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !res.Success {
		t.Error("expected Success=true")
	}

	sent := e.mail.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	if sent[0].To != "alice@example.com" {
		t.Errorf("email To: got %q", sent[0].To)
	}
	if !strings.Contains(sent[0].Subject, "approved") {
		t.Errorf("subject should name the decision, got %q", sent[0].Subject)
	}
	if !strings.Contains(sent[0].TextBody, "Welcome aboard") {
		t.Errorf("body should carry the admin message, got %q", sent[0].TextBody)
	}

	u, err := e.users.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("approved user not found: %v", err)
	}
	if u.Role != "user" {
		t.Errorf("approved role: got %q, want %q", u.Role, "user")
	}
	if u.FullName != p.FullName || u.Email != p.Email {
		t.Errorf("copied fields mismatch: got %q/%q", u.FullName, u.Email)
	}
	if u.CreatedAt.IsZero() {
		t.Error("created_at must be server-assigned")
	}

	if _, err := e.pending.GetByID(ctx, p.ID); !errors.Is(err, pendingstore.ErrNotFound) {
		t.Errorf("pending record must be deleted, got %v", err)
	}
	if exists, _ := e.rejected.Exists(ctx, p.ID); exists {
		t.Error("approve must not create a rejected record")
	}
}

func TestResolve_RejectPath(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Carol Example", "carol@example.com", "trainer")

	res, err := e.svc.Resolve(ctx, adminActor(), validRequest(p, approval.DecisionReject))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !res.Success {
		t.Error("expected Success=true")
	}

	sent := e.mail.Sent()
	if len(sent) != 1 || !strings.Contains(sent[0].Subject, "rejected") {
		t.Fatalf("expected one 'rejected' email, got %+v", sent)
	}

	r, err := e.rejected.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("rejected record not found: %v", err)
	}
	if r.FullName != p.FullName || r.Email != p.Email {
		t.Errorf("copied fields mismatch: got %q/%q", r.FullName, r.Email)
	}
	if r.RejectedAt.IsZero() {
		t.Error("rejected_at must be server-assigned")
	}

	if _, err := e.pending.GetByID(ctx, p.ID); !errors.Is(err, pendingstore.ErrNotFound) {
		t.Errorf("pending record must be deleted, got %v", err)
	}
	if _, err := e.users.GetByID(ctx, p.ID); err == nil {
		t.Error("reject must not create an active user")
	}
}

func TestResolve_NotFoundAfterEmail(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := approval.Request{
		PendingUserID: primitive.NewObjectID().Hex(),
		ToName:        "Ghost",
		ToEmail:       "ghost@example.com",
		Message:       "Hello",
		Decision:      approval.DecisionApprove,
	}

	_, err := e.svc.Resolve(ctx, adminActor(), req)
	if !errors.Is(err, approval.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The email goes out before the pending record is read, so a missing
	// record still produces a decision email.
	if n := len(e.mail.Sent()); n != 1 {
		t.Errorf("expected the decision email despite NotFound, got %d", n)
	}
}

func TestResolve_EmailFailureAbortsMigration(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Dave Example", "dave@example.com", "trainee")
	e.mail.Err = errors.New("smtp: connection refused")

	_, err := e.svc.Resolve(ctx, adminActor(), validRequest(p, approval.DecisionApprove))
	if !errors.Is(err, approval.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}

	if _, err := e.pending.GetByID(ctx, p.ID); err != nil {
		t.Errorf("pending record must survive an email failure: %v", err)
	}
	if _, err := e.users.GetByID(ctx, p.ID); err == nil {
		t.Error("no user may be created when the email fails")
	}
}

func TestResolve_DuplicateInvocationFailsNotFound(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Eve Example", "eve@example.com", "trainee")
	req := validRequest(p, approval.DecisionApprove)

	if _, err := e.svc.Resolve(ctx, adminActor(), req); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	_, err := e.svc.Resolve(ctx, adminActor(), req)
	if !errors.Is(err, approval.ErrNotFound) {
		t.Fatalf("second Resolve: expected ErrNotFound, got %v", err)
	}

	// Exactly one destination record.
	n, err := e.db.Collection("users").CountDocuments(ctx, bson.M{"_id": p.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one user doc, got %d", n)
	}
}

func TestResolve_SanitizesMessage(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := e.fix.CreatePendingUser(ctx, "Frank Example", "frank@example.com", "trainee")
	req := validRequest(p, approval.DecisionApprove)
	req.Message = `Welcome <script>alert("x")</script> O'Brien`

	if _, err := e.svc.Resolve(ctx, adminActor(), req); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	body := e.mail.Sent()[0].TextBody
	if strings.Contains(body, "<script>") {
		t.Errorf("markup must be stripped from the message, got %q", body)
	}
	if !strings.Contains(body, "O'Brien") {
		t.Errorf("plain text must survive sanitization, got %q", body)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{approval.ErrInvalidArgument, http.StatusBadRequest},
		{approval.ErrPermissionDenied, http.StatusForbidden},
		{approval.ErrNotFound, http.StatusNotFound},
		{approval.ErrInternal, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := approval.HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v): got %d, want %d", tc.err, got, tc.want)
		}
	}
}
