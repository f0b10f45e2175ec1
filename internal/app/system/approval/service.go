// internal/app/system/approval/service.go
package approval

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	pendingstore "github.com/kevharv/traintrack/internal/app/store/pendingusers"
	rejectedstore "github.com/kevharv/traintrack/internal/app/store/rejectedusers"
	userstore "github.com/kevharv/traintrack/internal/app/store/users"
	"github.com/kevharv/traintrack/internal/app/system/activitylog"
	"github.com/kevharv/traintrack/internal/app/system/auth"
	"github.com/kevharv/traintrack/internal/app/system/mailer"
	"github.com/kevharv/traintrack/internal/app/system/txn"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Decisions accepted by Resolve. Anything else is rejected up front; the
// pending record is never touched for an unrecognized decision.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Request asks for one pending signup to be resolved. All five fields are
// mandatory.
type Request struct {
	PendingUserID string `json:"pendingUserId"`
	ToName        string `json:"to_name"`
	ToEmail       string `json:"to_email"`
	Message       string `json:"message"`
	Decision      string `json:"action"`
}

// Result reports a completed workflow run.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service resolves pending signups to exactly one terminal state: an active
// user account or a rejected-signup record. All collaborators are injected.
type Service struct {
	client   *mongo.Client
	pending  *pendingstore.Store
	users    *userstore.Store
	rejected *rejectedstore.Store
	mail     mailer.Sender
	activity *activitylog.Logger
	siteName string
	log      *zap.Logger
	sanitize *bluemonday.Policy
}

// NewService wires the approval workflow. activity may be nil to disable
// activity logging (tests).
func NewService(
	client *mongo.Client,
	pending *pendingstore.Store,
	userStore *userstore.Store,
	rejected *rejectedstore.Store,
	mail mailer.Sender,
	activity *activitylog.Logger,
	siteName string,
	logger *zap.Logger,
) *Service {
	return &Service{
		client:   client,
		pending:  pending,
		users:    userStore,
		rejected: rejected,
		mail:     mail,
		activity: activity,
		siteName: siteName,
		log:      logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Resolve runs the approval workflow:
//
//  1. validate the request (closed decision enum, all fields present)
//  2. authorize the actor (admin only)
//  3. send the decision email
//  4. migrate the pending record to its terminal collection, transactionally
//     where the deployment supports it
//  5. record the decision in the activity log (best effort)
//
// The email is deliberately sent before the pending record is read, matching
// the behavior admins and signups already rely on: a decision email can go
// out even when the record was concurrently resolved, and the later read
// then fails NotFound. Steps 1 and 2 have no side effects.
func (s *Service) Resolve(ctx context.Context, actor *auth.SessionUser, req Request) (Result, error) {
	req.PendingUserID = strings.TrimSpace(req.PendingUserID)
	req.ToName = strings.TrimSpace(req.ToName)
	req.ToEmail = strings.TrimSpace(req.ToEmail)
	req.Message = strings.TrimSpace(req.Message)
	req.Decision = strings.ToLower(strings.TrimSpace(req.Decision))

	if req.PendingUserID == "" || req.ToName == "" || req.ToEmail == "" || req.Message == "" || req.Decision == "" {
		return Result{}, fmt.Errorf("%w: all of pendingUserId, to_name, to_email, message, action are required", ErrInvalidArgument)
	}
	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return Result{}, fmt.Errorf("%w: action must be %q or %q, got %q", ErrInvalidArgument, DecisionApprove, DecisionReject, req.Decision)
	}
	id, err := primitive.ObjectIDFromHex(req.PendingUserID)
	if err != nil {
		return Result{}, fmt.Errorf("%w: malformed pendingUserId %q", ErrInvalidArgument, req.PendingUserID)
	}

	if actor == nil || !strings.EqualFold(actor.Role, "admin") {
		return Result{}, fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}

	decided := "approved"
	if req.Decision == DecisionReject {
		decided = "rejected"
	}

	// Strip any markup from the admin's free-text message, then unescape so
	// plain text like "O'Brien" survives into the text body untouched.
	message := html.UnescapeString(s.sanitize.Sanitize(req.Message))

	email := mailer.BuildDecisionEmail(mailer.DecisionEmailData{
		SiteName: s.siteName,
		Name:     req.ToName,
		Decision: decided,
		Message:  message,
	})
	email.To = req.ToEmail
	if err := s.mail.Send(email); err != nil {
		s.log.Error("decision email send failed",
			zap.String("pending_id", id.Hex()),
			zap.String("decision", req.Decision),
			zap.Error(err))
		return Result{}, fmt.Errorf("%w: sending decision email: %v", ErrInternal, err)
	}

	if err := s.migrate(ctx, id, req.Decision, message); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Result{}, err
		}
		s.log.Error("pending user migration failed",
			zap.String("pending_id", id.Hex()),
			zap.String("decision", req.Decision),
			zap.Error(err))
		return Result{}, fmt.Errorf("%w: migrating pending user: %v", ErrInternal, err)
	}

	s.recordDecision(ctx, actor, id, req)

	s.log.Info("pending user resolved",
		zap.String("pending_id", id.Hex()),
		zap.String("decision", req.Decision),
		zap.String("actor_id", actor.ID))

	return Result{Success: true, Message: "User processed and email sent successfully."}, nil
}

// migrate moves the pending record into its terminal collection and removes
// it from the review queue. When the deployment supports multi-document
// transactions all three operations commit atomically; otherwise we fall
// back to the sequential path with a conditional delete.
func (s *Service) migrate(ctx context.Context, id primitive.ObjectID, decision, message string) error {
	err := txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		return s.migrateSteps(sc, id, decision, message, false)
	})
	if err != nil && txn.IsNotSupported(err) {
		s.log.Warn("transactions unavailable, using sequential migration",
			zap.String("pending_id", id.Hex()))
		return s.migrateSteps(ctx, id, decision, message, true)
	}
	return err
}

// migrateSteps is the read → write → delete sequence. Inside a transaction
// the conditional-delete guard is redundant; in sequential mode it is the
// only defense against a concurrent duplicate invocation, so the loser of
// the race surfaces NotFound instead of silently double-processing.
func (s *Service) migrateSteps(ctx context.Context, id primitive.ObjectID, decision, message string, sequential bool) error {
	p, err := s.pending.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pendingstore.ErrNotFound) {
			return fmt.Errorf("%w: no pending signup with id %s", ErrNotFound, id.Hex())
		}
		return fmt.Errorf("reading pending signup: %w", err)
	}

	switch decision {
	case DecisionApprove:
		if err := s.users.CreateApproved(ctx, *p); err != nil {
			return fmt.Errorf("creating active user: %w", err)
		}
	case DecisionReject:
		if err := s.rejected.CreateRejected(ctx, *p, message); err != nil {
			return fmt.Errorf("creating rejected record: %w", err)
		}
	}

	deleted, err := s.pending.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting pending signup: %w", err)
	}
	if sequential && !deleted {
		// A concurrent run got here first. The destination upsert above is
		// keyed on _id so no duplicate record was created.
		return fmt.Errorf("%w: pending signup %s already resolved", ErrNotFound, id.Hex())
	}
	return nil
}

func (s *Service) recordDecision(ctx context.Context, actor *auth.SessionUser, id primitive.ObjectID, req Request) {
	if s.activity == nil {
		return
	}
	actorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		actorID = primitive.NilObjectID
	}
	if req.Decision == DecisionApprove {
		s.activity.UserApproved(ctx, nil, actorID, id, actor.Name, req.ToEmail)
	} else {
		s.activity.UserRejected(ctx, nil, actorID, id, actor.Name, req.ToEmail)
	}
}
