// Package txn runs multi-document work inside a MongoDB transaction when the
// deployment supports one, and lets callers detect unsupported deployments
// (standalone servers) so they can fall back to sequential writes.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes that indicate transactions are unavailable on this
// deployment rather than that this particular transaction failed.
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// WithTransaction starts a session and runs fn inside a transaction,
// committing on nil and aborting on error. The error from fn is returned
// unwrapped so callers can inspect it (e.g. mongo.ErrNoDocuments).
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions at all (standalone mongod, old DocDB, etc.).
// Callers use this to retry the same work without a transaction.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") &&
		(strings.Contains(s, "replica set") ||
			strings.Contains(s, "session") ||
			strings.Contains(s, "illegal operation")) {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}
