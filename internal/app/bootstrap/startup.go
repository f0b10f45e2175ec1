// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/kevharv/traintrack/internal/app/store/activity"
	"github.com/kevharv/traintrack/internal/app/system/normalize"
	"github.com/kevharv/traintrack/internal/app/system/workers"
	"github.com/kevharv/traintrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// purgeWorker is started here and stopped in Shutdown.
var purgeWorker *workers.ActivityPurge

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// TrainTrack seeds the admin account (if admin_email is configured) and
// starts the background worker that prunes old activity log entries.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}

	purgeWorker = workers.NewActivityPurge(
		activity.New(deps.MongoDatabase),
		logger,
		appCfg.ActivityPurgeInterval,
		appCfg.ActivityRetention,
	)
	purgeWorker.Start()

	return nil
}

// ensureAdmin promotes the account with the given email to admin, creating
// it when it does not exist yet. A created account has no password hash and
// cannot log in until one is set.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := deps.MongoDatabase.Collection("users")
	addr := normalize.Email(email)

	var existing models.User
	err := users.FindOne(ctx, bson.M{"email": addr}).Decode(&existing)
	switch {
	case err == nil:
		if existing.Role == "admin" {
			return nil
		}
		_, err := users.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"role": "admin", "updated_at": time.Now().UTC()}})
		if err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", addr))
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		now := time.Now().UTC()
		u := models.User{
			ID:         primitive.NewObjectID(),
			FullName:   "Administrator",
			FullNameCI: text.Fold("Administrator"),
			Email:      addr,
			Role:       "admin",
			Status:     "active",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := users.InsertOne(ctx, u); err != nil {
			return err
		}
		logger.Info("created admin user (no password set)", zap.String("email", addr))
		return nil
	default:
		return err
	}
}
