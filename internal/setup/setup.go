// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/matt-dz/foodgram/internal/argon2id"
	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/database"
	"github.com/matt-dz/foodgram/internal/env"
	"github.com/matt-dz/foodgram/internal/filestore"
)

// HashParams is used to hash the admin password.
var HashParams = argon2id.DefaultParams

// Database connects to PostgreSQL and creates the schema when it is missing.
func Database(ctx context.Context, cfg config.Config) (*database.Database, error) {
	pool, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	return db, nil
}

// FileStore builds the image backend named by the configuration.
func FileStore(ctx context.Context, cfg config.Config) (filestore.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageLocal:
		volume, err := filepath.Abs(cfg.Storage.Volume)
		if err != nil {
			return nil, fmt.Errorf("resolving storage volume: %w", err)
		}
		return filestore.NewLocal(volume, cfg.Storage.URLPrefix, cfg.HostOrigin), nil
	case config.StorageS3:
		s3 := cfg.Storage.S3
		return filestore.NewS3(ctx, filestore.S3Config{
			Endpoint:  s3.Endpoint,
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			UseSSL:    s3.UseSSL,
			PublicURL: s3.PublicURL,
		})
	}
	return nil, NewUnsupportedStorageBackendError(string(cfg.Storage.Backend))
}

// Admin creates the configured admin account when no admin exists yet.
// Requires env.Database.
func Admin(ctx context.Context, env *env.Env) error {
	admin := env.Config.Admin
	if !admin.Enabled() || admin.Password == "" {
		env.Logger.InfoContext(ctx, "Admin account not configured, skipping admin setup")
		return nil
	}

	// Check admin count
	count, err := env.Database.GetAdminCount(ctx)
	if err != nil {
		return fmt.Errorf("getting admin count: %w", err)
	}
	if count > 0 {
		env.Logger.InfoContext(ctx, "Admin already setup, skipping setup")
		return nil
	}

	hashedPassword, err := HashParams.Hash(string(admin.Password))
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// Create admin
	user, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        strings.TrimSpace(admin.Email),
		Username:     admin.Username,
		FirstName:    admin.FirstName,
		LastName:     admin.LastName,
		PasswordHash: hashedPassword,
		Role:         database.RoleAdmin,
	})
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("creating admin: email or username %q is held by another user: %w", admin.Username, err)
	} else if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	env.Logger.InfoContext(ctx, "Successfully setup admin", slog.Int64("user_id", user.ID))

	return nil
}
