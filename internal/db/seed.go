//go:generate mockgen -source ./seed.go -destination=./mocks/seed.go -package=mock_database
package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type AdminCreator interface {
	EnsureUser(ctx context.Context, username, password string) (bool, error)
}

type PricingSeeder interface {
	SeedPricing(ctx context.Context) error
}

// InitAdmin creates the back-office account and the launch price list on first
// start. Existing rows are left alone.
func InitAdmin(ctx context.Context, users AdminCreator, pricing PricingSeeder, username, password string) error {
	if username == "" || password == "" {
		zap.L().Warn("ADMIN_USERNAME or ADMIN_PASSWORD not set, admin user not seeded")
	} else {
		created, err := users.EnsureUser(ctx, username, password)
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		if created {
			zap.L().Info("admin user created", zap.String("username", username))
		} else {
			zap.L().Info("admin user already exists", zap.String("username", username))
		}
	}

	if pricing == nil {
		return errors.New("pricing seeder is required")
	}
	if err := pricing.SeedPricing(ctx); err != nil {
		return fmt.Errorf("failed to seed pricing: %w", err)
	}
	return nil
}
