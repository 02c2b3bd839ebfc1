package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

const subscriptionColumns = `id, user_id, customer_name, address, address_id, status, auto_pay, created_at, updated_at`

type SubscriptionRepo struct{}

func NewSubscriptionRepo() storage.SubscriptionRepository {
	return &SubscriptionRepo{}
}

func (r *SubscriptionRepo) Create(ctx context.Context, q db.Querier, sub *repository.Subscription) (int64, error) {
	var id int64
	err := q.Get(ctx, &id, `
        INSERT INTO milk_subscriptions (
            user_id, customer_name, address, address_id, status, auto_pay, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, sub.UserID, sub.CustomerName, sub.Address, sub.AddressID, sub.Status, sub.AutoPay, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert subscription: %w", err)
	}
	return id, nil
}

func (r *SubscriptionRepo) GetByID(ctx context.Context, q db.Querier, id int64) (*repository.Subscription, error) {
	var sub repository.Subscription
	err := q.Get(ctx, &sub, "SELECT "+subscriptionColumns+" FROM milk_subscriptions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// GetCurrentByUser returns the user's newest subscription that is not cancelled.
func (r *SubscriptionRepo) GetCurrentByUser(ctx context.Context, q db.Querier, userID string) (*repository.Subscription, error) {
	var sub repository.Subscription
	err := q.Get(ctx, &sub, `
        SELECT `+subscriptionColumns+`
        FROM milk_subscriptions
        WHERE user_id = $1 AND status != $2
        ORDER BY created_at DESC
        LIMIT 1
    `, userID, repository.SubscriptionCancelled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepo) Update(ctx context.Context, q db.Querier, sub *repository.Subscription) error {
	tag, err := q.Exec(ctx, `
        UPDATE milk_subscriptions
        SET
            customer_name = $1,
            address = $2,
            address_id = $3,
            status = $4,
            auto_pay = $5,
            updated_at = $6
        WHERE id = $7
    `, sub.CustomerName, sub.Address, sub.AddressID, sub.Status, sub.AutoPay, sub.UpdatedAt, sub.ID)
	if err != nil {
		return fmt.Errorf("failed to update subscription %d: %w", sub.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *SubscriptionRepo) UpdateStatus(ctx context.Context, q db.Querier, id int64, status string) error {
	tag, err := q.Exec(ctx, "UPDATE milk_subscriptions SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update subscription %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// CancelByUser cancels every open subscription of the user and reports how many were cancelled.
func (r *SubscriptionRepo) CancelByUser(ctx context.Context, q db.Querier, userID string) (int64, error) {
	tag, err := q.Exec(ctx, `
        UPDATE milk_subscriptions
        SET status = $1, updated_at = NOW()
        WHERE user_id = $2 AND status != $1
    `, repository.SubscriptionCancelled, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel subscriptions of user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *SubscriptionRepo) ListByStatus(ctx context.Context, q db.Querier, statuses ...string) ([]*repository.Subscription, error) {
	var subs []*repository.Subscription
	err := q.Select(ctx, &subs, `
        SELECT `+subscriptionColumns+`
        FROM milk_subscriptions
        WHERE status = ANY($1)
        ORDER BY created_at DESC
    `, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

func (r *SubscriptionRepo) CountByStatus(ctx context.Context, q db.Querier) (*repository.SubscriptionCounts, error) {
	var counts repository.SubscriptionCounts
	err := q.Get(ctx, &counts, `
        SELECT
            COUNT(*) FILTER (WHERE status = $1) AS active,
            COUNT(*) FILTER (WHERE status = $2) AS paused
        FROM milk_subscriptions
    `, repository.SubscriptionActive, repository.SubscriptionPaused)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return &counts, nil
}
