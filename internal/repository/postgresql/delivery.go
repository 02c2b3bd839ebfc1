package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

const deliveryColumns = `id, subscription_id, slot_id, user_id, delivery_date, slot_type, quantity, milk_type,
    address, customer_name, status, delivered_at, delivered_by`

type DeliveryRepo struct{}

func NewDeliveryRepo() storage.DeliveryRepository {
	return &DeliveryRepo{}
}

// CreateIfAbsent inserts the delivery unless one already exists for the same
// subscription, slot and day. It reports whether a row was written.
func (r *DeliveryRepo) CreateIfAbsent(ctx context.Context, q db.Querier, d *repository.Delivery) (bool, error) {
	tag, err := q.Exec(ctx, `
        INSERT INTO deliveries (
            subscription_id, slot_id, user_id, delivery_date, slot_type, quantity, milk_type,
            address, customer_name, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (subscription_id, slot_type, delivery_date) DO NOTHING
    `, d.SubscriptionID, d.SlotID, d.UserID, d.DeliveryDate, d.SlotType, d.Quantity, d.MilkType,
		d.Address, d.CustomerName, d.Status)
	if err != nil {
		return false, fmt.Errorf("failed to insert delivery: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *DeliveryRepo) GetByID(ctx context.Context, q db.Querier, id int64) (*repository.Delivery, error) {
	var d repository.Delivery
	err := q.Get(ctx, &d, "SELECT "+deliveryColumns+" FROM deliveries WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepo) GetBySlotDate(ctx context.Context, q db.Querier, subscriptionID int64, slotType string, date time.Time) (*repository.Delivery, error) {
	var d repository.Delivery
	err := q.Get(ctx, &d, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE subscription_id = $1 AND slot_type = $2 AND delivery_date = $3
    `, subscriptionID, slotType, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepo) ListByDate(ctx context.Context, q db.Querier, date time.Time) ([]*repository.Delivery, error) {
	var deliveries []*repository.Delivery
	err := q.Select(ctx, &deliveries, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE delivery_date = $1
        ORDER BY slot_type DESC, customer_name
    `, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries for %s: %w", date.Format("2006-01-02"), err)
	}
	return deliveries, nil
}

// ListBySubscriptionRange returns deliveries dated within [from, to].
func (r *DeliveryRepo) ListBySubscriptionRange(ctx context.Context, q db.Querier, subscriptionID int64, from, to time.Time) ([]*repository.Delivery, error) {
	var deliveries []*repository.Delivery
	err := q.Select(ctx, &deliveries, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE subscription_id = $1 AND delivery_date BETWEEN $2 AND $3
        ORDER BY delivery_date, slot_type DESC
    `, subscriptionID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries of subscription %d: %w", subscriptionID, err)
	}
	return deliveries, nil
}

func (r *DeliveryRepo) UpdateStatus(ctx context.Context, q db.Querier, id int64, status string, deliveredAt *time.Time, deliveredBy *string) error {
	tag, err := q.Exec(ctx, `
        UPDATE deliveries
        SET status = $1, delivered_at = $2, delivered_by = $3
        WHERE id = $4
    `, status, deliveredAt, deliveredBy, id)
	if err != nil {
		return fmt.Errorf("failed to update delivery %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// DeletePendingFrom drops the user's not-yet-delivered, not-skipped deliveries dated on or after from.
func (r *DeliveryRepo) DeletePendingFrom(ctx context.Context, q db.Querier, userID string, from time.Time) (int64, error) {
	tag, err := q.Exec(ctx, `
        DELETE FROM deliveries
        WHERE user_id = $1 AND status = $2 AND delivery_date >= $3
    `, userID, repository.DeliveryPending, from)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending deliveries of user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *DeliveryRepo) CountByDate(ctx context.Context, q db.Querier, date time.Time) (*repository.DeliveryCounts, error) {
	var counts repository.DeliveryCounts
	err := q.Get(ctx, &counts, `
        SELECT
            COUNT(*) FILTER (WHERE status = $2) AS delivered,
            COUNT(*) FILTER (WHERE status = $3) AS pending,
            COUNT(*) FILTER (WHERE status = $4) AS skipped
        FROM deliveries
        WHERE delivery_date = $1
    `, date, repository.DeliveryDelivered, repository.DeliveryPending, repository.DeliverySkipped)
	if err != nil {
		return nil, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return &counts, nil
}
