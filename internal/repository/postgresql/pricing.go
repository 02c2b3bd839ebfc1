package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

type PricingRepo struct{}

func NewPricingRepo() storage.PricingRepository {
	return &PricingRepo{}
}

func (r *PricingRepo) List(ctx context.Context, q db.Querier) ([]*repository.Price, error) {
	var prices []*repository.Price
	err := q.Select(ctx, &prices, `
        SELECT id, milk_type, price, COALESCE(previous_price, 0) AS previous_price, updated_at
        FROM pricing
        ORDER BY milk_type
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return prices, nil
}

// SetPrice moves the current price into previous_price and stores the new one.
func (r *PricingRepo) SetPrice(ctx context.Context, q db.Querier, milkType string, price decimal.Decimal) (*repository.Price, error) {
	var p repository.Price
	err := q.Get(ctx, &p, `
        UPDATE pricing
        SET previous_price = price, price = $1, updated_at = NOW()
        WHERE milk_type = $2
        RETURNING id, milk_type, price, COALESCE(previous_price, 0) AS previous_price, updated_at
    `, price, milkType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to update %s price: %w", milkType, err)
	}
	return &p, nil
}

// Seed inserts a price row unless the milk type is already priced.
func (r *PricingRepo) Seed(ctx context.Context, q db.Querier, milkType string, price, previous decimal.Decimal) error {
	_, err := q.Exec(ctx, `
        INSERT INTO pricing (milk_type, price, previous_price)
        VALUES ($1, $2, $3)
        ON CONFLICT (milk_type) DO NOTHING
    `, milkType, price, previous)
	if err != nil {
		return fmt.Errorf("failed to seed %s price: %w", milkType, err)
	}
	return nil
}
