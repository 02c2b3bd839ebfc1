package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

type InventoryRepo struct{}

func NewInventoryRepo() storage.InventoryRepository {
	return &InventoryRepo{}
}

func (r *InventoryRepo) ListRecent(ctx context.Context, q db.Querier, limit int) ([]*repository.Inventory, error) {
	var rows []*repository.Inventory
	err := q.Select(ctx, &rows, `
        SELECT id, date, buffalo_stock, cow_stock, buffalo_sold, cow_sold, wastage
        FROM inventory
        ORDER BY date DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return rows, nil
}

// AddStock adds the given stock and wastage to the day's row, creating it if needed.
func (r *InventoryRepo) AddStock(ctx context.Context, q db.Querier, inv *repository.Inventory) error {
	_, err := q.Exec(ctx, `
        INSERT INTO inventory (date, buffalo_stock, cow_stock, wastage)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (date) DO UPDATE SET
            buffalo_stock = inventory.buffalo_stock + EXCLUDED.buffalo_stock,
            cow_stock = inventory.cow_stock + EXCLUDED.cow_stock,
            wastage = inventory.wastage + EXCLUDED.wastage,
            updated_at = NOW()
    `, inv.Date, inv.BuffaloStock, inv.CowStock, inv.Wastage)
	if err != nil {
		return fmt.Errorf("failed to add inventory for %s: %w", inv.Date.Format("2006-01-02"), err)
	}
	return nil
}

func (r *InventoryRepo) Update(ctx context.Context, q db.Querier, inv *repository.Inventory) error {
	tag, err := q.Exec(ctx, `
        UPDATE inventory
        SET buffalo_stock = $1, cow_stock = $2, buffalo_sold = $3, cow_sold = $4, wastage = $5, updated_at = NOW()
        WHERE id = $6
    `, inv.BuffaloStock, inv.CowStock, inv.BuffaloSold, inv.CowSold, inv.Wastage, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update inventory %d: %w", inv.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// RecordSale books delivered litres against the day's sold column.
func (r *InventoryRepo) RecordSale(ctx context.Context, q db.Querier, date time.Time, milkType string, litres decimal.Decimal) error {
	column := "cow_sold"
	if milkType == "buffalo" {
		column = "buffalo_sold"
	}
	_, err := q.Exec(ctx, `
        INSERT INTO inventory (date, `+column+`)
        VALUES ($1, $2)
        ON CONFLICT (date) DO UPDATE SET
            `+column+` = inventory.`+column+` + EXCLUDED.`+column+`,
            updated_at = NOW()
    `, date, litres)
	if err != nil {
		return fmt.Errorf("failed to record %s sale: %w", milkType, err)
	}
	return nil
}
