package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

const (
	inventoryHistory = 30
	daysPerMonth     = 30
)

// launchPrices seeds the pricing table: current and previous price per litre.
var launchPrices = map[schedule.MilkType][2]decimal.Decimal{
	schedule.Buffalo: {decimal.NewFromInt(90), decimal.NewFromInt(85)},
	schedule.Cow:     {decimal.NewFromInt(60), decimal.NewFromInt(55)},
}

// SeedPricing inserts the launch prices for milk types that have none yet.
func (s *Storage) SeedPricing(ctx context.Context) error {
	for _, m := range []schedule.MilkType{schedule.Buffalo, schedule.Cow} {
		p := launchPrices[m]
		if err := s.pricing.Seed(ctx, s.db, string(m), p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) GetPricing(ctx context.Context) ([]Price, error) {
	rows, err := s.pricing.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	out := make([]Price, 0, len(rows))
	for _, row := range rows {
		out = append(out, Price{
			MilkType:      row.MilkType,
			Price:         row.Price,
			PreviousPrice: row.PreviousPrice,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return out, nil
}

// UpdatePrice sets a new price per litre; the old one becomes the previous price.
func (s *Storage) UpdatePrice(ctx context.Context, milkType string, price decimal.Decimal) (*Price, error) {
	m, err := schedule.ParseMilkType(milkType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidAmount)
	}

	var updated *repository.Price
	err = db.WithTx(ctx, s.db, func(tx db.Tx) error {
		p, err := s.pricing.SetPrice(ctx, tx, string(m), price)
		if err != nil {
			return err
		}
		updated = p
		return s.enqueueEvent(ctx, tx, repository.DeliveryEventPayload{
			Event:    repository.EventPriceChanged,
			MilkType: string(m),
			Price:    &updated.Price,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s price: %w", m, err)
	}
	return &Price{
		MilkType:      updated.MilkType,
		Price:         updated.Price,
		PreviousPrice: updated.PreviousPrice,
		UpdatedAt:     updated.UpdatedAt,
	}, nil
}

func (s *Storage) priceTable(ctx context.Context) (schedule.PriceTable, error) {
	rows, err := s.pricing.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	table := make(schedule.PriceTable, len(rows))
	for _, row := range rows {
		if m, err := schedule.ParseMilkType(row.MilkType); err == nil {
			table[m] = row.Price
		}
	}
	return table, nil
}

// CheckoutQuote prices a cart of itemTotal. An empty optionID picks the default option.
func (s *Storage) CheckoutQuote(ctx context.Context, userID string, itemTotal decimal.Decimal, optionID string) (*CheckoutQuote, error) {
	if itemTotal.IsNegative() {
		return nil, fmt.Errorf("%w: item total must not be negative", ErrInvalidAmount)
	}
	stored, err := s.storedSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	options := schedule.CheckoutOptions(stored.Active(), s.now(), s.fees)
	var (
		option schedule.DeliveryOption
		ok     bool
	)
	if optionID == "" {
		option, ok = schedule.DefaultOption(options)
	} else {
		option, ok = schedule.FindOption(options, optionID)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, optionID)
	}

	metrics.CheckoutQuotesTotal.WithLabelValues(string(option.Kind)).Inc()
	return &CheckoutQuote{
		Options: options,
		Bill:    schedule.Quote(itemTotal, option, s.fees),
	}, nil
}

func (s *Storage) ListInventory(ctx context.Context) ([]InventoryEntry, error) {
	rows, err := s.inventory.ListRecent(ctx, s.db, inventoryHistory)
	if err != nil {
		return nil, err
	}
	out := make([]InventoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, InventoryEntry{
			ID:           row.ID,
			Date:         row.Date.Format(dateLayout),
			BuffaloStock: row.BuffaloStock,
			CowStock:     row.CowStock,
			BuffaloSold:  row.BuffaloSold,
			CowSold:      row.CowSold,
			Wastage:      row.Wastage,
		})
	}
	return out, nil
}

// AddInventory adds stock to the entry's day. An empty date means today.
func (s *Storage) AddInventory(ctx context.Context, entry InventoryEntry) error {
	row, err := s.inventoryRow(entry)
	if err != nil {
		return err
	}
	return s.inventory.AddStock(ctx, s.db, row)
}

func (s *Storage) UpdateInventory(ctx context.Context, id int64, entry InventoryEntry) error {
	row, err := s.inventoryRow(entry)
	if err != nil {
		return err
	}
	row.ID = id
	if err := s.inventory.Update(ctx, s.db, row); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return ErrInventoryNotFound
		}
		return err
	}
	return nil
}

func (s *Storage) inventoryRow(entry InventoryEntry) (*repository.Inventory, error) {
	date := s.today()
	if entry.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, entry.Date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidAmount, entry.Date)
		}
		date = parsed
	}
	for _, v := range []decimal.Decimal{entry.BuffaloStock, entry.CowStock, entry.BuffaloSold, entry.CowSold, entry.Wastage} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: quantities must not be negative", ErrInvalidAmount)
		}
	}
	return &repository.Inventory{
		Date:         date,
		BuffaloStock: entry.BuffaloStock,
		CowStock:     entry.CowStock,
		BuffaloSold:  entry.BuffaloSold,
		CowSold:      entry.CowSold,
		Wastage:      entry.Wastage,
	}, nil
}

// Analytics summarises subscriptions, daily demand and today's deliveries.
// Demand is the litres per day ordered by active subscriptions.
func (s *Storage) Analytics(ctx context.Context) (*Analytics, error) {
	counts, err := s.subscriptions.CountByStatus(ctx, s.db)
	if err != nil {
		return nil, err
	}
	subs, err := s.subscriptions.ListByStatus(ctx, s.db, repository.SubscriptionActive)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListBySubscriptions(ctx, s.db, subscriptionIDs(subs))
	if err != nil {
		return nil, err
	}
	prices, err := s.priceTable(ctx)
	if err != nil {
		return nil, err
	}
	today, err := s.deliveries.CountByDate(ctx, s.db, s.today())
	if err != nil {
		return nil, err
	}

	demand := map[schedule.MilkType]decimal.Decimal{}
	for _, row := range slots {
		slot := slotConfigFromRow(row)
		demand[slot.MilkType] = demand[slot.MilkType].Add(schedule.DailyLitres(slot))
	}

	buffaloPrice, _ := prices.PriceOf(schedule.Buffalo)
	cowPrice, _ := prices.PriceOf(schedule.Cow)
	daily := demand[schedule.Buffalo].Mul(buffaloPrice).Add(demand[schedule.Cow].Mul(cowPrice))

	return &Analytics{
		ActiveSubscriptions: counts.Active,
		PausedSubscriptions: counts.Paused,
		TotalSubscriptions:  counts.Active + counts.Paused,
		BuffaloDemand:       demand[schedule.Buffalo],
		CowDemand:           demand[schedule.Cow],
		TotalDemand:         demand[schedule.Buffalo].Add(demand[schedule.Cow]),
		BuffaloPrice:        buffaloPrice,
		CowPrice:            cowPrice,
		DailyRevenue:        daily,
		MonthlyRevenue:      daily.Mul(decimal.NewFromInt(daysPerMonth)),
		DeliveredToday:      today.Delivered,
		PendingToday:        today.Pending,
	}, nil
}
