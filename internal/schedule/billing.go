package schedule

import "github.com/shopspring/decimal"

// PriceTable maps milk type to price per litre. It is supplied by the pricing source.
type PriceTable map[MilkType]decimal.Decimal

// DefaultPrices seeds the pricing table of a fresh installation.
func DefaultPrices() PriceTable {
	return PriceTable{
		Buffalo: decimal.NewFromInt(90),
		Cow:     decimal.NewFromInt(60),
	}
}

func (p PriceTable) PriceOf(m MilkType) (decimal.Decimal, bool) {
	price, ok := p[m]
	return price, ok
}

// Occurrences per week: 7 for daily, the size of the day set otherwise.
func weeklyOccurrences(slot SlotConfig) int {
	switch slot.Frequency {
	case Daily:
		return 7
	case CustomDays:
		return slot.Days.Len()
	default:
		return 0
	}
}

// WeeklyCost is quantity x price x weekly occurrences. Disabled slots,
// unknown milk types and off-ladder quantities cost nothing.
func WeeklyCost(slot SlotConfig, prices PriceTable) decimal.Decimal {
	if !slot.Enabled || !ValidQuantity(slot.Quantity) {
		return decimal.Zero
	}
	price, ok := prices.PriceOf(slot.MilkType)
	if !ok {
		return decimal.Zero
	}
	return slot.Quantity.Mul(price).Mul(decimal.NewFromInt(int64(weeklyOccurrences(slot))))
}

func TotalWeeklyCost(sub *Subscription, prices PriceTable) decimal.Decimal {
	if sub == nil {
		return decimal.Zero
	}
	return WeeklyCost(sub.Morning, prices).Add(WeeklyCost(sub.Evening, prices))
}

// DailyLitres is the volume a slot delivers on an average scheduled day, used for demand figures.
func DailyLitres(slot SlotConfig) decimal.Decimal {
	if !slot.Enabled || !ValidQuantity(slot.Quantity) {
		return decimal.Zero
	}
	return slot.Quantity
}

// ResolveDeliveryFee waives the fee for bundled options regardless of the subtotal.
// Standard delivery is free from freeThreshold upwards.
func ResolveDeliveryFee(subtotal decimal.Decimal, option DeliveryOption, freeThreshold, standardFee decimal.Decimal) decimal.Decimal {
	if option.Kind == SubscriptionBundled {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(freeThreshold) {
		return decimal.Zero
	}
	return standardFee
}

// Savings is what the customer did not pay compared to the standard fee. Never negative.
func Savings(standardFee, actualFee decimal.Decimal) decimal.Decimal {
	saved := standardFee.Sub(actualFee)
	if saved.IsNegative() {
		return decimal.Zero
	}
	return saved
}
