package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeePolicy holds the cart charges applied at checkout.
type FeePolicy struct {
	FreeThreshold decimal.Decimal
	StandardFee   decimal.Decimal
	HandlingFee   decimal.Decimal
}

func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		FreeThreshold: decimal.NewFromInt(299),
		StandardFee:   decimal.NewFromInt(35),
		HandlingFee:   decimal.NewFromInt(5),
	}
}

const (
	StandardOptionID = "standard"

	expressOpenHour  = 6
	expressCloseHour = 22
)

// StandardOption is the non-bundled delivery choice. Express delivery runs
// between 06:00 and 22:00; outside those hours orders go out the next morning.
func StandardOption(now time.Time, policy FeePolicy) DeliveryOption {
	opt := DeliveryOption{
		ID:   StandardOptionID,
		Kind: StandardDelivery,
		Fee:  policy.StandardFee,
	}
	if h := now.Hour(); h >= expressOpenHour && h < expressCloseHour {
		opt.Label = "Immediate Delivery"
		opt.SubLabel = "In 15-20 minutes"
	} else {
		opt.Label = "Standard Delivery"
		opt.SubLabel = "Tomorrow, 6:00 AM - 8:00 AM"
	}
	return opt
}

// CheckoutOptions returns the standard option followed by the bundled milk runs.
func CheckoutOptions(sub *Subscription, now time.Time, policy FeePolicy) []DeliveryOption {
	bundled := FindUpcomingDeliveries(sub, now, DefaultUpcoming)
	options := make([]DeliveryOption, 0, len(bundled)+1)
	options = append(options, StandardOption(now, policy))
	return append(options, bundled...)
}

// DefaultOption prefers the first bundled option and falls back to the first option.
func DefaultOption(options []DeliveryOption) (DeliveryOption, bool) {
	for _, opt := range options {
		if opt.Kind == SubscriptionBundled {
			return opt, true
		}
	}
	if len(options) == 0 {
		return DeliveryOption{}, false
	}
	return options[0], true
}

// FindOption looks an option up by ID.
func FindOption(options []DeliveryOption, id string) (DeliveryOption, bool) {
	for _, opt := range options {
		if opt.ID == id {
			return opt, true
		}
	}
	return DeliveryOption{}, false
}

// Bill is the charge breakdown for a cart.
type Bill struct {
	ItemTotal       decimal.Decimal `json:"item_total"`
	HandlingFee     decimal.Decimal `json:"handling_fee"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Savings         decimal.Decimal `json:"savings"`
	ToFreeDelivery  decimal.Decimal `json:"to_free_delivery"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	Option          DeliveryOption  `json:"option"`
}

var hundred = decimal.NewFromInt(100)

// Quote computes the bill for itemTotal delivered through option.
func Quote(itemTotal decimal.Decimal, option DeliveryOption, policy FeePolicy) Bill {
	handling := decimal.Zero
	if itemTotal.IsPositive() {
		handling = policy.HandlingFee
	}
	fee := ResolveDeliveryFee(itemTotal, option, policy.FreeThreshold, policy.StandardFee)

	grand := itemTotal.Add(handling).Add(fee)
	if grand.IsNegative() {
		grand = decimal.Zero
	}
	toFree := policy.FreeThreshold.Sub(itemTotal)
	if toFree.IsNegative() {
		toFree = decimal.Zero
	}
	progress := hundred
	if policy.FreeThreshold.IsPositive() {
		progress = decimal.Min(hundred, itemTotal.Div(policy.FreeThreshold).Mul(hundred)).Round(2)
	}
	if progress.IsNegative() {
		progress = decimal.Zero
	}

	option.Fee = fee
	return Bill{
		ItemTotal:       itemTotal,
		HandlingFee:     handling,
		DeliveryFee:     fee,
		GrandTotal:      grand,
		Savings:         Savings(policy.StandardFee, fee),
		ToFreeDelivery:  toFree,
		ProgressPercent: progress,
		Option:          option,
	}
}
