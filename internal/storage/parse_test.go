package storage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
)

func TestParseSubscription(t *testing.T) {
	tests := []struct {
		name    string
		doc     SubscriptionDoc
		wantErr error
	}{
		{
			name: "daily morning",
			doc:  activeDoc(dailySlot("buffalo", "1.5"), offSlot()),
		},
		{
			name: "custom evening with full day names",
			doc:  activeDoc(offSlot(), customSlot("cow", "0.5", "monday", "Thu")),
		},
		{
			name:    "nothing enabled",
			doc:     activeDoc(offSlot(), offSlot()),
			wantErr: schedule.ErrNoSlotEnabled,
		},
		{
			name:    "custom without days",
			doc:     activeDoc(customSlot("cow", "1"), offSlot()),
			wantErr: schedule.ErrNoDays,
		},
		{
			name:    "quantity off the ladder",
			doc:     activeDoc(dailySlot("cow", "0.6"), offSlot()),
			wantErr: schedule.ErrBadQuantity,
		},
		{
			name:    "unknown weekday on an enabled slot",
			doc:     activeDoc(customSlot("cow", "1", "Mon", "Funday"), offSlot()),
			wantErr: ErrInvalidSubscription,
		},
		{
			name:    "unknown milk type",
			doc:     activeDoc(dailySlot("goat", "1"), offSlot()),
			wantErr: ErrInvalidSubscription,
		},
		{
			name: "garbage on a disabled slot is ignored",
			doc: activeDoc(dailySlot("cow", "1"), SlotDoc{
				Type:      "goat",
				Frequency: "weekly",
				Days:      []string{"Funday"},
			}),
		},
		{
			name: "missing address",
			doc: func() SubscriptionDoc {
				d := activeDoc(dailySlot("cow", "1"), offSlot())
				d.Address, d.AddressID = "", 0
				return d
			}(),
			wantErr: errNoAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := ParseSubscription(tt.doc)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidSubscription)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Active", sub.Status)
		})
	}

	t.Run("custom days become a weekday set", func(t *testing.T) {
		sub, err := ParseSubscription(activeDoc(offSlot(), customSlot("cow", "0.5", "monday", "Thu")))
		require.NoError(t, err)

		assert.True(t, sub.Evening.Enabled)
		assert.Equal(t, schedule.CustomDays, sub.Evening.Frequency)
		assert.Equal(t, schedule.NewWeekdaySet(schedule.Monday, schedule.Thursday), sub.Evening.Days)
		assert.Equal(t, schedule.DefaultEveningWindow, sub.Evening.TimeWindow)
	})
}

func TestDecodeStoredSubscription(t *testing.T) {
	t.Run("unreadable document is no subscription", func(t *testing.T) {
		assert.Nil(t, DecodeStoredSubscription([]byte("{not json")))
		assert.Nil(t, DecodeStoredSubscription(nil))

		var stored *StoredSubscription
		assert.Nil(t, stored.Active())
	})

	t.Run("unknown weekday is dropped", func(t *testing.T) {
		stored := DecodeStoredSubscription([]byte(`{
			"id": 7, "status": "Active",
			"morning": {"enabled": true, "type": "cow", "quantity": 1, "frequency": "alternate", "days": ["Mon", "Blursday", "Wed"]},
			"evening": {"enabled": false}
		}`))
		require.NotNil(t, stored)

		plan := stored.Active()
		require.NotNil(t, plan)
		assert.True(t, plan.Morning.Enabled)
		assert.Equal(t, schedule.NewWeekdaySet(schedule.Monday, schedule.Wednesday), plan.Morning.Days)
		assert.Equal(t, int64(7), stored.ID)
	})

	t.Run("bad quantity or milk type disables the slot", func(t *testing.T) {
		stored := DecodeStoredSubscription([]byte(`{
			"status": "Active",
			"morning": {"enabled": true, "type": "cow", "quantity": "lots", "frequency": "daily"},
			"evening": {"enabled": true, "type": "camel", "quantity": 1, "frequency": "daily"}
		}`))
		require.NotNil(t, stored)

		plan := stored.Active()
		require.NotNil(t, plan)
		assert.False(t, plan.Morning.Enabled)
		assert.False(t, plan.Evening.Enabled)
	})

	t.Run("quoted and numeric quantities both read", func(t *testing.T) {
		stored := DecodeStoredSubscription([]byte(`{
			"status": "Active",
			"morning": {"enabled": true, "type": "cow", "quantity": "1.25", "frequency": "daily"},
			"evening": {"enabled": true, "type": "buffalo", "quantity": 0.75, "frequency": "daily"}
		}`))
		require.NotNil(t, stored)

		assert.True(t, stored.Plan.Morning.Quantity.Equal(decimal.RequireFromString("1.25")))
		assert.True(t, stored.Plan.Evening.Quantity.Equal(decimal.RequireFromString("0.75")))
		assert.True(t, stored.Plan.Morning.Enabled)
		assert.True(t, stored.Plan.Evening.Enabled)
	})

	t.Run("paused subscription does not deliver", func(t *testing.T) {
		stored := DecodeStoredSubscription([]byte(`{
			"status": "Paused",
			"morning": {"enabled": true, "type": "cow", "quantity": 1, "frequency": "daily"}
		}`))
		require.NotNil(t, stored)
		assert.Nil(t, stored.Active())
		assert.True(t, stored.Plan.Morning.Enabled)
	})
}
