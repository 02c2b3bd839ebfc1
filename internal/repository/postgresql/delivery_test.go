package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository/postgresql"
)

func TestDeliveryRepo_CreateIfAbsent(t *testing.T) {
	d := &repository.Delivery{
		SubscriptionID: 1,
		SlotID:         2,
		UserID:         "user-1",
		DeliveryDate:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		SlotType:       "morning",
		Quantity:       decimal.RequireFromString("1.5"),
		MilkType:       "cow",
		Address:        "12 Lake Road",
		CustomerName:   "Asha",
		Status:         repository.DeliveryPending,
	}

	tests := []struct {
		name        string
		tag         pgconn.CommandTag
		dbErr       error
		wantCreated bool
		wantErr     bool
	}{
		{name: "inserted", tag: pgconn.CommandTag("INSERT 0 1"), wantCreated: true},
		{name: "already booked", tag: pgconn.CommandTag("INSERT 0 0")},
		{name: "db error", dbErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := mock_database.NewMockQuerier(ctrl)

			q.EXPECT().Exec(gomock.Any(), gomock.Any(),
				d.SubscriptionID, d.SlotID, d.UserID, d.DeliveryDate, d.SlotType, d.Quantity, d.MilkType,
				d.Address, d.CustomerName, d.Status,
			).Return(tt.tag, tt.dbErr)

			created, err := postgresql.NewDeliveryRepo().CreateIfAbsent(context.Background(), q, d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
		})
	}
}

func TestDeliveryRepo_ListByDate(t *testing.T) {
	date := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := mock_database.NewMockQuerier(ctrl)

		q.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), date).DoAndReturn(
			func(_ context.Context, dest any, _ string, _ ...any) error {
				*dest.(*[]*repository.Delivery) = []*repository.Delivery{{ID: 1}, {ID: 2}}
				return nil
			})

		list, err := postgresql.NewDeliveryRepo().ListByDate(context.Background(), q, date)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("db error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := mock_database.NewMockQuerier(ctrl)

		q.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), date).Return(errors.New("boom"))

		_, err := postgresql.NewDeliveryRepo().ListByDate(context.Background(), q, date)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2025-03-04")
	})
}
