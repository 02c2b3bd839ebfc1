package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository/postgresql"
)

func TestSubscriptionRepo_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := &repository.Subscription{
		UserID:       "user-1",
		CustomerName: "Asha",
		Address:      "12 Lake Road",
		AddressID:    3,
		Status:       repository.SubscriptionActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := mock_database.NewMockQuerier(ctrl)

		q.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			sub.UserID, sub.CustomerName, sub.Address, sub.AddressID, sub.Status, sub.AutoPay, sub.CreatedAt, sub.UpdatedAt,
		).DoAndReturn(func(_ context.Context, dest any, _ string, _ ...any) error {
			*dest.(*int64) = 42
			return nil
		})

		id, err := postgresql.NewSubscriptionRepo().Create(ctx, q, sub)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("db error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := mock_database.NewMockQuerier(ctrl)

		q.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
		).Return(errors.New("connection refused"))

		_, err := postgresql.NewSubscriptionRepo().Create(ctx, q, sub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert subscription")
	})
}

func TestSubscriptionRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "found"},
		{name: "not found", dbErr: pgx.ErrNoRows, wantErr: repository.ErrObjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := mock_database.NewMockQuerier(ctrl)

			q.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), int64(5)).DoAndReturn(
				func(_ context.Context, dest any, _ string, _ ...any) error {
					if tt.dbErr != nil {
						return tt.dbErr
					}
					*dest.(*repository.Subscription) = repository.Subscription{ID: 5, UserID: "user-1"}
					return nil
				})

			sub, err := postgresql.NewSubscriptionRepo().GetByID(ctx, q, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sub)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", sub.UserID)
		})
	}
}

func TestSubscriptionRepo_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		tag     pgconn.CommandTag
		dbErr   error
		wantErr error
	}{
		{name: "updated", tag: pgconn.CommandTag("UPDATE 1")},
		{name: "missing row", tag: pgconn.CommandTag("UPDATE 0"), wantErr: repository.ErrObjectNotFound},
		{name: "db error", dbErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := mock_database.NewMockQuerier(ctrl)

			q.EXPECT().Exec(gomock.Any(), gomock.Any(), repository.SubscriptionPaused, int64(9)).Return(tt.tag, tt.dbErr)

			err := postgresql.NewSubscriptionRepo().UpdateStatus(ctx, q, 9, repository.SubscriptionPaused)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.dbErr != nil:
				assert.ErrorIs(t, err, tt.dbErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubscriptionRepo_CancelByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock_database.NewMockQuerier(ctrl)

	q.EXPECT().Exec(gomock.Any(), gomock.Any(), repository.SubscriptionCancelled, "user-1").
		Return(pgconn.CommandTag("UPDATE 2"), nil)

	n, err := postgresql.NewSubscriptionRepo().CancelByUser(context.Background(), q, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
