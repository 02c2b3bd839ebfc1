package postgresql_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository/postgresql"
)

func TestPricingRepo_SetPriceUnknownMilk(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := mock_database.NewMockQuerier(ctrl)

	price := decimal.NewFromInt(80)
	q.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), price, "goat").Return(pgx.ErrNoRows)

	p, err := postgresql.NewPricingRepo().SetPrice(context.Background(), q, "goat", price)
	assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	assert.Nil(t, p)
}
