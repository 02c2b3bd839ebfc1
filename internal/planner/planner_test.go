package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_planner "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/planner/mocks"
)

func TestPlanner_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created int
		err     error
		want    int
	}{
		{name: "books the window from tomorrow", created: 12, want: 12},
		{name: "partial failure keeps the count", created: 3, err: errors.New("connection reset"), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gen := mock_planner.NewMockGenerator(ctrl)
			p := New(gen, Config{Interval: time.Minute, Days: 7})
			p.timeNow = func() time.Time { return now }

			gen.EXPECT().GenerateDeliveries(ctx, now.AddDate(0, 0, 1), 7).Return(tt.created, tt.err)

			assert.Equal(t, tt.want, p.RunOnce(ctx))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(nil, Config{})
	assert.Equal(t, time.Hour, p.config.Interval)
	assert.Equal(t, 7, p.config.Days)
}

func TestPlanner_RunPlansOnStartAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock_planner.NewMockGenerator(ctrl)
	p := New(gen, Config{Interval: time.Hour, Days: 3})

	called := make(chan struct{})
	gen.EXPECT().GenerateDeliveries(gomock.Any(), gomock.Any(), 3).DoAndReturn(
		func(context.Context, time.Time, int) (int, error) {
			close(called)
			return 0, nil
		}).Times(1)

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("planner did not run on start")
	}

	p.Shutdown()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("planner did not stop")
	}
}

func TestPlanner_RunAfterShutdownDoesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock_planner.NewMockGenerator(ctrl)
	p := New(gen, Config{Interval: time.Hour, Days: 3})

	gen.EXPECT().GenerateDeliveries(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	p.Shutdown()
	p.Shutdown()

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("planner kept running after shutdown")
	}
}
