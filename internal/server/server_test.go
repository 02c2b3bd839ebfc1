package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
	mock_server "gitlab.ozon.dev/pupkingeorgij/milkrun/internal/server/mocks"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

var testNow = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	storage     *mock_server.MockStorage
	users       *mock_server.MockUserRepo
	routeSheets *mock_server.MockRouteSheets
}

func newTestServer(t *testing.T) testServer {
	ctrl := gomock.NewController(t)
	ts := testServer{
		storage:     mock_server.NewMockStorage(ctrl),
		users:       mock_server.NewMockUserRepo(ctrl),
		routeSheets: mock_server.NewMockRouteSheets(ctrl),
	}
	ts.Server = New(ts.storage, ts.users, ts.routeSheets, nil)
	ts.timeNow = func() time.Time { return testNow }
	ts.storage.EXPECT().Location().Return(time.UTC).AnyTimes()

	ts.AuditManager.Start(context.Background())
	t.Cleanup(func() { ts.AuditManager.Shutdown(context.Background()) })
	return ts
}

func TestHandleGetSubscription(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		userID         string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "found",
			userID: "u1",
			setupMocks: func() {
				ts.storage.EXPECT().GetSubscription(gomock.Any(), "u1").Return(&storage.SubscriptionDoc{
					ID: 7, UserID: "u1", Address: "12 MG Road", Status: "Active",
					Morning: storage.SlotDoc{Enabled: true, Type: "cow", Quantity: decimal.NewFromInt(1), Time: "6:00 AM - 7:00 AM", Frequency: "daily", Days: []string{}},
					Evening: storage.SlotDoc{Type: "cow", Quantity: decimal.NewFromInt(1), Time: "5:00 PM - 6:00 PM", Frequency: "daily", Days: []string{}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"id":7,"userId":"u1","address":"12 MG Road","addressId":0,"customerName":"","autoPay":false,
				"startDate":"0001-01-01T00:00:00Z","status":"Active",
				"morning":{"enabled":true,"type":"cow","quantity":1,"time":"6:00 AM - 7:00 AM","frequency":"daily","days":[]},
				"evening":{"enabled":false,"type":"cow","quantity":1,"time":"5:00 PM - 6:00 PM","frequency":"daily","days":[]}}`,
		},
		{
			name:   "no subscription",
			userID: "u2",
			setupMocks: func() {
				ts.storage.EXPECT().GetSubscription(gomock.Any(), "u2").Return(nil, storage.ErrSubscriptionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"subscription not found"}`,
		},
		{
			name:   "storage failure is hidden",
			userID: "u3",
			setupMocks: func() {
				ts.storage.EXPECT().GetSubscription(gomock.Any(), "u3").Return(nil, errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodGet, "/api/users/"+tc.userID+"/subscription", nil)
			req = mux.SetURLVars(req, map[string]string{"userID": tc.userID})
			rr := httptest.NewRecorder()

			ts.handleGetSubscription(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleCreateSubscription(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "created",
			body: `{"morning":{"enabled":true,"type":"buffalo","quantity":"1.5","time":"6:00 AM - 7:00 AM","frequency":"daily","days":[]},
				"evening":{"enabled":false},"address":"12 MG Road","customerName":"Asha"}`,
			setupMocks: func() {
				ts.storage.EXPECT().CreateSubscription(gomock.Any(), "u1", gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, doc storage.SubscriptionDoc) (*storage.SubscriptionDoc, error) {
						assert.True(t, doc.Morning.Enabled)
						assert.Equal(t, "buffalo", doc.Morning.Type)
						assert.True(t, doc.Morning.Quantity.Equal(decimal.RequireFromString("1.5")))
						assert.Equal(t, "12 MG Road", doc.Address)
						doc.ID = 9
						doc.UserID = "u1"
						doc.Status = "Active"
						return &doc, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"morning":`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "rejected plan",
			body: `{"morning":{"enabled":false},"evening":{"enabled":false},"address":"12 MG Road"}`,
			setupMocks: func() {
				ts.storage.EXPECT().CreateSubscription(gomock.Any(), "u1", gomock.Any()).
					Return(nil, fmt.Errorf("%w: %w", storage.ErrInvalidSubscription, errors.New("at least one slot must be enabled")))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid subscription: at least one slot must be enabled"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/api/users/u1/subscription", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			req = mux.SetURLVars(req, map[string]string{"userID": "u1"})
			rr := httptest.NewRecorder()

			ts.handleCreateSubscription(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandleSkipDelivery(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "skipped",
			body: `{"key":"2024-03-06-morning"}`,
			setupMocks: func() {
				ts.storage.EXPECT().SkipDelivery(gomock.Any(), "u1", "2024-03-06-morning").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Delivery skipped","key":"2024-03-06-morning"}`,
		},
		{
			name:           "missing key",
			body:           `{}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Missing delivery key"}`,
		},
		{
			name: "past the cutoff",
			body: `{"key":"2024-03-05-evening"}`,
			setupMocks: func() {
				ts.storage.EXPECT().SkipDelivery(gomock.Any(), "u1", "2024-03-05-evening").Return(storage.ErrDeliveryLocked)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"delivery can no longer be changed"}`,
		},
		{
			name: "bad key",
			body: `{"key":"tomorrow"}`,
			setupMocks: func() {
				ts.storage.EXPECT().SkipDelivery(gomock.Any(), "u1", "tomorrow").
					Return(fmt.Errorf("%w: %q", storage.ErrInvalidSkipKey, "tomorrow"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid delivery key: \"tomorrow\""}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPost, "/api/users/u1/deliveries/skip", strings.NewReader(tc.body))
			req = mux.SetURLVars(req, map[string]string{"userID": "u1"})
			rr := httptest.NewRecorder()

			ts.handleSkipDelivery(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func TestHandleUpcoming(t *testing.T) {
	ts := newTestServer(t)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		query          string
		setupMocks     func()
		expectedStatus int
	}{
		{
			name:  "defaults left to the resolver",
			query: "",
			setupMocks: func() {
				ts.storage.EXPECT().Upcoming(gomock.Any(), "u1", schedule.UpcomingOptions{}).
					Return([]schedule.DeliveryOption{{ID: "milk_morning_1", Kind: schedule.SubscriptionBundled, Date: &day, Slot: schedule.Morning}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "explicit window",
			query: "?start=2&days=5&limit=4",
			setupMocks: func() {
				ts.storage.EXPECT().Upcoming(gomock.Any(), "u1", schedule.UpcomingOptions{StartOffsetDays: schedule.StartOffset(2), MaxDays: 5, MaxResults: 4}).
					Return([]schedule.DeliveryOption{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "same-day window",
			query: "?start=0&days=1",
			setupMocks: func() {
				ts.storage.EXPECT().Upcoming(gomock.Any(), "u1", schedule.UpcomingOptions{StartOffsetDays: schedule.StartOffset(0), MaxDays: 1}).
					Return([]schedule.DeliveryOption{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad limit",
			query:          "?limit=-1",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit beyond the cap",
			query:          "?limit=1125899906842624",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "days beyond the cap",
			query:          "?days=32",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative start",
			query:          "?start=-1",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodGet, "/api/users/u1/subscription/upcoming"+tc.query, nil)
			req = mux.SetURLVars(req, map[string]string{"userID": "u1"})
			rr := httptest.NewRecorder()

			ts.handleUpcoming(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleCheckoutQuote(t *testing.T) {
	ts := newTestServer(t)

	ts.storage.EXPECT().CheckoutQuote(gomock.Any(), "u1", gomock.Any(), "milk_morning_1").DoAndReturn(
		func(_ context.Context, _ string, itemTotal decimal.Decimal, _ string) (*storage.CheckoutQuote, error) {
			assert.True(t, itemTotal.Equal(decimal.RequireFromString("120.5")))
			return &storage.CheckoutQuote{
				Options: []schedule.DeliveryOption{},
				Bill:    schedule.Bill{ItemTotal: itemTotal, GrandTotal: itemTotal},
			}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/users/u1/checkout/quote",
		strings.NewReader(`{"item_total":120.5,"option_id":"milk_morning_1"}`))
	req = mux.SetURLVars(req, map[string]string{"userID": "u1"})
	rr := httptest.NewRecorder()

	ts.handleCheckoutQuote(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"grand_total":120.5`)
}

func TestHandleListDeliveries(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		query          string
		date           time.Time
		expectedStatus int
	}{
		{name: "explicit date", query: "?date=2024-03-05", date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), expectedStatus: http.StatusOK},
		{name: "defaults to today", query: "", date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), expectedStatus: http.StatusOK},
		{name: "bad date", query: "?date=05-03-2024", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.expectedStatus == http.StatusOK {
				ts.storage.EXPECT().ListDeliveries(gomock.Any(), tc.date).Return([]storage.Delivery{}, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/admin/deliveries"+tc.query, nil)
			rr := httptest.NewRecorder()

			ts.handleListDeliveries(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleUpdateDelivery(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		id             string
		body           string
		setupMocks     func()
		expectedStatus int
	}{
		{
			name: "courier defaults to the operator",
			id:   "42",
			body: `{"status":"Delivered"}`,
			setupMocks: func() {
				ts.storage.EXPECT().UpdateDeliveryStatus(gomock.Any(), int64(42), "Delivered", "admin").
					Return(&storage.Delivery{ID: 42, Status: "Delivered"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "explicit courier",
			id:   "42",
			body: `{"status":"Delivered","delivered_by":"Ramesh"}`,
			setupMocks: func() {
				ts.storage.EXPECT().UpdateDeliveryStatus(gomock.Any(), int64(42), "Delivered", "Ramesh").
					Return(&storage.Delivery{ID: 42, Status: "Delivered"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown delivery",
			id:   "7",
			body: `{"status":"Skipped"}`,
			setupMocks: func() {
				ts.storage.EXPECT().UpdateDeliveryStatus(gomock.Any(), int64(7), "Skipped", "admin").
					Return(nil, storage.ErrDeliveryNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "bad id",
			id:             "abc",
			body:           `{"status":"Skipped"}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPut, "/api/admin/deliveries/"+tc.id, strings.NewReader(tc.body))
			req.SetBasicAuth("admin", "secret")
			req = mux.SetURLVars(req, map[string]string{"id": tc.id})
			rr := httptest.NewRecorder()

			ts.handleUpdateDelivery(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleGenerateDeliveries(t *testing.T) {
	ts := newTestServer(t)

	ts.storage.EXPECT().GenerateDeliveries(gomock.Any(), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), schedule.LookaheadDays).Return(14, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/deliveries/generate", nil)
	rr := httptest.NewRecorder()

	ts.handleGenerateDeliveries(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"created":14,"from":"2024-03-05","days":7}`, rr.Body.String())
}

func TestHandleExportRouteSheet(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("uploads when storage is configured", func(t *testing.T) {
		ts := newTestServer(t)
		ts.routeSheets.EXPECT().Enabled().Return(true)
		ts.routeSheets.EXPECT().Upload(gomock.Any(), day).Return("routes/2024-03-05.csv", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/deliveries/export?date=2024-03-05", nil)
		rr := httptest.NewRecorder()

		ts.handleExportRouteSheet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"message":"Route sheet uploaded","key":"routes/2024-03-05.csv"}`, rr.Body.String())
	})

	t.Run("returns the csv otherwise", func(t *testing.T) {
		ts := newTestServer(t)
		ts.routeSheets.EXPECT().Enabled().Return(false)
		ts.routeSheets.EXPECT().Render(gomock.Any(), day, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ time.Time, w io.Writer) (int, error) {
				_, err := io.WriteString(w, "delivery_id,date\n1,2024-03-05\n")
				return 1, err
			})

		req := httptest.NewRequest(http.MethodPost, "/api/admin/deliveries/export?date=2024-03-05", nil)
		rr := httptest.NewRecorder()

		ts.handleExportRouteSheet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
		assert.Equal(t, "delivery_id,date\n1,2024-03-05\n", rr.Body.String())
	})
}

func TestHandleUpdatePrice(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
	}{
		{
			name: "updated",
			body: `{"milk_type":"cow","price":62}`,
			setupMocks: func() {
				ts.storage.EXPECT().UpdatePrice(gomock.Any(), "cow", gomock.Any()).
					Return(&storage.Price{MilkType: "cow", Price: decimal.NewFromInt(62), PreviousPrice: decimal.NewFromInt(60)}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown milk",
			body: `{"milk_type":"goat","price":80}`,
			setupMocks: func() {
				ts.storage.EXPECT().UpdatePrice(gomock.Any(), "goat", gomock.Any()).
					Return(nil, fmt.Errorf("%w: unknown milk type", storage.ErrInvalidAmount))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing milk type",
			body:           `{"price":80}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			req := httptest.NewRequest(http.MethodPut, "/api/admin/pricing", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			ts.handleUpdatePrice(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestRouter_AdminAuth(t *testing.T) {
	tests := []struct {
		name           string
		setAuth        func(r *http.Request)
		setupMocks     func(ts testServer)
		expectedStatus int
	}{
		{
			name:           "no credentials",
			setAuth:        func(*http.Request) {},
			setupMocks:     func(testServer) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "wrong password",
			setAuth: func(r *http.Request) { r.SetBasicAuth("admin", "nope") },
			setupMocks: func(ts testServer) {
				ts.users.EXPECT().ValidateUser(gomock.Any(), "admin", "nope").Return(false, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "user lookup fails",
			setAuth: func(r *http.Request) { r.SetBasicAuth("admin", "secret") },
			setupMocks: func(ts testServer) {
				ts.users.EXPECT().ValidateUser(gomock.Any(), "admin", "secret").Return(false, errors.New("db down"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "valid credentials",
			setAuth: func(r *http.Request) { r.SetBasicAuth("admin", "secret") },
			setupMocks: func(ts testServer) {
				ts.users.EXPECT().ValidateUser(gomock.Any(), "admin", "secret").Return(true, nil)
				ts.storage.EXPECT().Analytics(gomock.Any()).Return(&storage.Analytics{ActiveSubscriptions: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setupMocks(ts)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
			tc.setAuth(req)
			rr := httptest.NewRecorder()

			ts.Router().ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestRouter_CustomerRoutesAreOpen(t *testing.T) {
	ts := newTestServer(t)
	ts.storage.EXPECT().NextDelivery(gomock.Any(), "u1").Return(schedule.NextDelivery{
		Label: schedule.LabelPaused, Detail: schedule.DetailPaused,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/u1/subscription/next", nil)
	rr := httptest.NewRecorder()

	ts.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"label":"Paused"`)
	assert.NotContains(t, rr.Body.String(), `"date"`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", bytes.NewReader(nil))
	rr := httptest.NewRecorder()

	ts.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
