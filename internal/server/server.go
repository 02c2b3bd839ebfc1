//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const dateLayout = "2006-01-02"

type Storage interface {
	Location() *time.Location

	CreateSubscription(ctx context.Context, userID string, doc storage.SubscriptionDoc) (*storage.SubscriptionDoc, error)
	UpdateSubscription(ctx context.Context, userID string, doc storage.SubscriptionDoc) (*storage.SubscriptionDoc, error)
	GetSubscription(ctx context.Context, userID string) (*storage.SubscriptionDoc, error)
	CancelSubscription(ctx context.Context, userID string) error
	NextDelivery(ctx context.Context, userID string) (schedule.NextDelivery, error)
	Upcoming(ctx context.Context, userID string, opts schedule.UpcomingOptions) ([]schedule.DeliveryOption, error)
	Schedule(ctx context.Context, userID string, days int) ([]schedule.PlannedDelivery, error)
	Cost(ctx context.Context, userID string) (*storage.WeeklyCost, error)
	SkipDelivery(ctx context.Context, userID, key string) error
	UnskipDelivery(ctx context.Context, userID, key string) error
	CheckoutQuote(ctx context.Context, userID string, itemTotal decimal.Decimal, optionID string) (*storage.CheckoutQuote, error)
	GetPricing(ctx context.Context) ([]storage.Price, error)

	ListSubscriptions(ctx context.Context) ([]storage.SubscriptionDoc, error)
	SetSubscriptionStatus(ctx context.Context, id int64, status string) error
	ListDeliveries(ctx context.Context, date time.Time) ([]storage.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, id int64, status, deliveredBy string) (*storage.Delivery, error)
	GenerateDeliveries(ctx context.Context, from time.Time, days int) (int, error)
	ListInventory(ctx context.Context) ([]storage.InventoryEntry, error)
	AddInventory(ctx context.Context, entry storage.InventoryEntry) error
	UpdateInventory(ctx context.Context, id int64, entry storage.InventoryEntry) error
	UpdatePrice(ctx context.Context, milkType string, price decimal.Decimal) (*storage.Price, error)
	Analytics(ctx context.Context) (*storage.Analytics, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

// RouteSheets renders and uploads the daily delivery list.
type RouteSheets interface {
	Enabled() bool
	Render(ctx context.Context, date time.Time, w io.Writer) (int, error)
	Upload(ctx context.Context, date time.Time) (string, error)
}

// AuditSink receives audit batches. The Kafka producer satisfies it.
type AuditSink interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
}

type Server struct {
	storage      Storage
	userRepo     UserRepo
	routeSheets  RouteSheets
	server       *http.Server
	logger       *zap.Logger
	timeNow      func() time.Time
	AuditManager *AuditManager
}

func New(storage Storage, userRepo UserRepo, routeSheets RouteSheets, audit *AuditManager) *Server {
	if audit == nil {
		audit = NewAuditManager(2, 5, 500*time.Millisecond, nil, "")
	}
	return &Server{
		storage:      storage,
		userRepo:     userRepo,
		routeSheets:  routeSheets,
		logger:       zap.L().Named("server"),
		timeNow:      time.Now,
		AuditManager: audit,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// stopped by Shutdown so that requests drained after ctx is done are still audited
	s.AuditManager.Start(context.Background())

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// in-flight requests and queued audit entries are drained before returning
	<-shutdownDone
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

// Router wires every route. Admin routes sit behind basic auth.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.auditLogMiddleware)

	api.HandleFunc("/pricing", s.handleGetPricing).Methods(http.MethodGet).Name("getPricing")

	users := api.PathPrefix("/users/{userID}").Subrouter()
	users.HandleFunc("/subscription", s.handleGetSubscription).Methods(http.MethodGet).Name("getSubscription")
	users.HandleFunc("/subscription", s.handleCreateSubscription).Methods(http.MethodPost).Name("createSubscription")
	users.HandleFunc("/subscription", s.handleUpdateSubscription).Methods(http.MethodPut).Name("updateSubscription")
	users.HandleFunc("/subscription", s.handleCancelSubscription).Methods(http.MethodDelete).Name("cancelSubscription")
	users.HandleFunc("/subscription/next", s.handleNextDelivery).Methods(http.MethodGet).Name("nextDelivery")
	users.HandleFunc("/subscription/upcoming", s.handleUpcoming).Methods(http.MethodGet).Name("upcomingDeliveries")
	users.HandleFunc("/subscription/schedule", s.handleSchedule).Methods(http.MethodGet).Name("schedule")
	users.HandleFunc("/subscription/cost", s.handleCost).Methods(http.MethodGet).Name("weeklyCost")
	users.HandleFunc("/deliveries/skip", s.handleSkipDelivery).Methods(http.MethodPost).Name("skipDelivery")
	users.HandleFunc("/deliveries/unskip", s.handleUnskipDelivery).Methods(http.MethodPost).Name("unskipDelivery")
	users.HandleFunc("/checkout/quote", s.handleCheckoutQuote).Methods(http.MethodPost).Name("checkoutQuote")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.basicAuthMiddleware)
	admin.HandleFunc("/subscriptions", s.handleListSubscriptions).Methods(http.MethodGet).Name("listSubscriptions")
	admin.HandleFunc("/subscriptions/{id:[0-9]+}/status", s.handleSetSubscriptionStatus).Methods(http.MethodPut).Name("setSubscriptionStatus")
	admin.HandleFunc("/deliveries", s.handleListDeliveries).Methods(http.MethodGet).Name("listDeliveries")
	admin.HandleFunc("/deliveries/generate", s.handleGenerateDeliveries).Methods(http.MethodPost).Name("generateDeliveries")
	admin.HandleFunc("/deliveries/export", s.handleExportRouteSheet).Methods(http.MethodPost).Name("exportRouteSheet")
	admin.HandleFunc("/deliveries/{id:[0-9]+}", s.handleUpdateDelivery).Methods(http.MethodPut).Name("updateDelivery")
	admin.HandleFunc("/inventory", s.handleListInventory).Methods(http.MethodGet).Name("listInventory")
	admin.HandleFunc("/inventory", s.handleAddInventory).Methods(http.MethodPost).Name("addInventory")
	admin.HandleFunc("/inventory/{id:[0-9]+}", s.handleUpdateInventory).Methods(http.MethodPut).Name("updateInventory")
	admin.HandleFunc("/pricing", s.handleUpdatePrice).Methods(http.MethodPut).Name("updatePrice")
	admin.HandleFunc("/analytics", s.handleAnalytics).Methods(http.MethodGet).Name("analytics")

	return r
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		valid, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil {
			s.logger.Error("failed to validate user", zap.String("username", username), zap.Error(err))
		}
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Error("failed to encode response", zap.Error(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStorageError maps service errors onto HTTP codes. Unknown errors are
// logged and hidden from the client.
func (s *Server) respondStorageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrSubscriptionNotFound),
		errors.Is(err, storage.ErrDeliveryNotFound),
		errors.Is(err, storage.ErrInventoryNotFound),
		errors.Is(err, repository.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidSubscription),
		errors.Is(err, storage.ErrInvalidSkipKey),
		errors.Is(err, storage.ErrInvalidStatus),
		errors.Is(err, storage.ErrUnknownOption),
		errors.Is(err, storage.ErrInvalidAmount),
		errors.Is(err, storage.ErrNotScheduled):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrDeliveryLocked):
		respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt reads an optional positive integer. A missing value yields def.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	return queryIntRange(r, name, def, 1, math.MaxInt)
}

// queryIntRange reads an optional integer within [lo, hi]. A missing value yields def.
func queryIntRange(r *http.Request, name string, def, lo, hi int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// queryDate reads an optional YYYY-MM-DD value in the service zone. A missing
// value yields today shifted by defOffset days.
func (s *Server) queryDate(r *http.Request, name string, defOffset int) (time.Time, bool) {
	loc := s.storage.Location()
	raw := r.URL.Query().Get(name)
	if raw == "" {
		now := s.timeNow().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day()+defOffset, 0, 0, 0, 0, loc), true
	}
	date, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
