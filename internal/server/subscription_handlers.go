package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	doc, err := s.storage.GetSubscription(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var doc storage.SubscriptionDoc
	if err := decodeBody(r, &doc); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.storage.CreateSubscription(r.Context(), mux.Vars(r)["userID"], doc)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var doc storage.SubscriptionDoc
	if err := decodeBody(r, &doc); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.storage.UpdateSubscription(r.Context(), mux.Vars(r)["userID"], doc)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.CancelSubscription(r.Context(), mux.Vars(r)["userID"]); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Subscription cancelled",
	})
}

func (s *Server) handleNextDelivery(w http.ResponseWriter, r *http.Request) {
	next, err := s.storage.NextDelivery(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, next)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	var opts schedule.UpcomingOptions
	var ok bool
	if r.URL.Query().Get("start") != "" {
		start, ok := queryIntRange(r, "start", 0, 0, schedule.MaxUpcomingDays)
		if !ok {
			respondError(w, http.StatusBadRequest, "Invalid value for 'start' parameter")
			return
		}
		opts.StartOffsetDays = &start
	}
	if opts.MaxDays, ok = queryIntRange(r, "days", 0, 1, schedule.MaxUpcomingDays); !ok {
		respondError(w, http.StatusBadRequest, "Invalid value for 'days' parameter")
		return
	}
	if opts.MaxResults, ok = queryIntRange(r, "limit", 0, 1, schedule.MaxUpcomingResults); !ok {
		respondError(w, http.StatusBadRequest, "Invalid value for 'limit' parameter")
		return
	}

	options, err := s.storage.Upcoming(r.Context(), mux.Vars(r)["userID"], opts)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, options)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	days, ok := queryIntRange(r, "days", schedule.DefaultPlanDays, 1, schedule.MaxUpcomingDays)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid value for 'days' parameter")
		return
	}

	plan, err := s.storage.Schedule(r.Context(), mux.Vars(r)["userID"], days)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCost(w http.ResponseWriter, r *http.Request) {
	cost, err := s.storage.Cost(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cost)
}

type skipRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleSkipDelivery(w http.ResponseWriter, r *http.Request) {
	var req skipRequest
	if err := decodeBody(r, &req); err != nil || req.Key == "" {
		respondError(w, http.StatusBadRequest, "Missing delivery key")
		return
	}

	if err := s.storage.SkipDelivery(r.Context(), mux.Vars(r)["userID"], req.Key); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Delivery skipped",
		"key":     req.Key,
	})
}

func (s *Server) handleUnskipDelivery(w http.ResponseWriter, r *http.Request) {
	var req skipRequest
	if err := decodeBody(r, &req); err != nil || req.Key == "" {
		respondError(w, http.StatusBadRequest, "Missing delivery key")
		return
	}

	if err := s.storage.UnskipDelivery(r.Context(), mux.Vars(r)["userID"], req.Key); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Delivery restored",
		"key":     req.Key,
	})
}

func (s *Server) handleCheckoutQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemTotal decimal.Decimal `json:"item_total"`
		OptionID  string          `json:"option_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quote, err := s.storage.CheckoutQuote(r.Context(), mux.Vars(r)["userID"], req.ItemTotal, req.OptionID)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (s *Server) handleGetPricing(w http.ResponseWriter, r *http.Request) {
	prices, err := s.storage.GetPricing(r.Context())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, prices)
}
