package server

import (
	"bytes"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/schedule"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.storage.ListSubscriptions(r.Context())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

func (s *Server) handleSetSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.storage.SetSubscriptionStatus(r.Context(), id, req.Status); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Subscription status updated",
		"status":  req.Status,
	})
}

func (s *Server) handleListDeliveries(w http.ResponseWriter, r *http.Request) {
	date, ok := s.queryDate(r, "date", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	list, err := s.storage.ListDeliveries(r.Context(), date)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid delivery ID")
		return
	}

	var req struct {
		Status      string `json:"status"`
		DeliveredBy string `json:"delivered_by"`
	}
	if err := decodeBody(r, &req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.DeliveredBy == "" {
		req.DeliveredBy, _, _ = r.BasicAuth()
	}

	delivery, err := s.storage.UpdateDeliveryStatus(r.Context(), id, req.Status, req.DeliveredBy)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, delivery)
}

func (s *Server) handleGenerateDeliveries(w http.ResponseWriter, r *http.Request) {
	from, ok := s.queryDate(r, "from", 1)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}
	days, ok := queryInt(r, "days", schedule.LookaheadDays)
	if !ok || days > 31 {
		respondError(w, http.StatusBadRequest, "Invalid value for 'days' parameter")
		return
	}

	created, err := s.storage.GenerateDeliveries(r.Context(), from, days)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"from":    from.Format(dateLayout),
		"days":    days,
	})
}

// handleExportRouteSheet uploads the day's route sheet when object storage is
// configured and returns the CSV itself otherwise.
func (s *Server) handleExportRouteSheet(w http.ResponseWriter, r *http.Request) {
	date, ok := s.queryDate(r, "date", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	if s.routeSheets.Enabled() {
		key, err := s.routeSheets.Upload(r.Context(), date)
		if err != nil {
			s.respondStorageError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{
			"message": "Route sheet uploaded",
			"key":     key,
		})
		return
	}

	var buf bytes.Buffer
	if _, err := s.routeSheets.Render(r.Context(), date, &buf); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="route-`+date.Format(dateLayout)+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("failed to write route sheet", zap.Error(err))
	}
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.storage.ListInventory(r.Context())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddInventory(w http.ResponseWriter, r *http.Request) {
	var entry storage.InventoryEntry
	if err := decodeBody(r, &entry); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.storage.AddInventory(r.Context(), entry); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Inventory recorded",
	})
}

func (s *Server) handleUpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid inventory ID")
		return
	}

	var entry storage.InventoryEntry
	if err := decodeBody(r, &entry); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.storage.UpdateInventory(r.Context(), id, entry); err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Inventory updated",
	})
}

func (s *Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MilkType string          `json:"milk_type"`
		Price    decimal.Decimal `json:"price"`
	}
	if err := decodeBody(r, &req); err != nil || req.MilkType == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	price, err := s.storage.UpdatePrice(r.Context(), req.MilkType, req.Price)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, price)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.storage.Analytics(r.Context())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}
