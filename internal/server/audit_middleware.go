package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/metrics"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := s.timeNow()
		vars := mux.Vars(r)
		entry := AuditLogEntry{
			Timestamp: started.UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   routeName(r),
			UserID:    vars["userID"],
			ObjectID:  vars["id"],
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.Operator = username
		}

		skipRequestBody := strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data")
		if !skipRequestBody && r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.ObjectID != "" && r.Method == http.MethodPut {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					entry.NewStatus = statusRequest.Status
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())
		entry.DurationMs = s.timeNow().Sub(started).Milliseconds()

		metrics.HTTPRequestsTotal.WithLabelValues(entry.Handler, strconv.Itoa(entry.StatusCode)).Inc()
		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unknown"
}
