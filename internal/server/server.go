// Package server exposes the finance service over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pennyledger/backend/internal/auth"
	"github.com/pennyledger/backend/internal/service"
	"github.com/pennyledger/backend/internal/store"
)

const maxBodyBytes = 10 << 20 // 10MB, statement PDFs included

// Server routes HTTP requests into the finance service.
type Server struct {
	svc            *service.FinanceService
	schedulerToken string
}

// NewServer creates a server. schedulerToken authorizes the all-owners
// recurring processing endpoint; empty disables it.
func NewServer(svc *service.FinanceService, schedulerToken string) *Server {
	return &Server{svc: svc, schedulerToken: schedulerToken}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ping", s.handleHealth)

	mux.HandleFunc("POST /v1/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /v1/transactions", s.handleListTransactions)
	mux.HandleFunc("GET /v1/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PATCH /v1/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /v1/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /v1/categories", s.handleCreateCategory)
	mux.HandleFunc("GET /v1/categories", s.handleListCategories)
	mux.HandleFunc("PATCH /v1/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /v1/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("POST /v1/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /v1/budgets", s.handleListBudgets)
	mux.HandleFunc("GET /v1/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("PATCH /v1/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /v1/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /v1/budgets/{id}/progress", s.handleBudgetProgress)

	mux.HandleFunc("POST /v1/recurring", s.handleCreateSeries)
	mux.HandleFunc("GET /v1/recurring", s.handleListSeries)
	mux.HandleFunc("GET /v1/recurring/upcoming", s.handleUpcoming)
	mux.HandleFunc("POST /v1/recurring/process", s.handleProcess)
	mux.HandleFunc("GET /v1/recurring/{id}", s.handleGetSeries)
	mux.HandleFunc("PATCH /v1/recurring/{id}", s.handleUpdateSeries)
	mux.HandleFunc("DELETE /v1/recurring/{id}", s.handleDeleteSeries)
	mux.HandleFunc("POST /v1/recurring/{id}/pause", s.handlePauseSeries)
	mux.HandleFunc("POST /v1/recurring/{id}/resume", s.handleResumeSeries)

	mux.HandleFunc("GET /v1/reports/daily", s.handleDailyReport)
	mux.HandleFunc("GET /v1/reports/trends", s.handleTrendsReport)
	mux.HandleFunc("GET /v1/reports/categories", s.handleCategoryReport)
	mux.HandleFunc("GET /v1/reports/summary", s.handleSummary)

	mux.HandleFunc("GET /v1/export/transactions.csv", s.handleExportCSV)
	mux.HandleFunc("GET /v1/export/transactions.json", s.handleExportJSON)
	mux.HandleFunc("POST /v1/import/csv", s.handleImportCSV)
	mux.HandleFunc("POST /v1/import/statement", s.handleImportStatement)

	mux.HandleFunc("GET /v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /v1/settings", s.handleUpdateSettings)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID pulls the authenticated user out of the request context. The auth
// middleware guarantees it for /v1 routes; a miss means a wiring bug.
func userID(r *http.Request) string {
	uid, _ := auth.GetUserID(r.Context())
	return uid
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors onto HTTP statuses. Unknown errors
// from writes are treated as bad requests since the service validates before
// touching the store; fallbackStatus overrides that for read paths.
func writeServiceError(w http.ResponseWriter, err error, fallbackStatus int) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrSummariesDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, fallbackStatus, err.Error())
	}
}

func readJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func queryTime(r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// rangeOrDefault reads start/end query params, defaulting to the last 30 days.
func rangeOrDefault(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	start, ok := queryTime(r, "start")
	if !ok {
		start = now.AddDate(0, 0, -30)
	}
	end, ok := queryTime(r, "end")
	if !ok {
		end = now
	}
	return start, end
}

func readBody(r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()
	return io.ReadAll(body)
}
