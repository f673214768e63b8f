package server

import (
	"net/http"

	"github.com/pennyledger/backend/internal/model"
	"github.com/pennyledger/backend/internal/service"
)

// --- Transactions ---

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTransactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID(r)

	tx, err := s.svc.CreateTransaction(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	req := service.ListTransactionsRequest{
		CategoryID: r.URL.Query().Get("categoryId"),
		Type:       model.TransactionType(r.URL.Query().Get("type")),
		PageSize:   int32(queryInt(r, "pageSize", 100)),
		PageToken:  r.URL.Query().Get("pageToken"),
	}
	if t, ok := queryTime(r, "start"); ok {
		req.StartDate = &t
	}
	if t, ok := queryTime(r, "end"); ok {
		req.EndDate = &t
	}

	txs, nextToken, err := s.svc.ListTransactions(r.Context(), userID(r), req)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions":  txs,
		"nextPageToken": nextToken,
	})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.svc.GetTransaction(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTransactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := s.svc.UpdateTransaction(r.Context(), userID(r), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransaction(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Categories ---

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID(r)

	cat, err := s.svc.CreateCategory(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.ListCategories(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCategoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := s.svc.UpdateCategory(r.Context(), userID(r), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCategory(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// --- Budgets ---

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBudgetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID(r)

	budget, err := s.svc.CreateBudget(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, budget)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"
	budgets, err := s.svc.ListBudgets(r.Context(), userID(r), includeInactive)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"budgets": budgets})
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.svc.GetBudget(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateBudgetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	budget, err := s.svc.UpdateBudget(r.Context(), userID(r), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteBudget(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleBudgetProgress(w http.ResponseWriter, r *http.Request) {
	asOf, _ := queryTime(r, "asOf")
	progress, err := s.svc.GetBudgetProgress(r.Context(), userID(r), r.PathValue("id"), asOf)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// --- Recurring series ---

func (s *Server) handleCreateSeries(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSeriesRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = userID(r)

	view, err := s.svc.CreateSeries(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListSeries(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"
	views, err := s.svc.ListSeries(r.Context(), userID(r), activeOnly)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": views})
}

func (s *Server) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.GetSeries(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateSeries(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateSeriesRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := s.svc.UpdateSeries(r.Context(), userID(r), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteSeries(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteSeries(r.Context(), userID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handlePauseSeries(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.PauseSeries(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleResumeSeries(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.ResumeSeries(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	horizonDays := queryInt(r, "horizonDays", 30)
	upcoming, err := s.svc.PreviewOccurrences(r.Context(), userID(r), horizonDays)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"upcoming": upcoming})
}

// handleProcess runs the due-series pass. A request carrying the scheduler
// token processes every owner; otherwise the caller's own series run.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	allOwners := false
	if token := r.Header.Get("X-Scheduler-Token"); token != "" {
		if s.schedulerToken == "" || token != s.schedulerToken {
			writeError(w, http.StatusForbidden, "invalid scheduler token")
			return
		}
		allOwners = true
	}

	summary, err := s.svc.ProcessDueSeries(r.Context(), userID(r), allOwners)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// --- Reports ---

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	start, end := rangeOrDefault(r)
	aggs, err := s.svc.GetDailyAggregates(r.Context(), userID(r), start, end)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": aggs})
}

func (s *Server) handleTrendsReport(w http.ResponseWriter, r *http.Request) {
	granularity := r.URL.Query().Get("granularity")
	periods := queryInt(r, "periods", 12)
	points, err := s.svc.GetSpendingTrends(r.Context(), userID(r), granularity, periods)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	start, end := rangeOrDefault(r)
	breakdown, err := s.svc.GetCategoryBreakdown(r.Context(), userID(r), start, end)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	asOf, _ := queryTime(r, "asOf")
	summary, err := s.svc.GenerateMonthlySummary(r.Context(), userID(r), asOf)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// --- Import / export ---

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	start, end := rangeOrDefault(r)
	data, err := s.svc.ExportTransactionsCSV(r.Context(), userID(r), start, end)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	start, end := rangeOrDefault(r)
	data, err := s.svc.ExportTransactionsJSON(r.Context(), userID(r), start, end)
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	result, err := s.svc.ImportTransactionsCSV(r.Context(), userID(r), data)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImportStatement(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	currencyCode := r.URL.Query().Get("currency")
	result, err := s.svc.ImportStatementPDF(r.Context(), userID(r), data, currencyCode)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Settings ---

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.GetUserSettings(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BaseCurrencyCode string `json:"baseCurrencyCode"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	settings, err := s.svc.UpdateUserSettings(r.Context(), userID(r), req.BaseCurrencyCode)
	if err != nil {
		writeServiceError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
