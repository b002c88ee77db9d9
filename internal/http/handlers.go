package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"expensetracker/internal/categories"
	"expensetracker/internal/core"
	"expensetracker/internal/log"
	"expensetracker/internal/store"
)

type importResponse struct {
	Received int `json:"received"`
	Added    int `json:"added"`
	Skipped  int `json:"skipped"`
}

type categoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// handleListTransactions returns the collection newest first, optionally
// restricted to ?category=.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	category := sanitizeInput(r.URL.Query().Get("category"))
	txs := core.SortByDateDesc(s.store.FilterByCategory(category))
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tx, ok := s.store.Get(id)
	if !ok {
		writeErr(w, r, log.OpLoad, fmt.Errorf("%w: %s", store.ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeErr(w, r, log.OpCreate, err)
		return
	}
	draft, err := req.Draft()
	if err != nil {
		writeErr(w, r, log.OpCreate, err)
		return
	}

	tx, err := s.store.Add(r.Context(), draft)
	if err != nil {
		writeErr(w, r, log.OpCreate, err)
		return
	}
	w.Header().Set("Location", "/api/transactions/"+url.PathEscape(tx.ID))
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req transactionRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeErr(w, r, log.OpUpdate, err)
		return
	}
	draft, err := req.Draft()
	if err != nil {
		writeErr(w, r, log.OpUpdate, err)
		return
	}

	tx, err := s.store.Update(r.Context(), core.Transaction{ID: id}.WithDraft(draft))
	if err != nil {
		writeErr(w, r, log.OpUpdate, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Delete(r.Context(), id) {
		writeErr(w, r, log.OpDelete, fmt.Errorf("%w: %s", store.ErrNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.Current().Summary)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.Current().Breakdown)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.Current())
}

// handleCategories lists both category sets, or one with ?type=.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ, err := core.ParseTransactionType(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, categories.For(typ))
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Income:  categories.Income(),
		Expense: categories.Expense(),
	})
}

// handleExport streams the collection as a downloadable export file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	txs := s.store.All()
	if err := s.transfer.Export(&buf, txs); err != nil {
		writeErr(w, r, log.OpExport, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.transfer.Filename()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)

	log.FromContext(r.Context()).InfoContext(r.Context(), "Export served", log.FieldCount, len(txs))
}

// handleImport accepts an export file as the raw body or as the "file" part
// of a multipart form, and merges it into the store.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, err = readUpload(w, r)
	} else {
		data, err = readBody(w, r, maxImportBytes)
	}
	if err != nil {
		writeErr(w, r, log.OpImport, err)
		return
	}

	txs, err := s.transfer.Import(r.Context(), bytes.NewReader(data))
	if err != nil {
		writeErr(w, r, log.OpImport, err)
		return
	}
	added := s.store.Merge(r.Context(), txs)
	writeJSON(w, http.StatusOK, importResponse{
		Received: len(txs),
		Added:    added,
		Skipped:  len(txs) - added,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.snapshot())
}
