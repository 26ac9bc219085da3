package http

import (
	"net/http"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/log"
)

// transactionRequest is the write DTO. Amount is a decimal string
// ("42.50") parsed to cents server-side.
type transactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// sessionUser resolves the signed-in user, or writes 401 and returns
// false.
func (s *Server) sessionUser(w http.ResponseWriter, r *http.Request) (core.User, bool) {
	session := s.auth.Session(r.Context())
	if !session.IsAuthenticated || session.User == nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return core.User{}, false
	}
	return *session.User, true
}

// transactionFromRequest parses and validates the DTO into a domain
// transaction owned by userID.
func transactionFromRequest(id, userID string, req transactionRequest) (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.NewTransaction(
		id,
		core.TransactionType(sanitizeInput(req.Type)),
		core.Money{Cents: cents},
		sanitizeInput(req.Description),
		sanitizeInput(req.Category),
		date,
		userID,
	)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessionUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	filter := core.TypeFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = core.FilterAll
	}
	if !filter.Valid() {
		writeError(w, http.StatusBadRequest, "filter must be one of: all, income, expense")
		return
	}

	transactions := s.ledger.List(ctx, user.ID)
	transactions = core.FilterByType(transactions, filter)
	if r.URL.Query().Get("sort") != "none" {
		transactions = core.SortByDateDesc(transactions)
	}
	if transactions == nil {
		transactions = []core.Transaction{}
	}

	log.FromContext(ctx).DebugContext(ctx, "Transactions listed",
		log.FieldOperation, log.OpList,
		log.FieldUserID, user.ID,
		log.FieldFilter, string(filter))
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessionUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var req transactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	transaction, err := transactionFromRequest(uuid.NewString(), user.ID, req)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	if err := s.transactions.Create(ctx, transaction); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Create failed",
			log.FieldOperation, log.OpCreate,
			log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.summaryCache.Delete(user.ID)
	writeJSON(w, http.StatusCreated, transaction)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessionUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := r.PathValue("id")

	var req transactionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Ownership: the rewrite always carries the session user's id, so a
	// caller cannot move an entry to another user.
	transaction, err := transactionFromRequest(id, user.ID, req)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	if err := s.transactions.Update(ctx, transaction); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Update failed",
			log.FieldOperation, log.OpUpdate,
			log.FieldTransactionID, id,
			log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}

	s.summaryCache.Delete(user.ID)
	writeJSON(w, http.StatusOK, transaction)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessionUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	id := r.PathValue("id")

	if err := s.transactions.Delete(ctx, id); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Delete failed",
			log.FieldOperation, log.OpDelete,
			log.FieldTransactionID, id,
			log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.summaryCache.Delete(user.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessionUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if totals, ok := s.summaryCache.Get(user.ID); ok {
		writeJSON(w, http.StatusOK, totals)
		return
	}

	totals := core.ComputeTotals(s.ledger.List(ctx, user.ID))
	s.summaryCache.Set(user.ID, totals)

	log.FromContext(ctx).DebugContext(ctx, "Summary computed",
		log.FieldOperation, log.OpSummary,
		log.FieldUserID, user.ID)
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.SuggestedCategories)
}
