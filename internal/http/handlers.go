package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"expenses/internal/auth"
	"expenses/internal/core"
	"expenses/internal/ledger"
)

const sessionCookie = "session"

// requireAuth resolves the session token (cookie or bearer) to a user and
// stores it in the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.Authenticate(r.Context(), sessionToken(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		ctx := contextWithUser(r.Context(), user)
		next(w, r.WithContext(ctx))
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// globalScope reports whether the caller asked for the unscoped view and
// is allowed to have it. The choice stays explicit at every call site
// below: either the ForOwner variant or the admin-only global one.
func globalScope(r *http.Request) bool {
	user := userFrom(r.Context())
	return user != nil && user.Admin && r.URL.Query().Get("all") == "true"
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"admin,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user, err := s.auth.Register(r.Context(), creds.Username, creds.Password, creds.Admin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		default:
			writeError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := s.auth.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"token": session.Token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := s.auth.Logout(r.Context(), token); err != nil {
			writeError(w, r, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})
	w.WriteHeader(http.StatusNoContent)
}

type pageResponse struct {
	Content       []expensePayload `json:"content"`
	CurrentPage   int              `json:"currentPage"`
	PageSize      int              `json:"pageSize"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	HasNext       bool             `json:"hasNext"`
	HasPrevious   bool             `json:"hasPrevious"`
}

func toPageResponse(p ledger.Page[core.Expense]) pageResponse {
	return pageResponse{
		Content:       toPayloads(p.Content),
		CurrentPage:   p.Number,
		PageSize:      p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		HasNext:       p.HasNext(),
		HasPrevious:   p.HasPrevious(),
	}
}

// handleListExpenses composes filter, sort and pagination over the scoped
// collection. Without filters or a sort key it serves the store-backed
// page (date descending, id descending).
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))

	from, to, err := parseDateRange(q.Get("start"), q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	category := q.Get("category")
	sortKey := q.Get("sort")

	owner := userFrom(r.Context()).ID
	global := globalScope(r)

	if from.IsEmpty() && strings.TrimSpace(category) == "" && sortKey == "" {
		var (
			result ledger.Page[core.Expense]
			perr   error
		)
		if global {
			result, perr = s.ledger.Page(r.Context(), page, size)
		} else {
			result, perr = s.ledger.PageForOwner(r.Context(), page, size, owner)
		}
		if perr != nil {
			writeError(w, r, perr)
			return
		}
		writeJSON(w, http.StatusOK, toPageResponse(result))
		return
	}

	var (
		records []core.Expense
		gerr    error
	)
	if global {
		records, gerr = s.ledger.GetAll(r.Context())
	} else {
		records, gerr = s.ledger.GetAllForOwner(r.Context(), owner)
	}
	if gerr != nil {
		writeError(w, r, gerr)
		return
	}

	records = ledger.Filter(records, from, to, category)
	records = ledger.SortBy(records, sortKey)
	writeJSON(w, http.StatusOK, toPageResponse(ledger.PageOf(records, page, size)))
}

func parseDateRange(start, end string) (core.Date, core.Date, error) {
	var from, to core.Date
	if start == "" && end == "" {
		return from, to, nil
	}
	if start == "" || end == "" {
		return from, to, errors.New("start and end must be provided together")
	}
	fromT, err := time.Parse("2006-01-02", start)
	if err != nil {
		return from, to, errors.New("invalid start date, expected YYYY-MM-DD")
	}
	toT, err := time.Parse("2006-01-02", end)
	if err != nil {
		return from, to, errors.New("invalid end date, expected YYYY-MM-DD")
	}
	return core.DateOf(fromT), core.DateOf(toT), nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	e, ok := s.decodeExpense(w, r)
	if !ok {
		return
	}
	e.ID = 0
	e.Owner = userFrom(r.Context()).ID

	saved, err := s.ledger.Save(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayload(saved))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var (
		e   *core.Expense
		err error
	)
	if globalScope(r) {
		e, err = s.ledger.GetByID(r.Context(), id)
	} else {
		e, err = s.ledger.GetByIDForOwner(r.Context(), id, userFrom(r.Context()).ID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if e == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "expense not found"})
		return
	}
	writeJSON(w, http.StatusOK, toPayload(*e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	owner := userFrom(r.Context()).ID

	existing, err := s.ledger.GetByIDForOwner(r.Context(), id, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "expense not found"})
		return
	}

	e, ok := s.decodeExpense(w, r)
	if !ok {
		return
	}
	// id and owner are immutable after creation
	e.ID = id
	e.Owner = owner

	if err := s.ledger.Update(r.Context(), e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var err error
	if globalScope(r) {
		err = s.ledger.DeleteByID(r.Context(), id)
	} else {
		err = s.ledger.DeleteByIDForOwner(r.Context(), id, userFrom(r.Context()).ID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Deleting an absent id is a silent no-op
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	var err error
	if globalScope(r) {
		err = s.ledger.DeleteAll(r.Context())
	} else {
		err = s.ledger.DeleteAllForOwner(r.Context(), userFrom(r.Context()).ID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTotalAmount(w http.ResponseWriter, r *http.Request) {
	var (
		total core.Money
		err   error
	)
	if globalScope(r) {
		total, err = s.ledger.TotalAmount(r.Context())
	} else {
		total, err = s.ledger.TotalAmountForOwner(r.Context(), userFrom(r.Context()).ID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"total": total.String()})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "count must be between 1 and 100"})
			return
		}
		count = n
	}

	owner := userFrom(r.Context()).ID
	var last core.Expense
	for i := 0; i < count; i++ {
		e, err := s.ledger.AddGenerated(r.Context(), owner)
		if err != nil {
			writeError(w, r, err)
			return
		}
		last = e
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"generated": count,
		"last":      toPayload(last),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, err := parseDateRange(q.Get("start"), q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var csv string
	if globalScope(r) {
		csv, err = s.ledger.ExportAllCSV(r.Context(), from, to, q.Get("category"))
	} else {
		csv, err = s.ledger.ExportCSVForOwner(r.Context(), userFrom(r.Context()).ID, from, to, q.Get("category"))
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	_, _ = w.Write([]byte(csv))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		summary ledger.DashboardSummary
		err     error
	)
	if globalScope(r) {
		summary, err = s.ledger.Dashboard(r.Context())
	} else {
		summary, err = s.ledger.DashboardForOwner(r.Context(), userFrom(r.Context()).ID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) decodeExpense(w http.ResponseWriter, r *http.Request) (core.Expense, bool) {
	var p expensePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return core.Expense{}, false
	}

	cents, err := core.ParseDecimalToCents(p.Amount)
	if err != nil {
		writeError(w, r, err)
		return core.Expense{}, false
	}
	category, err := core.ParseCategory(p.Category)
	if err != nil {
		writeError(w, r, err)
		return core.Expense{}, false
	}
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		writeError(w, r, &core.ValidationError{Field: "date", Err: core.ErrMissingDate})
		return core.Expense{}, false
	}

	return core.Expense{
		ID:          p.ID,
		Description: p.Description,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        core.DateOf(date),
		Owner:       p.Owner,
	}, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid expense id"})
		return 0, false
	}
	return id, true
}

func contextWithUser(ctx context.Context, u *core.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func userFrom(ctx context.Context) *core.User {
	u, _ := ctx.Value(ctxKeyUser).(*core.User)
	return u
}
