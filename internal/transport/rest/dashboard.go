package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/service/report"
)

type reportService interface {
	Stats(ctx context.Context) (domain.Stats, error)
	ListConversations(ctx context.Context, in report.ConversationsInput) (domain.ConversationPage, error)
	History(ctx context.Context, id int64) (domain.ConversationHistory, error)
	TrackingReport(ctx context.Context, in report.TrackingInput) (domain.TrackingReport, error)
	SystemLogs(ctx context.Context, limit int) ([]domain.SystemLog, error)
}

// DashboardHandler serves the read-only dashboard API.
type DashboardHandler struct {
	reports reportService
	log     *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(reports reportService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		reports: reports,
		log:     logger.With("handler", "dashboard"),
	}
}

// Stats returns the headline numbers.
// GET /api/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Conversations returns one page of conversations.
// GET /api/conversations?page=1&limit=10&status=completed&start_date=2024-03-01&end_date=2024-03-31
func (h *DashboardHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q, "page")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.reports.ListConversations(r.Context(), report.ConversationsInput{
		Status:    q.Get("status"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toConversationPage(res))
}

// Conversation returns one conversation with its messages and lookups.
// GET /api/conversations/{id}
func (h *DashboardHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.handleError(w, r, domain.NewValidationError("id", "must be an integer"))
		return
	}

	hist, err := h.reports.History(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistory(hist))
}

// Tracking returns the tracking report.
// GET /api/tracking-data?start_date=&end_date=&city=&sender=
func (h *DashboardHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rep, err := h.reports.TrackingReport(r.Context(), report.TrackingInput{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		City:      q.Get("city"),
		Sender:    q.Get("sender"),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if rep.Rows == nil {
		rep.Rows = []domain.TrackingRow{}
	}
	writeJSON(w, http.StatusOK, rep)
}

// SystemLogs returns the newest operational log entries.
// GET /api/system-logs?limit=50
func (h *DashboardHandler) SystemLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logs, err := h.reports.SystemLogs(r.Context(), limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSystemLogs(logs))
}

func (h *DashboardHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Errors})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "dashboard request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
