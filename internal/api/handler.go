// Package api exposes conversations and the loan calculators over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/eligibility"
	"loan-saarthi/internal/models"
	"loan-saarthi/internal/profiles"
	"loan-saarthi/internal/session"
	"loan-saarthi/internal/transcript"
	"loan-saarthi/internal/underwriting"

	"github.com/gorilla/mux"
)

// Sessions is the part of session.Manager the API drives.
type Sessions interface {
	Create(ctx context.Context) (session.Turn, error)
	Advance(ctx context.Context, id string, in models.UserInput) (session.Turn, error)
	SubmitDocument(ctx context.Context, id string) (session.Turn, error)
	Restart(ctx context.Context, id string) (session.Turn, error)
	Get(id string) (session.Snapshot, error)
	Transcript(id string, offset int) ([]transcript.Entry, error)
}

type Handler struct {
	sessions Sessions
	profiles profiles.Store
	logger   logger.Logger
}

func NewHandler(sessions Sessions, store profiles.Store, log logger.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		profiles: store,
		logger:   log.WithFields(map[string]interface{}{"component": "http-api"}),
	}
}

// Register mounts the API under /api/v1 on r.
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(h.logRequests)

	// A method mismatch inside the subrouter reports 405 only when both
	// routers carry the handler.
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	api.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)

	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/transcript", h.GetTranscript).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/messages", h.PostMessage).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/documents", h.PostDocument).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/restart", h.RestartSession).Methods(http.MethodPost)

	api.HandleFunc("/profiles", h.ListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/emi/preview", h.PreviewEMI).Methods(http.MethodPost)
	api.HandleFunc("/eligibility", h.CheckEligibility).Methods(http.MethodPost)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, apperrors.NewMethodNotAllowedError(r.Method, r.URL.Path))
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	turn, err := h.sessions.Create(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, turn)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type transcriptResponse struct {
	Entries    []transcript.Entry `json:"entries"`
	NextOffset int                `json:"nextOffset"`
}

func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, apperrors.NewInvalidRequestError("offset must be a non-negative integer"))
			return
		}
		offset = n
	}

	entries, err := h.sessions.Transcript(mux.Vars(r)["id"], offset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transcriptResponse{Entries: entries, NextOffset: offset + len(entries)})
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decode(r, messageSchema, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	turn, err := h.sessions.Advance(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

type documentRequest struct {
	Received bool   `json:"received"`
	FileName string `json:"fileName,omitempty"`
}

func (h *Handler) PostDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decode(r, documentSchema, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	turn, err := h.sessions.SubmitDocument(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

func (h *Handler) RestartSession(w http.ResponseWriter, r *http.Request) {
	turn, err := h.sessions.Restart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.profiles.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": list})
}

type previewRequest struct {
	Principal         int64    `json:"principal"`
	AnnualRatePercent *float64 `json:"annualRatePercent,omitempty"`
	TenureMonths      int      `json:"tenureMonths"`
}

func (h *Handler) PreviewEMI(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decode(r, previewSchema, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	rate := underwriting.DefaultPreviewRate
	if req.AnnualRatePercent != nil {
		rate = *req.AnnualRatePercent
	}

	quote, err := underwriting.Preview(req.Principal, rate, req.TenureMonths)
	if errors.Is(err, underwriting.ErrInvalidQuote) {
		h.writeError(w, r, apperrors.NewUnderwritingInputInvalidError(err.Error()))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var app eligibility.Application
	if err := decode(r, eligibilitySchema, &app); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := eligibility.Check(app)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}
