package leaderboard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

const maxSubmissionBytes = 16 * 1024

// Handler serves the leaderboard HTTP API.
type Handler struct {
	service *Service
	schema  *SchemaValidator
	feed    *Feed
	logger  *log.Logger
}

// NewHandler creates the API handler. feed may be nil.
func NewHandler(service *Service, schema *SchemaValidator, feed *Feed, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{service: service, schema: schema, feed: feed, logger: logger}
}

// Routes returns the API mux wrapped in CORS handling.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/submit-score", h.SubmitScore)
	mux.HandleFunc("/api/leaderboard", h.Leaderboard)
	if h.feed != nil {
		mux.Handle("/api/feed", h.feed)
	}
	return withCORS(mux)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		hdr.Set("Access-Control-Allow-Origin", "*")
		hdr.Set("Access-Control-Allow-Headers", "Content-Type")
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// POST /api/submit-score
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, PublicMessage(ErrMalformed))
		return
	}
	sub, err := h.schema.Decode(body)
	if err != nil {
		writeErr(w, StatusCode(err), PublicMessage(err))
		return
	}

	out, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		writeErr(w, StatusCode(err), PublicMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/leaderboard?weekId=&wallet=
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	board, err := h.service.Query(r.Context(), q.Get("weekId"), q.Get("wallet"))
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformed):
			writeErr(w, http.StatusBadRequest, "Invalid week ID")
		default:
			h.logger.Error("leaderboard query failed", "err", err)
			writeErr(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		}
		return
	}
	writeJSON(w, http.StatusOK, board)
}
