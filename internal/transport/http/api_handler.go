package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"school-trivia/internal/app"
	"school-trivia/internal/domain"
)

// APIHandler serves the read-only leaderboard and result review endpoints.
type APIHandler struct {
	service *app.GameService
	log     *zap.Logger
}

func NewAPIHandler(service *app.GameService, log *zap.Logger) *APIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIHandler{service: service, log: log}
}

// Register mounts the endpoints on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /leaderboard", h.leaderboard)
	mux.HandleFunc("GET /results", h.listResults)
	mux.HandleFunc("DELETE /results", h.clearResults)
	mux.HandleFunc("GET /games/{id}", h.gameState)
}

func (h *APIHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		h.fail(w, "read leaderboard", err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) listResults(w http.ResponseWriter, r *http.Request) {
	difficulty := domain.Difficulty(r.URL.Query().Get("difficulty"))
	if difficulty != domain.DifficultyAll && !difficulty.Valid() {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "unknown difficulty"})
		return
	}
	records, err := h.service.Results(r.Context(), difficulty)
	if err != nil {
		h.fail(w, "list results", err, http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []domain.ResultRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *APIHandler) clearResults(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearResults(r.Context()); err != nil {
		h.fail(w, "clear results", err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) gameState(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.State(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorPayload{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *APIHandler) fail(w http.ResponseWriter, msg string, err error, status int) {
	h.log.Error(msg, zap.Error(err))
	writeJSON(w, status, errorPayload{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
