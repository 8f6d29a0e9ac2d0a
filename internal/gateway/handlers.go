package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/engine"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// Routes builds the HTTP surface: WebSocket upgrade, session state, filtered
// player queries, results export, and session start. CORS wraps the mux so
// browser clients on other origins can reach it.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/players", s.handlePlayers)
	mux.HandleFunc("/results", s.handleResults)
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

func (s *Service) handleWS(w http.ResponseWriter, r *http.Request) {
	if err := s.cm.UpgradeConnection(w, r); err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
	}
}

// stateResponse is the session snapshot plus the history affordances, so
// clients can grey out undo/redo controls.
type stateResponse struct {
	models.SessionState
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

func (s *Service) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stateResponse{
		SessionState: s.engine.Snapshot(),
		CanUndo:      s.engine.CanUndo(),
		CanRedo:      s.engine.CanRedo(),
	})
}

func (s *Service) handlePlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Position: models.Position(q.Get("position")),
		Team:     q.Get("team"),
		Search:   q.Get("q"),
	}
	if bye := q.Get("bye"); bye != "" {
		n, err := strconv.Atoi(bye)
		if err != nil {
			http.Error(w, "invalid bye week", http.StatusBadRequest)
			return
		}
		filter.ByeWeek = n
	}

	items := s.engine.QueryItems(filter)
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, items)
}

func (s *Service) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		rows := engine.RowsFromState(s.engine.Snapshot())
		if err := engine.WriteResultsCSV(w, rows); err != nil {
			log.Error().Err(err).Msg("failed to write results CSV")
		}
		return
	}
	writeJSON(w, s.engine.Results())
}

func (s *Service) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.StartDraft(r.Context()); err != nil {
		if errors.Is(err, engine.ErrInvalidConfig) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
