package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/match-service/dto"
	"github.com/radieske/match-bet-settlement/internal/match-service/match"
)

// Directory define as operações de times e partidas usadas pelos handlers
type Directory interface {
	RegisterTeam(ctx context.Context, t match.Team) (match.Team, error)
	ListTeams(ctx context.Context, state string) ([]match.Team, error)
	GetTeam(ctx context.Context, id int64) (match.Team, error)
	ScheduleMatch(ctx context.Context, homeID, awayID int64) (match.Match, error)
	ListMatches(ctx context.Context, homeIdentifier string) ([]match.Match, error)
	GetMatch(ctx context.Context, id int64) (match.Match, error)
	EditMatch(ctx context.Context, id int64, homeScore, awayScore int) (match.Match, error)
	CancelMatch(ctx context.Context, id int64) (match.Match, error)
}

// Server expõe a API REST do campeonato
type Server struct {
	log *zap.Logger
	dir Directory
}

func NewServer(log *zap.Logger, dir Directory) *Server { return &Server{log: log, dir: dir} }

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/teams", func(r chi.Router) {
		r.Post("/", s.registerTeam)
		r.Get("/", s.listTeams) // ?state=SP
		r.Get("/{id}", s.getTeam)
	})
	r.Route("/matches", func(r chi.Router) {
		r.Post("/", s.scheduleMatch)
		r.Get("/", s.listMatches) // ?home=<identificador>
		r.Get("/{id}", s.getMatch)
		r.Put("/{id}", s.editMatch)
		r.Post("/{id}/cancel", s.cancelMatch)
	})
	return r
}

func (s *Server) registerTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	t, err := s.dir.RegisterTeam(r.Context(), match.Team{
		Name:       req.Name,
		Identifier: req.Identifier,
		Stadium:    req.Stadium,
		State:      req.State,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromTeam(t))
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	all, err := s.dir.ListTeams(r.Context(), r.URL.Query().Get("state"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromTeams(all))
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.dir.GetTeam(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromTeam(t))
}

func (s *Server) scheduleMatch(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	m, err := s.dir.ScheduleMatch(r.Context(), req.HomeTeamID, req.AwayTeamID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromMatch(m))
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	all, err := s.dir.ListMatches(r.Context(), r.URL.Query().Get("home"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMatches(all))
}

func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := s.dir.GetMatch(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMatch(m))
}

func (s *Server) editMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.EditMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}
	if req.HomeScore == nil || req.AwayScore == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "homeScore and awayScore are required"})
		return
	}
	m, err := s.dir.EditMatch(r.Context(), id, *req.HomeScore, *req.AwayScore)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMatch(m))
}

func (s *Server) cancelMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	m, err := s.dir.CancelMatch(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromMatch(m))
}

// pathID lê {id} numérico; responde 400 quando inválido
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, match.ErrInvalidTeam), errors.Is(err, match.ErrInvalidMatch):
		return http.StatusBadRequest
	case errors.Is(err, match.ErrTeamNotFound), errors.Is(err, match.ErrMatchNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
