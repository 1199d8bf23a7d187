package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
	"github.com/radieske/match-bet-settlement/internal/bet-service/dto"
)

// Bets define as operações do serviço de apostas usadas pelos handlers
type Bets interface {
	Create(ctx context.Context, candidate *bet.Bet) (bet.Bet, error)
	Get(ctx context.Context, id string) (bet.Bet, error)
	List(ctx context.Context) ([]bet.Bet, error)
}

// Server expõe a API REST de apostas
type Server struct {
	log  *zap.Logger
	bets Bets
}

func NewServer(log *zap.Logger, bets Bets) *Server { return &Server{log: log, bets: bets} }

// Router retorna o roteador HTTP com as rotas de apostas
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/bets", s.placeBet)   // cria aposta PLACED
	r.Get("/bets", s.listBets)    // lista todas
	r.Get("/bets/{id}", s.getBet) // consulta e liquida se possível
	return r
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}

	b, err := s.bets.Create(r.Context(), &bet.Bet{
		ID:               req.ID,
		MatchID:          req.MatchID,
		PredictedOutcome: bet.Outcome(req.PredictedOutcome),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromBet(b))
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	b, err := s.bets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromBet(b))
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	all, err := s.bets.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromBets(all))
}

// statusFor traduz os erros de domínio em status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, bet.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, bet.ErrBetNotFound), errors.Is(err, bet.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, bet.ErrMatchNotPlayed):
		return http.StatusConflict
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
