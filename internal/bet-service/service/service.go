package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
	"github.com/radieske/match-bet-settlement/internal/bet-service/match"
	"github.com/radieske/match-bet-settlement/internal/bet-service/metrics"
)

// Repository é a persistência de apostas (upsert por id).
type Repository interface {
	Save(ctx context.Context, b bet.Bet) (bet.Bet, error)
	FindByID(ctx context.Context, id string) (bet.Bet, bool, error)
	FindAll(ctx context.Context) ([]bet.Bet, error)
}

// MatchDirectory busca a partida referenciada pela aposta.
type MatchDirectory interface {
	FetchMatch(ctx context.Context, matchID int64) (bet.MatchResult, error)
}

// Publisher recebe os eventos de ciclo de vida. Falhas não afetam o resultado.
type Publisher interface {
	PublishBetPlaced(ctx context.Context, b bet.Bet) error
	PublishBetSettled(ctx context.Context, b bet.Bet, m bet.MatchResult) error
}

// Service registra apostas e liquida apostas PLACED quando a partida termina.
type Service struct {
	log     *zap.Logger
	repo    Repository
	matches MatchDirectory
	publ    Publisher
	clock   clockwork.Clock
	newID   func() string

	// uma liquidação em voo por aposta
	flight singleflight.Group
}

// New monta o serviço. publ pode ser nil (sem eventos).
func New(log *zap.Logger, repo Repository, matches MatchDirectory, publ Publisher, clock clockwork.Clock) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		matches: matches,
		publ:    publ,
		clock:   clock,
		newID:   uuid.NewString,
	}
}

// Create valida a candidata, confirma que a partida existe e grava a aposta como PLACED.
// Qualquer falha acontece antes da escrita.
func (s *Service) Create(ctx context.Context, candidate *bet.Bet) (bet.Bet, error) {
	if err := bet.Validate(candidate); err != nil {
		return bet.Bet{}, err
	}

	id := s.newID()

	if _, err := s.fetchMatch(ctx, candidate.MatchID); err != nil {
		return bet.Bet{}, err
	}

	saved, err := s.repo.Save(ctx, bet.Place(*candidate, id, s.clock.Now()))
	if err != nil {
		return bet.Bet{}, err
	}

	metrics.RecordPlaced()
	s.log.Info("bet placed",
		zap.String("betId", saved.ID),
		zap.Int64("matchId", saved.MatchID),
		zap.String("predictedOutcome", string(saved.PredictedOutcome)),
	)

	if s.publ != nil {
		if err := s.publ.PublishBetPlaced(ctx, saved); err != nil {
			s.log.Warn("publish bet_placed failed", zap.String("betId", saved.ID), zap.Error(err))
		}
	}
	return saved, nil
}

// Get devolve a aposta, liquidando-a se ainda estiver PLACED e a partida já foi jogada.
// Apostas WON/LOST voltam direto do repositório, sem consultar o match-service.
func (s *Service) Get(ctx context.Context, id string) (bet.Bet, error) {
	b, _, err := s.Settle(ctx, id)
	return b, err
}

// Settle é o Get que também informa se esta chamada fez a transição PLACED -> WON/LOST.
// A liquidação compartilhada roda desacoplada do cancelamento de quem a iniciou;
// cada chamador desiste apenas pelo próprio contexto.
func (s *Service) Settle(ctx context.Context, id string) (bet.Bet, bool, error) {
	if id == "" {
		return bet.Bet{}, false, fmt.Errorf("%w: bet id is required", bet.ErrInvalidArgument)
	}

	b, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return bet.Bet{}, false, err
	}
	if !ok {
		return bet.Bet{}, false, fmt.Errorf("%w: id %s", bet.ErrBetNotFound, id)
	}
	if b.Status.Settled() {
		return b, false, nil
	}

	// só o chamador cuja função rodou vê ran=true
	var ran bool
	ch := s.flight.DoChan(id, func() (any, error) {
		ran = true
		return s.settle(context.WithoutCancel(ctx), b)
	})

	select {
	case <-ctx.Done():
		return bet.Bet{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return bet.Bet{}, false, res.Err
		}
		return res.Val.(bet.Bet), ran, nil
	}
}

// List devolve todas as apostas; loja vazia resulta em slice vazio.
func (s *Service) List(ctx context.Context) ([]bet.Bet, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []bet.Bet{}
	}
	return all, nil
}

func (s *Service) settle(ctx context.Context, b bet.Bet) (bet.Bet, error) {
	m, err := s.fetchMatch(ctx, b.MatchID)
	if err != nil {
		return bet.Bet{}, err
	}

	next, err := bet.Settle(b, m, s.clock.Now())
	if err != nil {
		if errors.Is(err, bet.ErrMatchNotPlayed) {
			metrics.RecordNotPlayed()
		}
		return bet.Bet{}, err
	}

	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		return bet.Bet{}, err
	}

	metrics.RecordSettled(string(saved.Status))
	s.log.Info("bet settled",
		zap.String("betId", saved.ID),
		zap.Int64("matchId", saved.MatchID),
		zap.String("status", string(saved.Status)),
		zap.String("matchOutcome", string(m.Outcome())),
	)

	if s.publ != nil {
		if err := s.publ.PublishBetSettled(ctx, saved, m); err != nil {
			s.log.Warn("publish bet_settled failed", zap.String("betId", saved.ID), zap.Error(err))
		}
	}
	return saved, nil
}

// fetchMatch consulta o diretório e colapsa "não existe" e "indisponível" em
// ErrMatchNotFound, mantendo o erro original encadeado para errors.Is.
func (s *Service) fetchMatch(ctx context.Context, matchID int64) (bet.MatchResult, error) {
	m, err := s.matches.FetchMatch(ctx, matchID)
	if err == nil {
		return m, nil
	}

	reason := "unavailable"
	if errors.Is(err, match.ErrNotFound) {
		reason = "not_found"
	}
	metrics.RecordMatchFetchFailure(reason)
	s.log.Warn("match fetch failed",
		zap.Int64("matchId", matchID),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return bet.MatchResult{}, fmt.Errorf("%w: %w", bet.ErrMatchNotFound, err)
}
