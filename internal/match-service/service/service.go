package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
	"github.com/radieske/match-bet-settlement/internal/match-service/metrics"
)

type Repository interface {
	InsertTeam(ctx context.Context, t match.Team) (match.Team, error)
	FindTeam(ctx context.Context, id int64) (match.Team, bool, error)
	ListTeams(ctx context.Context, state string) ([]match.Team, error)
	InsertMatch(ctx context.Context, m match.Match) (match.Match, error)
	UpdateMatch(ctx context.Context, m match.Match) error
	FindMatch(ctx context.Context, id int64) (match.Match, bool, error)
	ListMatches(ctx context.Context, homeIdentifier string) ([]match.Match, error)
}

// Publisher avisa mudanças de placar/status (tópico match_updated)
type Publisher interface {
	PublishMatchUpdated(ctx context.Context, m match.Match) error
}

// Service é o diretório de times e partidas do campeonato
type Service struct {
	log   *zap.Logger
	repo  Repository
	publ  Publisher
	clock clockwork.Clock
}

func New(log *zap.Logger, repo Repository, publ Publisher, clock clockwork.Clock) *Service {
	return &Service{log: log, repo: repo, publ: publ, clock: clock}
}

// RegisterTeam valida e grava um time. Dados inválidos não chegam ao repositório.
func (s *Service) RegisterTeam(ctx context.Context, t match.Team) (match.Team, error) {
	if err := match.ValidateTeam(t); err != nil {
		return match.Team{}, err
	}
	saved, err := s.repo.InsertTeam(ctx, t)
	if err != nil {
		return match.Team{}, err
	}
	s.log.Info("team registered", zap.Int64("teamId", saved.ID), zap.String("identifier", saved.Identifier))
	return saved, nil
}

// ListTeams lista todos os times ou só os do estado informado
func (s *Service) ListTeams(ctx context.Context, state string) ([]match.Team, error) {
	return s.repo.ListTeams(ctx, state)
}

func (s *Service) GetTeam(ctx context.Context, id int64) (match.Team, error) {
	t, ok, err := s.repo.FindTeam(ctx, id)
	if err != nil {
		return match.Team{}, err
	}
	if !ok {
		return match.Team{}, fmt.Errorf("%w: id %d", match.ErrTeamNotFound, id)
	}
	return t, nil
}

// ScheduleMatch agenda uma partida entre dois times existentes
func (s *Service) ScheduleMatch(ctx context.Context, homeID, awayID int64) (match.Match, error) {
	home, err := s.GetTeam(ctx, homeID)
	if err != nil {
		return match.Match{}, err
	}
	away, err := s.GetTeam(ctx, awayID)
	if err != nil {
		return match.Match{}, err
	}

	m, err := match.Schedule(home, away, s.clock.Now())
	if err != nil {
		return match.Match{}, err
	}
	saved, err := s.repo.InsertMatch(ctx, m)
	if err != nil {
		return match.Match{}, err
	}

	s.log.Info("match scheduled",
		zap.Int64("matchId", saved.ID),
		zap.String("home", home.Name),
		zap.String("away", away.Name),
	)
	return saved, nil
}

// ListMatches lista as partidas, filtrando pelo identificador do mandante se informado
func (s *Service) ListMatches(ctx context.Context, homeIdentifier string) ([]match.Match, error) {
	return s.repo.ListMatches(ctx, homeIdentifier)
}

func (s *Service) GetMatch(ctx context.Context, id int64) (match.Match, error) {
	m, ok, err := s.repo.FindMatch(ctx, id)
	if err != nil {
		return match.Match{}, err
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: id %d", match.ErrMatchNotFound, id)
	}
	return m, nil
}

// EditMatch registra o placar final e marca a partida como PLAYED
func (s *Service) EditMatch(ctx context.Context, id int64, homeScore, awayScore int) (match.Match, error) {
	return s.update(ctx, id, func(m match.Match) (match.Match, error) {
		return match.Finish(m, homeScore, awayScore, s.clock.Now())
	})
}

// CancelMatch cancela uma partida que ainda não foi jogada
func (s *Service) CancelMatch(ctx context.Context, id int64) (match.Match, error) {
	return s.update(ctx, id, func(m match.Match) (match.Match, error) {
		return match.Cancel(m, s.clock.Now())
	})
}

func (s *Service) update(ctx context.Context, id int64, apply func(match.Match) (match.Match, error)) (match.Match, error) {
	cur, err := s.GetMatch(ctx, id)
	if err != nil {
		return match.Match{}, err
	}
	next, err := apply(cur)
	if err != nil {
		return match.Match{}, err
	}
	if err := s.repo.UpdateMatch(ctx, next); err != nil {
		return match.Match{}, err
	}

	metrics.RecordMatchUpdated(string(next.Status))
	s.log.Info("match updated", zap.Int64("matchId", next.ID), zap.String("status", string(next.Status)))

	if s.publ != nil {
		if err := s.publ.PublishMatchUpdated(ctx, next); err != nil {
			s.log.Warn("publish match_updated failed", zap.Int64("matchId", next.ID), zap.Error(err))
		}
	}
	return next, nil
}
