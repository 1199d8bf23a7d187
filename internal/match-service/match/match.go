// Package match contém o modelo de times e partidas do campeonato.
package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTeam   = errors.New("invalid team")
	ErrTeamNotFound  = errors.New("team not found")
	ErrInvalidMatch  = errors.New("invalid match")
	ErrMatchNotFound = errors.New("match not found")
)

type Team struct {
	ID         int64
	Name       string
	Identifier string
	Stadium    string
	State      string // UF, ex: "SP"
}

// ValidateTeam exige nome e identificador preenchidos.
func ValidateTeam(t Team) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTeam)
	}
	if strings.TrimSpace(t.Identifier) == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidTeam)
	}
	return nil
}

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPlayed     Status = "PLAYED"
	StatusCancelled  Status = "CANCELLED"
)

// Match é a partida entre dois times. Placar só existe depois de PLAYED.
type Match struct {
	ID        int64
	Home      Team
	Away      Team
	HomeScore *int
	AwayScore *int
	Status    Status
	UpdatedAt time.Time
}

// Schedule monta uma nova partida agendada.
func Schedule(home, away Team, at time.Time) (Match, error) {
	if home.ID == away.ID {
		return Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidMatch)
	}
	return Match{Home: home, Away: away, Status: StatusScheduled, UpdatedAt: at}, nil
}

// Finish registra o placar final. Partidas canceladas não aceitam placar.
func Finish(m Match, home, away int, at time.Time) (Match, error) {
	if home < 0 || away < 0 {
		return m, fmt.Errorf("%w: scores must not be negative", ErrInvalidMatch)
	}
	if m.Status == StatusCancelled {
		return m, fmt.Errorf("%w: match %d is cancelled", ErrInvalidMatch, m.ID)
	}
	next := m
	next.HomeScore = &home
	next.AwayScore = &away
	next.Status = StatusPlayed
	next.UpdatedAt = at
	return next, nil
}

// Cancel cancela uma partida ainda não jogada.
func Cancel(m Match, at time.Time) (Match, error) {
	if m.Status == StatusPlayed {
		return m, fmt.Errorf("%w: match %d was already played", ErrInvalidMatch, m.ID)
	}
	next := m
	next.Status = StatusCancelled
	next.UpdatedAt = at
	return next, nil
}
