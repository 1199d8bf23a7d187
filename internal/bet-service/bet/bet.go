// Package bet contém o modelo de aposta e a máquina de estados de liquidação.
// Nada aqui faz I/O: as transições recebem a partida já buscada e o instante
// da liquidação, e devolvem um novo valor.
package bet

import (
	"fmt"
	"time"
)

// Outcome é o resultado de uma partida (ou o palpite de uma aposta).
type Outcome string

const (
	OutcomeDraw    Outcome = "DRAW"
	OutcomeHomeWin Outcome = "HOME_WIN"
	OutcomeAwayWin Outcome = "AWAY_WIN"
)

// Valid informa se o outcome é um dos três conhecidos.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeDraw, OutcomeHomeWin, OutcomeAwayWin:
		return true
	}
	return false
}

// Status é o ciclo de vida da aposta. WON e LOST são terminais.
type Status string

const (
	StatusPlaced Status = "PLACED"
	StatusWon    Status = "WON"
	StatusLost   Status = "LOST"
)

// Settled informa se o status é terminal.
func (s Status) Settled() bool { return s == StatusWon || s == StatusLost }

// Bet é a aposta persistida pelo bet-service.
type Bet struct {
	ID               string
	MatchID          int64
	PredictedOutcome Outcome
	Status           Status
	PlacedAt         time.Time
	SettledAt        *time.Time
}

// MatchStatus espelha o status da partida no match-service.
type MatchStatus string

const (
	MatchScheduled  MatchStatus = "SCHEDULED"
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchPlayed     MatchStatus = "PLAYED"
	MatchCancelled  MatchStatus = "CANCELLED"
)

// MatchResult é a projeção somente-leitura da partida usada na liquidação.
type MatchResult struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    MatchStatus
}

// Played informa se a partida já terminou.
func (m MatchResult) Played() bool { return m.Status == MatchPlayed }

// Outcome deriva o resultado a partir do placar.
func (m MatchResult) Outcome() Outcome {
	switch {
	case m.HomeScore > m.AwayScore:
		return OutcomeHomeWin
	case m.AwayScore > m.HomeScore:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Validate checa os campos obrigatórios de uma aposta candidata.
func Validate(candidate *Bet) error {
	if candidate == nil {
		return fmt.Errorf("%w: bet must not be nil", ErrInvalidArgument)
	}
	if candidate.MatchID <= 0 {
		return fmt.Errorf("%w: matchId is required", ErrInvalidArgument)
	}
	if candidate.PredictedOutcome == "" {
		return fmt.Errorf("%w: predictedOutcome is required", ErrInvalidArgument)
	}
	if !candidate.PredictedOutcome.Valid() {
		return fmt.Errorf("%w: unknown predictedOutcome %q", ErrInvalidArgument, candidate.PredictedOutcome)
	}
	return nil
}

// Place monta uma nova aposta PLACED a partir da candidata.
// O ID da candidata, se houver, é descartado.
func Place(candidate Bet, id string, at time.Time) Bet {
	return Bet{
		ID:               id,
		MatchID:          candidate.MatchID,
		PredictedOutcome: candidate.PredictedOutcome,
		Status:           StatusPlaced,
		PlacedAt:         at,
	}
}

// Settle resolve uma aposta PLACED contra uma partida encerrada.
// Apostas já liquidadas voltam inalteradas. b nunca é modificada.
func Settle(b Bet, m MatchResult, at time.Time) (Bet, error) {
	if b.Status.Settled() {
		return b, nil
	}
	if !m.Played() {
		return b, fmt.Errorf("%w: match %d is %s", ErrMatchNotPlayed, b.MatchID, m.Status)
	}

	next := b
	next.Status = StatusLost
	if m.Outcome() == b.PredictedOutcome {
		next.Status = StatusWon
	}
	settledAt := at
	next.SettledAt = &settledAt
	return next, nil
}
