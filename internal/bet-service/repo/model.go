package repo

import (
	"database/sql"
	"embed"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
)

// Migrations contém o schema da tabela bets (aplicado via shared/db.Migrate).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsTable é a tabela de controle do golang-migrate para este serviço.
const MigrationsTable = "bet_schema_migrations"

const betColumns = `id, match_id, predicted_outcome, status, placed_at, settled_at`

type scanner interface {
	Scan(dest ...any) error
}

// scanBet lê uma linha de bets no modelo de domínio
func scanBet(s scanner) (bet.Bet, error) {
	var (
		b         bet.Bet
		outcome   string
		status    string
		settledAt sql.NullTime
	)
	if err := s.Scan(&b.ID, &b.MatchID, &outcome, &status, &b.PlacedAt, &settledAt); err != nil {
		return bet.Bet{}, err
	}
	b.PredictedOutcome = bet.Outcome(outcome)
	b.Status = bet.Status(status)
	if settledAt.Valid {
		t := settledAt.Time
		b.SettledAt = &t
	}
	return b, nil
}
