package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
)

// Postgres implementa a persistência de apostas em banco Postgres
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de apostas
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Save faz upsert pelo id e devolve o valor persistido.
// match_id, predicted_outcome e placed_at não mudam após a criação.
func (p *Postgres) Save(ctx context.Context, b bet.Bet) (bet.Bet, error) {
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO bets (id, match_id, predicted_outcome, status, placed_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, settled_at = EXCLUDED.settled_at, updated_at = NOW()
		RETURNING `+betColumns,
		b.ID, b.MatchID, string(b.PredictedOutcome), string(b.Status), b.PlacedAt, b.SettledAt,
	)
	saved, err := scanBet(row)
	if err != nil {
		return bet.Bet{}, fmt.Errorf("save bet %s: %w", b.ID, err)
	}
	return saved, nil
}

// FindByID devolve a aposta e true, ou false quando não existe
func (p *Postgres) FindByID(ctx context.Context, id string) (bet.Bet, bool, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+betColumns+` FROM bets WHERE id = $1`, id)
	b, err := scanBet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return bet.Bet{}, false, nil
	}
	if err != nil {
		return bet.Bet{}, false, fmt.Errorf("find bet %s: %w", id, err)
	}
	return b, true, nil
}

// FindAll lista todas as apostas em ordem estável (placed_at, id)
func (p *Postgres) FindAll(ctx context.Context) ([]bet.Bet, error) {
	return p.query(ctx, `SELECT `+betColumns+` FROM bets ORDER BY placed_at, id`)
}

// FindPlacedByMatch lista as apostas ainda PLACED de uma partida
func (p *Postgres) FindPlacedByMatch(ctx context.Context, matchID int64) ([]bet.Bet, error) {
	return p.query(ctx,
		`SELECT `+betColumns+` FROM bets WHERE match_id = $1 AND status = $2 ORDER BY placed_at, id`,
		matchID, string(bet.StatusPlaced),
	)
}

func (p *Postgres) query(ctx context.Context, q string, args ...any) ([]bet.Bet, error) {
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query bets: %w", err)
	}
	defer rows.Close()

	out := make([]bet.Bet, 0)
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}
	return out, nil
}

// Ping valida a conexão; usado no /healthz
func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }
