package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
)

// código SQLSTATE de unique_violation
const uniqueViolation = "23505"

// Postgres implementa a persistência de times e partidas
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// InsertTeam grava um novo time. Identificador repetido vira ErrInvalidTeam.
func (p *Postgres) InsertTeam(ctx context.Context, t match.Team) (match.Team, error) {
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO teams (name, identifier, stadium, state)
		VALUES ($1, $2, $3, $4)
		RETURNING `+teamColumns,
		t.Name, t.Identifier, t.Stadium, t.State,
	)
	saved, err := scanTeam(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return match.Team{}, fmt.Errorf("%w: identifier %q already registered", match.ErrInvalidTeam, t.Identifier)
		}
		return match.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return saved, nil
}

func (p *Postgres) FindTeam(ctx context.Context, id int64) (match.Team, bool, error) {
	t, err := scanTeam(p.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return match.Team{}, false, nil
	}
	if err != nil {
		return match.Team{}, false, fmt.Errorf("find team %d: %w", id, err)
	}
	return t, true, nil
}

// ListTeams filtra por estado quando state não é vazio
func (p *Postgres) ListTeams(ctx context.Context, state string) ([]match.Team, error) {
	q := `SELECT ` + teamColumns + ` FROM teams`
	var args []any
	if state != "" {
		q += ` WHERE state = $1`
		args = append(args, state)
	}
	q += ` ORDER BY id`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	out := make([]match.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertMatch grava a partida e devolve o id gerado
func (p *Postgres) InsertMatch(ctx context.Context, m match.Match) (match.Match, error) {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO matches (home_team_id, away_team_id, home_score, away_score, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.Home.ID, m.Away.ID, m.HomeScore, m.AwayScore, string(m.Status), m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}
	return m, nil
}

// UpdateMatch persiste placar e status. Retorna ErrMatchNotFound se a linha sumiu.
func (p *Postgres) UpdateMatch(ctx context.Context, m match.Match) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE matches SET home_score = $2, away_score = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		m.ID, m.HomeScore, m.AwayScore, string(m.Status), m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update match %d: %w", m.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: id %d", match.ErrMatchNotFound, m.ID)
	}
	return nil
}

func (p *Postgres) FindMatch(ctx context.Context, id int64) (match.Match, bool, error) {
	m, err := scanMatch(p.db.QueryRowContext(ctx, matchSelect+` WHERE m.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return match.Match{}, false, nil
	}
	if err != nil {
		return match.Match{}, false, fmt.Errorf("find match %d: %w", id, err)
	}
	return m, true, nil
}

// ListMatches filtra pelo identificador do mandante quando informado
func (p *Postgres) ListMatches(ctx context.Context, homeIdentifier string) ([]match.Match, error) {
	q := matchSelect
	var args []any
	if homeIdentifier != "" {
		q += ` WHERE h.identifier = $1`
		args = append(args, homeIdentifier)
	}
	q += ` ORDER BY m.id`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }
