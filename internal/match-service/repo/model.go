package repo

import (
	"database/sql"
	"embed"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
)

// Migrations contém o schema de times e partidas.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsTable = "match_schema_migrations"

const teamColumns = `id, name, identifier, stadium, state`

const matchSelect = `
	SELECT m.id, m.status, m.home_score, m.away_score, m.updated_at,
	       h.id, h.name, h.identifier, h.stadium, h.state,
	       a.id, a.name, a.identifier, a.stadium, a.state
	FROM matches m
	JOIN teams h ON h.id = m.home_team_id
	JOIN teams a ON a.id = m.away_team_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanTeam(s scanner) (match.Team, error) {
	var t match.Team
	err := s.Scan(&t.ID, &t.Name, &t.Identifier, &t.Stadium, &t.State)
	return t, err
}

func scanMatch(s scanner) (match.Match, error) {
	var (
		m          match.Match
		status     string
		home, away sql.NullInt64
	)
	err := s.Scan(
		&m.ID, &status, &home, &away, &m.UpdatedAt,
		&m.Home.ID, &m.Home.Name, &m.Home.Identifier, &m.Home.Stadium, &m.Home.State,
		&m.Away.ID, &m.Away.Name, &m.Away.Identifier, &m.Away.Stadium, &m.Away.State,
	)
	if err != nil {
		return match.Match{}, err
	}
	m.Status = match.Status(status)
	m.HomeScore = intPtr(home)
	m.AwayScore = intPtr(away)
	return m, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
