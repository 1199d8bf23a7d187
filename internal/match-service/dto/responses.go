package dto

import (
	"time"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
)

type TeamResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Stadium    string `json:"stadium"`
	State      string `json:"state"`
}

// MatchResponse é o contrato lido pelo bet-service (GET /matches/{id}).
// homeScore/awayScore ficam null até a partida ser jogada.
type MatchResponse struct {
	ID         int64     `json:"id"`
	HomeTeamID int64     `json:"homeTeamId"`
	AwayTeamID int64     `json:"awayTeamId"`
	HomeTeam   string    `json:"homeTeam"`
	AwayTeam   string    `json:"awayTeam"`
	HomeScore  *int      `json:"homeScore"`
	AwayScore  *int      `json:"awayScore"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromTeam(t match.Team) TeamResponse {
	return TeamResponse{ID: t.ID, Name: t.Name, Identifier: t.Identifier, Stadium: t.Stadium, State: t.State}
}

func FromTeams(all []match.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(all))
	for _, t := range all {
		out = append(out, FromTeam(t))
	}
	return out
}

func FromMatch(m match.Match) MatchResponse {
	return MatchResponse{
		ID:         m.ID,
		HomeTeamID: m.Home.ID,
		AwayTeamID: m.Away.ID,
		HomeTeam:   m.Home.Name,
		AwayTeam:   m.Away.Name,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Status:     string(m.Status),
		UpdatedAt:  m.UpdatedAt,
	}
}

func FromMatches(all []match.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(all))
	for _, m := range all {
		out = append(out, FromMatch(m))
	}
	return out
}
