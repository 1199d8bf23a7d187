package events

import "time"

// Evento publicado no tópico "match_updated" sempre que o placar ou o status
// de uma partida muda no match-service.
type MatchUpdated struct {
	MatchID   int64     `json:"match_id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	Status    string    `json:"status"` // SCHEDULED | PLAYED | CANCELLED
	UpdatedAt time.Time `json:"updated_at"`
}
