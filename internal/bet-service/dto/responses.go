package dto

import (
	"time"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
)

type BetResponse struct {
	ID               string     `json:"id"`
	MatchID          int64      `json:"matchId"`
	PredictedOutcome string     `json:"predictedOutcome"`
	Status           string     `json:"status"` // PLACED | WON | LOST
	PlacedAt         time.Time  `json:"placedAt"`
	SettledAt        *time.Time `json:"settledAt,omitempty"`
}

// FromBet converte o modelo de domínio para o formato da API
func FromBet(b bet.Bet) BetResponse {
	return BetResponse{
		ID:               b.ID,
		MatchID:          b.MatchID,
		PredictedOutcome: string(b.PredictedOutcome),
		Status:           string(b.Status),
		PlacedAt:         b.PlacedAt,
		SettledAt:        b.SettledAt,
	}
}

func FromBets(all []bet.Bet) []BetResponse {
	out := make([]BetResponse, 0, len(all))
	for _, b := range all {
		out = append(out, FromBet(b))
	}
	return out
}
