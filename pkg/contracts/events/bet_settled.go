package events

import "time"

// Evento emitido pelo bet-service quando uma aposta sai de PLACED.
type BetSettled struct {
	BetID            string    `json:"betId"`
	MatchID          int64     `json:"matchId"`
	PredictedOutcome string    `json:"predictedOutcome"`
	MatchOutcome     string    `json:"matchOutcome"`
	Status           string    `json:"status"` // "WON" | "LOST"
	Ts               time.Time `json:"ts"`
}
