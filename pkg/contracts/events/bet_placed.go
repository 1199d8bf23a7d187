package events

// Evento emitido pelo bet-service quando uma aposta é registrada.
type BetPlaced struct {
	BetID            string `json:"bet_id"`
	MatchID          int64  `json:"match_id"`
	PredictedOutcome string `json:"predicted_outcome"` // DRAW | HOME_WIN | AWAY_WIN
	TsUnixMs         int64  `json:"ts_unix_ms"`
}
