package dto

// PlaceBetRequest é o corpo de POST /bets.
// Um "id" enviado pelo cliente é ignorado; o serviço gera o seu.
type PlaceBetRequest struct {
	ID               string `json:"id,omitempty"`
	MatchID          int64  `json:"matchId"`
	PredictedOutcome string `json:"predictedOutcome"` // DRAW | HOME_WIN | AWAY_WIN
}
