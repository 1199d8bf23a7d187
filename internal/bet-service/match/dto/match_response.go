package dto

// MatchResponse representa a resposta de GET /matches/{id} do match-service.
// Placar é nulo enquanto a partida não foi jogada.
type MatchResponse struct {
	ID        int64  `json:"id"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	Status    string `json:"status"`
}
