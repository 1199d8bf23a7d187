package dto

type RegisterTeamRequest struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Stadium    string `json:"stadium"`
	State      string `json:"state"` // UF
}

type ScheduleMatchRequest struct {
	HomeTeamID int64 `json:"homeTeamId"`
	AwayTeamID int64 `json:"awayTeamId"`
}

// EditMatchRequest carrega o placar final (PUT /matches/{id})
type EditMatchRequest struct {
	HomeScore *int `json:"homeScore"`
	AwayScore *int `json:"awayScore"`
}
