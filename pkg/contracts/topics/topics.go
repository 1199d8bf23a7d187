package topics

const (
	// Apostas
	BetPlaced  = "bet_placed"
	BetSettled = "bet_settled"

	// Partidas
	MatchUpdated = "match_updated"

	// DLQs
	MatchUpdatedDLQ = "match_updated_dlq"
)
