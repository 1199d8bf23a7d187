package producer

import (
	"context"
	"strconv"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
	"github.com/radieske/match-bet-settlement/internal/shared/kafka"
	"github.com/radieske/match-bet-settlement/pkg/contracts/events"
)

// KafkaPublisher publica match_updated com chave = matchID
type KafkaPublisher struct {
	W kafka.MessageWriter
}

func NewKafkaPublisher(w kafka.MessageWriter) *KafkaPublisher { return &KafkaPublisher{W: w} }

func (p *KafkaPublisher) PublishMatchUpdated(ctx context.Context, m match.Match) error {
	return kafka.WriteJSON(ctx, p.W, strconv.FormatInt(m.ID, 10), events.MatchUpdated{
		MatchID:   m.ID,
		HomeTeam:  m.Home.Name,
		AwayTeam:  m.Away.Name,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Status:    string(m.Status),
		UpdatedAt: m.UpdatedAt,
	})
}
