package producer

import (
	"context"
	"time"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
	"github.com/radieske/match-bet-settlement/internal/shared/kafka"
	"github.com/radieske/match-bet-settlement/pkg/contracts/events"
)

// KafkaPublisher publica os eventos de ciclo de vida das apostas.
// Chave da mensagem é o betID para manter a ordem por aposta.
type KafkaPublisher struct {
	Placed  kafka.MessageWriter
	Settled kafka.MessageWriter
	now     func() time.Time
}

func NewKafkaPublisher(placed, settled kafka.MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Placed: placed, Settled: settled, now: time.Now}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, b bet.Bet) error {
	return kafka.WriteJSON(ctx, p.Placed, b.ID, events.BetPlaced{
		BetID:            b.ID,
		MatchID:          b.MatchID,
		PredictedOutcome: string(b.PredictedOutcome),
		TsUnixMs:         p.now().UnixMilli(),
	})
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, b bet.Bet, m bet.MatchResult) error {
	ts := p.now()
	if b.SettledAt != nil {
		ts = *b.SettledAt
	}
	return kafka.WriteJSON(ctx, p.Settled, b.ID, events.BetSettled{
		BetID:            b.ID,
		MatchID:          b.MatchID,
		PredictedOutcome: string(b.PredictedOutcome),
		MatchOutcome:     string(m.Outcome()),
		Status:           string(b.Status),
		Ts:               ts,
	})
}
