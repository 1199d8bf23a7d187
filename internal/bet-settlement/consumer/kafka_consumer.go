package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
	"github.com/radieske/match-bet-settlement/internal/shared/kafka"
	"github.com/radieske/match-bet-settlement/pkg/contracts/events"
)

// PlacedBets lista as apostas ainda abertas de uma partida
type PlacedBets interface {
	FindPlacedByMatch(ctx context.Context, matchID int64) ([]bet.Bet, error)
}

// Settler é o caminho de leitura do bet-service, que liquida apostas PLACED.
// O bool indica se esta chamada fez a transição.
type Settler interface {
	Settle(ctx context.Context, id string) (bet.Bet, bool, error)
}

// Invalidator descarta o resultado de partida em cache
type Invalidator interface {
	Invalidate(ctx context.Context, matchID int64) error
}

// Processor consome match_updated e liquida as apostas da partida encerrada.
// Callbacks de métricas são opcionais.
type Processor struct {
	Log     *zap.Logger
	Reader  kafka.MessageReader
	Bets    PlacedBets
	Settler Settler
	Cache   Invalidator         // opcional
	DLQ     kafka.MessageWriter // opcional; recebe mensagens que falharam

	OnConsumed func()
	OnSettled  func(status string) // "WON" | "LOST"
	OnError    func(stage string)  // "read" | "decode" | "cache" | "db" | "settle" | "dlq"

	// RetryDelay é a espera após erro de leitura (default 500ms)
	RetryDelay time.Duration
}

// Run inicia o loop de consumo até o contexto ser cancelado
func (p *Processor) Run(ctx context.Context) error {
	delay := p.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}
		p.Handle(ctx, m)
	}
}

// Handle processa uma mensagem. Falhas vão para log, métricas e DLQ; nunca param o loop.
func (p *Processor) Handle(ctx context.Context, m kafka.Message) {
	var ev events.MatchUpdated
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		p.Log.Warn("invalid match_updated", zap.Error(err))
		p.fail("decode")
		p.toDLQ(ctx, m)
		return
	}

	// placar pode ter sido corrigido: o cache nunca deve servir valor antigo
	if p.Cache != nil {
		if err := p.Cache.Invalidate(ctx, ev.MatchID); err != nil {
			p.Log.Warn("match cache invalidate failed", zap.Int64("matchId", ev.MatchID), zap.Error(err))
			p.fail("cache")
		}
	}

	if bet.MatchStatus(ev.Status) != bet.MatchPlayed {
		p.Log.Debug("match not played, nothing to settle",
			zap.Int64("matchId", ev.MatchID),
			zap.String("status", ev.Status),
		)
		return
	}

	open, err := p.Bets.FindPlacedByMatch(ctx, ev.MatchID)
	if err != nil {
		p.Log.Warn("load placed bets failed", zap.Int64("matchId", ev.MatchID), zap.Error(err))
		p.fail("db")
		p.toDLQ(ctx, m)
		return
	}

	failed := 0
	for _, b := range open {
		settled, transitioned, err := p.Settler.Settle(ctx, b.ID)
		if err != nil {
			failed++
			p.Log.Warn("settle bet failed",
				zap.String("betId", b.ID),
				zap.Int64("matchId", ev.MatchID),
				zap.Error(err),
			)
			p.fail("settle")
			continue
		}
		// liquidada em outro lugar (ex.: leitura HTTP concorrente) não conta aqui
		if p.OnSettled != nil && transitioned {
			p.OnSettled(string(settled.Status))
		}
	}

	p.Log.Info("match settled",
		zap.Int64("matchId", ev.MatchID),
		zap.Int("bets", len(open)),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		p.toDLQ(ctx, m)
	}
}

func (p *Processor) toDLQ(ctx context.Context, m kafka.Message) {
	if p.DLQ == nil {
		return
	}
	msg := kafka.Message{Key: m.Key, Value: m.Value, Headers: m.Headers, Time: time.Now()}
	if err := p.DLQ.WriteMessages(ctx, msg); err != nil {
		p.Log.Error("dlq write failed", zap.Error(err))
		p.fail("dlq")
	}
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
