package match

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
)

// Directory é o contrato consumido pelo serviço de apostas.
type Directory interface {
	FetchMatch(ctx context.Context, matchID int64) (bet.MatchResult, error)
}

// CachedDirectory guarda no Redis apenas partidas PLAYED (placar final).
// Partidas em aberto sempre vão ao match-service para não liquidar com status velho.
type CachedDirectory struct {
	next Directory
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedDirectory(next Directory, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedDirectory {
	return &CachedDirectory{next: next, rdb: rdb, ttl: ttl, log: log}
}

func key(matchID int64) string { return "match:result:" + strconv.FormatInt(matchID, 10) }

type cachedResult struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
}

func (c *CachedDirectory) FetchMatch(ctx context.Context, matchID int64) (bet.MatchResult, error) {
	b, err := c.rdb.Get(ctx, key(matchID)).Bytes()
	switch {
	case err == nil:
		var cr cachedResult
		if jerr := json.Unmarshal(b, &cr); jerr == nil {
			return bet.MatchResult{
				HomeTeam:  cr.HomeTeam,
				AwayTeam:  cr.AwayTeam,
				HomeScore: cr.HomeScore,
				AwayScore: cr.AwayScore,
				Status:    bet.MatchStatus(cr.Status),
			}, nil
		}
		c.log.Warn("invalid cached match", zap.Int64("matchId", matchID))
	case !errors.Is(err, redis.Nil):
		// Redis fora: segue para o upstream
		c.log.Warn("redis get failed", zap.Int64("matchId", matchID), zap.Error(err))
	}

	m, err := c.next.FetchMatch(ctx, matchID)
	if err != nil {
		return m, err
	}

	if m.Played() {
		payload, _ := json.Marshal(cachedResult{
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			Status:    string(m.Status),
		})
		if err := c.rdb.Set(ctx, key(matchID), payload, c.ttl).Err(); err != nil {
			c.log.Warn("redis set failed", zap.Int64("matchId", matchID), zap.Error(err))
		}
	}
	return m, nil
}

// Invalidate remove a partida do cache; usado quando o match-service avisa mudança.
func (c *CachedDirectory) Invalidate(ctx context.Context, matchID int64) error {
	return c.rdb.Del(ctx, key(matchID)).Err()
}
