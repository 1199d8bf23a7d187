package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/match-bet-settlement/internal/bet-service/bet"
	matchdto "github.com/radieske/match-bet-settlement/internal/bet-service/match/dto"
)

var (
	// ErrNotFound: o match-service respondeu 404.
	ErrNotFound = errors.New("match does not exist")
	// ErrUnavailable: erro de transporte, status inesperado ou corpo inválido.
	ErrUnavailable = errors.New("match service unavailable")
)

// Client consulta o match-service via HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// FetchMatch busca a partida e devolve a projeção usada na liquidação.
func (c *Client) FetchMatch(ctx context.Context, matchID int64) (bet.MatchResult, error) {
	url := fmt.Sprintf("%s/matches/%d", c.BaseURL, matchID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return bet.MatchResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return bet.MatchResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return bet.MatchResult{}, fmt.Errorf("%w: id %d", ErrNotFound, matchID)
	case res.StatusCode >= 300:
		return bet.MatchResult{}, fmt.Errorf("%w: match http %d", ErrUnavailable, res.StatusCode)
	}

	var out matchdto.MatchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return bet.MatchResult{}, fmt.Errorf("%w: decode match: %v", ErrUnavailable, err)
	}
	return toResult(out), nil
}

func toResult(m matchdto.MatchResponse) bet.MatchResult {
	r := bet.MatchResult{
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		Status:   bet.MatchStatus(m.Status),
	}
	if m.HomeScore != nil {
		r.HomeScore = *m.HomeScore
	}
	if m.AwayScore != nil {
		r.AwayScore = *m.AwayScore
	}
	return r
}
