package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/match-bet-settlement/internal/match-service/match"
	"github.com/radieske/match-bet-settlement/pkg/contracts/events"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestKafkaPublisher_PublishMatchUpdated(t *testing.T) {
	w := &recordingWriter{}
	at := time.Date(2026, 10, 15, 22, 0, 0, 0, time.UTC)
	home, away := 1, 1

	err := NewKafkaPublisher(w).PublishMatchUpdated(context.Background(), match.Match{
		ID:        42,
		Home:      match.Team{Name: "Corinthians"},
		Away:      match.Team{Name: "Santos"},
		HomeScore: &home,
		AwayScore: &away,
		Status:    match.StatusPlayed,
		UpdatedAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var ev events.MatchUpdated
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, int64(42), ev.MatchID)
	assert.Equal(t, "PLAYED", ev.Status)
	assert.Equal(t, "Corinthians", ev.HomeTeam)
	require.NotNil(t, ev.HomeScore)
	assert.Equal(t, 1, *ev.HomeScore)
	assert.True(t, at.Equal(ev.UpdatedAt))
}

func TestKafkaPublisher_CancelledHasNoScore(t *testing.T) {
	w := &recordingWriter{}
	err := NewKafkaPublisher(w).PublishMatchUpdated(context.Background(), match.Match{ID: 3, Status: match.StatusCancelled})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &raw))
	assert.NotContains(t, raw, "home_score")
	assert.Equal(t, "CANCELLED", raw["status"])
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	err := NewKafkaPublisher(w).PublishMatchUpdated(context.Background(), match.Match{ID: 3})
	assert.EqualError(t, err, "broker down")
}
