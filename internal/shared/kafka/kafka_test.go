package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, Brokers("a:9092, b:9092,"))
	assert.Empty(t, Brokers(""))
}

func TestWriteJSON(t *testing.T) {
	w := &recordingWriter{}

	err := WriteJSON(context.Background(), w, "bet-1", map[string]string{"status": "WON"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "bet-1", string(w.msgs[0].Key))
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	assert.Equal(t, "WON", body["status"])
	assert.False(t, w.msgs[0].Time.IsZero())
}

func TestWriteJSON_MarshalError(t *testing.T) {
	w := &recordingWriter{}

	err := WriteJSON(context.Background(), w, "k", make(chan int))
	require.Error(t, err)
	assert.Empty(t, w.msgs)
}

func TestNewWriter(t *testing.T) {
	w := NewWriter("a:9092,b:9092", "bet_placed")
	defer w.Close()

	assert.Equal(t, "bet_placed", w.Topic)
}
