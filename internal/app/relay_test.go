package app

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay(t *testing.T) {
	// odd spacing and escapes must survive untouched
	payload := json.RawMessage(`{ "sdp" : "v=0\r\no=- 46117 2 IN IP4 127.0.0.1\r\n", "x":"é<>" }`)

	t.Run("delivered verbatim to the target only", func(t *testing.T) {
		h := newHarness(t)
		h.room(t, "R1", 4, "")
		a := h.join(t, "a", "R1")
		b := h.join(t, "b", "R1")
		c := h.join(t, "c", "R1")
		a.reset()
		b.reset()
		c.reset()

		for _, kind := range []api.SignalKind{api.SignalOffer, api.SignalAnswer, api.SignalCandidate} {
			h.coord.Relay("a", kind, "b", payload)
		}
		assert.Empty(t, a.types())
		assert.Empty(t, c.types())
		assert.Equal(t, []string{"offer", "answer", "ice-candidate"}, b.types())

		frames := b.all()
		require.Len(t, frames, 3)
		var got struct {
			Type       string          `json:"type"`
			Sender     string          `json:"sender"`
			SenderName string          `json:"senderName"`
			Payload    json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(frames[0], &got))
		assert.Equal(t, "a", got.Sender)
		assert.Equal(t, "user a", got.SenderName)
		assert.Equal(t, string(payload), string(got.Payload))
		assert.Contains(t, string(frames[0]), string(payload))
	})

	t.Run("sender must be joined", func(t *testing.T) {
		h := newHarness(t)
		h.room(t, "R1", 4, "")
		b := h.join(t, "b", "R1")
		h.connect("x")
		b.reset()

		h.coord.Relay("x", api.SignalOffer, "b", payload)
		assert.Empty(t, b.types())
	})

	t.Run("missing target is dropped", func(t *testing.T) {
		h := newHarness(t)
		h.room(t, "R1", 4, "")
		a := h.join(t, "a", "R1")
		a.reset()

		h.coord.Relay("a", api.SignalOffer, "gone", payload)
		h.coord.Relay("a", api.SignalOffer, "", payload)
		h.coord.Relay("a", api.SignalKind("bogus"), "a", payload)
		assert.Empty(t, a.types())
	})
}

func TestBackpressureKicksSlowConnection(t *testing.T) {
	h := newHarness(t)
	room := h.room(t, "R1", 4, "")
	a := h.join(t, "a", "R1")
	b := h.join(t, "b", "R1")

	b.mu.Lock()
	b.full = true
	b.mu.Unlock()
	h.coord.ToggleAudio("a", true)
	assert.True(t, b.isClosed())
	assert.False(t, a.isClosed())

	// the transport reports the close as a disconnect
	h.coord.Disconnect("b")
	assert.Equal(t, []domain.ConnectionID{"a"}, ids(room.participantList()))
}
