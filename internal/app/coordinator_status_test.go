package app

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusToggles(t *testing.T) {
	tests := []struct {
		name  string
		apply func(c *Coordinator, sid domain.ConnectionID)
		field domain.StatusField
		value bool
		check func(p domain.Participant) bool
	}{
		{"mute", func(c *Coordinator, sid domain.ConnectionID) { c.ToggleAudio(sid, true) },
			domain.StatusMuted, true, func(p domain.Participant) bool { return p.IsMuted }},
		{"video off", func(c *Coordinator, sid domain.ConnectionID) { c.ToggleVideo(sid, true) },
			domain.StatusVideoOff, true, func(p domain.Participant) bool { return p.IsVideoOff }},
		{"raise hand", func(c *Coordinator, sid domain.ConnectionID) { c.RaiseHand(sid, true) },
			domain.StatusHandRaised, true, func(p domain.Participant) bool { return p.IsHandRaised }},
		{"screen share", func(c *Coordinator, sid domain.ConnectionID) { c.StartScreenShare(sid) },
			domain.StatusScreenSharing, true, func(p domain.Participant) bool { return p.IsScreenSharing }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			room := h.room(t, "R1", 4, "")
			a := h.join(t, "a", "R1")
			b := h.join(t, "b", "R1")
			a.reset()
			b.reset()

			tt.apply(h.coord, "b")
			for _, c := range []*fakeConn{a, b} {
				ev := lastOf[api.ParticipantStatus](t, c, api.TypeParticipantStatus)
				assert.Equal(t, domain.ConnectionID("b"), ev.ConnectionID)
				assert.Equal(t, tt.field, ev.Field)
				assert.Equal(t, tt.value, ev.Value)
			}
			ps := room.participantList()
			require.Len(t, ps, 2)
			assert.True(t, tt.check(ps[1]))
			assert.False(t, tt.check(ps[0]))
		})
	}

	t.Run("stop screen share clears the flag", func(t *testing.T) {
		h := newHarness(t)
		room := h.room(t, "R1", 4, "")
		h.join(t, "a", "R1")
		h.coord.StartScreenShare("a")
		h.coord.StopScreenShare("a")
		assert.False(t, room.participantList()[0].IsScreenSharing)
	})

	t.Run("unjoined caller is a no-op", func(t *testing.T) {
		h := newHarness(t)
		h.room(t, "R1", 4, "")
		a := h.join(t, "a", "R1")
		x := h.connect("x")
		a.reset()
		h.coord.ToggleAudio("x", true)
		h.coord.RaiseHand("ghost", true)
		assert.Empty(t, a.types())
		assert.Empty(t, x.types())
	})
}

func TestReaction(t *testing.T) {
	h := newHarness(t)
	h.room(t, "R1", 4, "")
	a := h.join(t, "a", "R1")
	b := h.join(t, "b", "R1")
	a.reset()
	b.reset()

	h.coord.SendReaction("a", " 👍 ")
	for _, c := range []*fakeConn{a, b} {
		ev := lastOf[api.UserReaction](t, c, api.TypeUserReaction)
		assert.Equal(t, "👍", ev.Symbol)
		assert.Equal(t, "user a", ev.DisplayName)
		assert.Equal(t, domain.ConnectionID("a"), ev.ConnectionID)
	}

	h.coord.SendReaction("a", "")
	h.coord.SendReaction("a", "this reaction is far too long")
	assert.Equal(t, 1, b.count(api.TypeUserReaction))
}

func TestChat(t *testing.T) {
	t.Run("delivered to everyone in send order", func(t *testing.T) {
		h := newHarness(t)
		h.room(t, "R1", 4, "")
		a := h.join(t, "a", "R1")
		b := h.join(t, "b", "R1")

		var sent []string
		for i := 0; i < 3; i++ {
			text := fmt.Sprintf("msg %d", i)
			msg, err := h.coord.ChatMessage("a", text)
			require.NoError(t, err)
			assert.NotEmpty(t, msg.ID)
			assert.Equal(t, "user a", msg.SenderName)
			sent = append(sent, text)
		}
		for _, c := range []*fakeConn{a, b} {
			var got []string
			for _, fr := range c.ofType(api.TypeChatMessage) {
				var out api.ChatOut
				require.NoError(t, json.Unmarshal(fr, &out))
				got = append(got, out.Message.Text)
				assert.Equal(t, domain.ConnectionID("a"), out.Message.SenderConnectionID)
			}
			assert.Equal(t, sent, got)
		}
	})

	t.Run("history keeps the newest", func(t *testing.T) {
		h := newHarness(t)
		room := h.room(t, "R1", 4, "")
		h.join(t, "a", "R1")
		for i := 0; i < 8; i++ {
			_, err := h.coord.ChatMessage("a", fmt.Sprintf("m%d", i))
			require.NoError(t, err)
		}
		var texts []string
		for _, m := range room.chatLog() {
			texts = append(texts, m.Text)
		}
		assert.Equal(t, []string{"m3", "m4", "m5", "m6", "m7"}, texts)
	})

	t.Run("rejects bad text and unjoined senders", func(t *testing.T) {
		h := newHarness(t)
		h.room(t, "R1", 4, "")
		h.join(t, "a", "R1")
		h.connect("x")

		_, err := h.coord.ChatMessage("a", "   ")
		assert.ErrorIs(t, err, domain.ErrChatEmpty)
		_, err = h.coord.ChatMessage("x", "hi")
		assert.ErrorIs(t, err, domain.ErrNotJoined)
	})
}

func TestReportQuality(t *testing.T) {
	h := newHarness(t)
	room := h.room(t, "R1", 4, "")
	a := h.join(t, "a", "R1")
	b := h.join(t, "b", "R1")
	a.reset()
	b.reset()

	h.coord.ReportQuality("a", "poor")
	assert.Zero(t, a.count(api.TypeConnectionQuality), "sender is excluded")
	ev := lastOf[api.QualityChanged](t, b, api.TypeConnectionQuality)
	assert.Equal(t, domain.QualityPoor, ev.Level)
	assert.Equal(t, domain.ConnectionID("a"), ev.ConnectionID)
	assert.Equal(t, domain.QualityPoor, room.participantList()[0].ConnectionQuality)

	h.coord.ReportQuality("a", "excellent")
	assert.Equal(t, 1, b.count(api.TypeConnectionQuality))
}

func TestWhoAmI(t *testing.T) {
	h := newHarness(t)
	h.room(t, "R1", 4, "")
	h.connect("x")
	assert.Equal(t, api.WhoAmI{Type: api.TypeWhoAmI, ConnectionID: "x"}, h.coord.WhoAmI("x"))

	h.join(t, "a", "R1")
	got := h.coord.WhoAmI("a")
	assert.Equal(t, domain.RoomID("R1"), got.RoomID)
	assert.Equal(t, "user a", got.DisplayName)
}
