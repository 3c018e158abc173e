package app

import (
	"strings"
	"unicode/utf8"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

const maxReactionLen = 16

func (c *Coordinator) ToggleAudio(sid domain.ConnectionID, muted bool) {
	c.setStatus(sid, domain.StatusMuted, muted)
}

func (c *Coordinator) ToggleVideo(sid domain.ConnectionID, off bool) {
	c.setStatus(sid, domain.StatusVideoOff, off)
}

func (c *Coordinator) RaiseHand(sid domain.ConnectionID, raised bool) {
	c.setStatus(sid, domain.StatusHandRaised, raised)
}

func (c *Coordinator) StartScreenShare(sid domain.ConnectionID) {
	c.setStatus(sid, domain.StatusScreenSharing, true)
}

func (c *Coordinator) StopScreenShare(sid domain.ConnectionID) {
	c.setStatus(sid, domain.StatusScreenSharing, false)
}

// setStatus updates one advisory flag. If the participant vanished between
// dispatch and handling the status event is still published.
func (c *Coordinator) setStatus(sid domain.ConnectionID, field domain.StatusField, value bool) {
	_, room, _, ok := c.joined(sid, string(field))
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if m := room.member(sid); m != nil {
		m.p.SetStatus(field, value)
	} else {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).Str("field", string(field)).
			Msg("status for missing participant")
	}
	c.publish(room, "", api.ParticipantStatus{
		Type:         api.TypeParticipantStatus,
		ConnectionID: sid,
		Field:        field,
		Value:        value,
	})
}

// SendReaction fans the symbol out to the whole room. Nothing is stored.
func (c *Coordinator) SendReaction(sid domain.ConnectionID, symbol string) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" || utf8.RuneCountInString(symbol) > maxReactionLen {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).Msg("bad reaction, dropped")
		return
	}
	_, room, name, ok := c.joined(sid, api.TypeSendReaction)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	c.publish(room, "", api.UserReaction{
		Type:         api.TypeUserReaction,
		ConnectionID: sid,
		DisplayName:  name,
		Symbol:       symbol,
	})
}

// ChatMessage appends to the room's bounded history and delivers the
// message to every member, sender included.
func (c *Coordinator) ChatMessage(sid domain.ConnectionID, text string) (domain.ChatMessage, error) {
	text, err := domain.NormalizeChatText(text)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	_, room, name, ok := c.joined(sid, api.TypeChatMessage)
	if !ok {
		return domain.ChatMessage{}, domain.ErrNotJoined
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	msg := domain.ChatMessage{
		ID:                 newMessageID(),
		SenderConnectionID: sid,
		SenderName:         name,
		Text:               text,
		Timestamp:          c.now(),
	}
	room.chat.Append(msg)
	c.Metrics.chatMessage()
	c.publish(room, "", api.ChatOut{Type: api.TypeChatMessage, Message: msg})
	return msg, nil
}

// ReportQuality stores the last reported level and tells the others.
func (c *Coordinator) ReportQuality(sid domain.ConnectionID, level string) {
	q, err := domain.ParseQuality(level)
	if err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").Str("sid", string(sid)).Msg("quality report dropped")
		return
	}
	_, room, _, ok := c.joined(sid, api.TypeConnectionQuality)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if m := room.member(sid); m != nil {
		m.p.ConnectionQuality = q
	}
	c.publish(room, sid, api.QualityChanged{Type: api.TypeConnectionQuality, ConnectionID: sid, Level: q})
}
