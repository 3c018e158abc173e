package app

import (
	"errors"
	"fmt"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join admits sid into the requested room. Admission errors are reported to
// the caller as join-error and returned; the connection stays Unjoined.
func (c *Coordinator) Join(sid domain.ConnectionID, req api.JoinRoom) error {
	s, ok := c.Registry.get(sid)
	if !ok {
		return domain.ErrUnknownConnection
	}
	roomID := domain.RoomID(req.RoomID)

	p, err := domain.NewParticipant(sid, req.DisplayName, c.now())
	if err != nil {
		return c.rejectJoin(s, roomID, err)
	}
	if err := joinable(s.current()); err != nil {
		return c.rejectJoin(s, roomID, err)
	}
	room, ok := c.Rooms.Get(roomID)
	if !ok {
		return c.rejectJoin(s, roomID, domain.ErrRoomNotFound)
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if err := room.admits(req.Password); err != nil {
		return c.rejectJoin(s, roomID, err)
	}
	if !s.enter(room, p.DisplayName) {
		return c.rejectJoin(s, roomID, joinable(s.current()))
	}
	p = room.add(p, s.conn)
	c.Metrics.joined("ok")
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("room", string(roomID)).
		Str("name", p.DisplayName).Bool("host", p.IsHost).Msg("joined")

	participants := room.snapshot()
	c.sendTo(room, sid, api.RoomJoined{
		Type:         api.TypeRoomJoined,
		RoomID:       roomID,
		ConnectionID: sid,
		Participants: participants,
		IsHost:       p.IsHost,
		ChatHistory:  room.chat.Snapshot(),
		MaxCapacity:  room.settings.MaxCapacity,
		IsLocked:     room.locked,
		IsRecording:  room.recording,
	})
	c.publish(room, sid, api.ParticipantEvent{Type: api.TypeUserJoined, Participant: p})
	c.publish(room, "", api.ParticipantsUpdated{Type: api.TypeParticipantsUpdated, Participants: participants})
	return nil
}

// joinable reports why a connection in state st may not join.
func joinable(st connState) error {
	switch st {
	case stateUnjoined:
		return nil
	case stateLeft:
		return domain.ErrSessionLeft
	}
	return domain.ErrAlreadyJoined
}

func (c *Coordinator) rejectJoin(s *session, roomID domain.RoomID, err error) error {
	reason := domain.Reason(err)
	c.Metrics.joined(reason)
	log.Info().Err(err).Str("module", "app.coordinator").Str("sid", string(s.id)).Str("room", string(roomID)).
		Msg("join rejected")
	if f, ok := encode(api.JoinError{Type: api.TypeJoinError, Reason: reason, Message: err.Error()}); ok {
		if sendErr := s.conn.TrySend(f); sendErr != nil {
			log.Warn().Err(sendErr).Str("module", "app.coordinator").Str("sid", string(s.id)).Msg("join-error not delivered")
		}
	}
	return fmt.Errorf("join %s: %w", roomID, err)
}

// Leave is the explicit leave-room request. Only the first of Leave,
// Disconnect or a host removal has any effect.
func (c *Coordinator) Leave(sid domain.ConnectionID) {
	c.leave(sid, "leave")
}

func (c *Coordinator) leave(sid domain.ConnectionID, reason string) bool {
	s, ok := c.Registry.get(sid)
	if !ok {
		return false
	}
	room, _, ok := s.joined()
	if !ok {
		return false
	}

	room.mu.Lock()
	if !s.exit() {
		// removed by the host in the meantime
		room.mu.Unlock()
		return false
	}
	c.depart(room, sid)
	room.mu.Unlock()

	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("room", string(room.ID())).
		Str("reason", reason).Msg("left")
	c.Rooms.RemoveIfEmpty(room.ID())
	return true
}

// depart removes id from the room, re-elects the host and tells everyone
// left behind. Caller holds room.mu and has already moved the session to Left.
func (c *Coordinator) depart(room *Room, id domain.ConnectionID) {
	removed, newHost, ok := room.remove(id)
	if !ok {
		log.Warn().Str("module", "app.coordinator").Str("sid", string(id)).Str("room", string(room.ID())).
			Msg("departing session not in room")
		return
	}
	c.Metrics.departed()
	c.publish(room, "", api.ParticipantEvent{Type: api.TypeUserLeft, Participant: removed})
	if newHost != nil {
		log.Info().Str("module", "app.coordinator").Str("room", string(room.ID())).
			Str("host", string(newHost.ConnectionID)).Msg("host promoted")
		c.publish(room, "", api.ParticipantEvent{Type: api.TypeNewHost, Participant: *newHost})
	}
	c.publish(room, "", api.ParticipantsUpdated{Type: api.TypeParticipantsUpdated, Participants: room.snapshot()})
}

// IsAdmissionError reports whether err is one of the join-time rejections.
func IsAdmissionError(err error) bool {
	return errors.Is(err, domain.ErrRoomNotFound) ||
		errors.Is(err, domain.ErrRoomFull) ||
		errors.Is(err, domain.ErrRoomLocked) ||
		errors.Is(err, domain.ErrIncorrectPassword)
}
