package app

import (
	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// asHost locks the caller's current room and runs fn only if the caller is
// its host there. Anyone else is silently ignored.
func (c *Coordinator) asHost(sid domain.ConnectionID, command string, fn func(room *Room)) {
	_, room, _, ok := c.joined(sid, command)
	if !ok {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if !room.isHost(sid) {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).Str("room", string(room.ID())).
			Str("command", command).Msg("not host, ignored")
		return
	}
	log.Info().Str("module", "app.coordinator").Str("sid", string(sid)).Str("room", string(room.ID())).
		Str("command", command).Msg("host command")
	fn(room)
}

// MuteAll mutes everybody but the host.
func (c *Coordinator) MuteAll(sid domain.ConnectionID) {
	c.asHost(sid, api.TypeMuteAll, func(room *Room) {
		for _, m := range room.members {
			if m.p.ConnectionID == sid {
				continue
			}
			m.p.IsMuted = true
			c.sendTo(room, m.p.ConnectionID, api.Notice{Type: api.TypeHostMutedYou})
		}
		c.publish(room, "", api.ParticipantsUpdated{Type: api.TypeParticipantsUpdated, Participants: room.snapshot()})
	})
}

func (c *Coordinator) MuteParticipant(sid, target domain.ConnectionID) {
	c.asHost(sid, api.TypeMuteParticipant, func(room *Room) {
		m := room.member(target)
		if m == nil {
			return
		}
		m.p.IsMuted = true
		c.sendTo(room, target, api.Notice{Type: api.TypeHostMutedYou})
		c.publish(room, "", api.ParticipantStatus{
			Type:         api.TypeParticipantStatus,
			ConnectionID: target,
			Field:        domain.StatusMuted,
			Value:        true,
		})
		c.publish(room, "", api.ParticipantsUpdated{Type: api.TypeParticipantsUpdated, Participants: room.snapshot()})
	})
}

// RemoveParticipant forces target out of the room. Its session moves to
// Left right away, so a later leave or disconnect from it is a no-op.
func (c *Coordinator) RemoveParticipant(sid, target domain.ConnectionID) {
	var removed bool
	var roomID domain.RoomID
	c.asHost(sid, api.TypeRemoveParticipant, func(room *Room) {
		if target == sid || room.member(target) == nil {
			return
		}
		ts, ok := c.Registry.get(target)
		if !ok || !ts.exit() {
			return
		}
		c.sendTo(room, target, api.Notice{Type: api.TypeRemovedByHost})
		c.depart(room, target)
		removed, roomID = true, room.ID()
	})
	if removed {
		log.Info().Str("module", "app.coordinator").Str("sid", string(target)).Str("room", string(roomID)).
			Msg("removed by host")
		c.Rooms.RemoveIfEmpty(roomID)
	}
}

func (c *Coordinator) LockRoom(sid domain.ConnectionID) {
	c.asHost(sid, api.TypeLockRoom, func(room *Room) {
		room.locked = true
		c.publish(room, "", api.Notice{Type: api.TypeRoomLocked})
	})
}

func (c *Coordinator) UnlockRoom(sid domain.ConnectionID) {
	c.asHost(sid, api.TypeUnlockRoom, func(room *Room) {
		room.locked = false
		c.publish(room, "", api.Notice{Type: api.TypeRoomUnlocked})
	})
}

// StartRecording only flips the informational flag; no media is recorded.
func (c *Coordinator) StartRecording(sid domain.ConnectionID) {
	c.asHost(sid, api.TypeStartRecording, func(room *Room) {
		room.recording = true
		c.publish(room, "", api.Notice{Type: api.TypeRecordingStarted})
	})
}

func (c *Coordinator) StopRecording(sid domain.ConnectionID) {
	c.asHost(sid, api.TypeStopRecording, func(room *Room) {
		room.recording = false
		c.publish(room, "", api.Notice{Type: api.TypeRecordingStopped})
	})
}
