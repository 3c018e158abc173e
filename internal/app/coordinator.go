package app

import (
	"encoding/json"
	"time"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Coordinator is the session state machine. Every connection goes
// Unjoined -> Joined -> Left; each handler mutates the caller's room under
// that room's lock and publishes the resulting notifications before
// releasing it.
type Coordinator struct {
	Registry *Registry
	Rooms    *RoomManager
	Policy   Policy
	Metrics  *Metrics
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Coordinator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Connect registers a new live connection in the Unjoined state.
func (c *Coordinator) Connect(sid domain.ConnectionID, conn core.SignalConnection) {
	c.Registry.Bind(sid, conn)
}

// Disconnect runs the leave path and forgets the connection.
// It is safe to call after Leave or after a host removal.
func (c *Coordinator) Disconnect(sid domain.ConnectionID) {
	c.leave(sid, "disconnect")
	c.Registry.Unbind(sid)
}

// WhoAmI describes the connection, including its room while Joined.
func (c *Coordinator) WhoAmI(sid domain.ConnectionID) api.WhoAmI {
	resp := api.WhoAmI{Type: api.TypeWhoAmI, ConnectionID: sid}
	if s, ok := c.Registry.get(sid); ok {
		if room, name, ok := s.joined(); ok {
			resp.RoomID = room.ID()
			resp.DisplayName = name
		}
	}
	return resp
}

// joined looks up a Joined caller. Anything else is a race no-op.
func (c *Coordinator) joined(sid domain.ConnectionID, event string) (*session, *Room, string, bool) {
	s, ok := c.Registry.get(sid)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).Str("event", event).Msg("unknown connection")
		return nil, nil, "", false
	}
	room, name, ok := s.joined()
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("sid", string(sid)).Str("event", event).
			Str("state", s.current().String()).Msg("not joined, dropped")
		return nil, nil, "", false
	}
	return s, room, name, true
}

// publish fans f out to the room, skipping skip when non-empty.
// Caller holds room.mu.
func (c *Coordinator) publish(room *Room, skip domain.ConnectionID, v any) {
	f, ok := encode(v)
	if !ok {
		return
	}
	res := core.Publish(room.recipients(), skip, f)
	c.backpressure(room.ID(), res)
}

// sendTo delivers v to one room member. Caller holds room.mu.
func (c *Coordinator) sendTo(room *Room, id domain.ConnectionID, v any) {
	m := room.member(id)
	if m == nil {
		return
	}
	f, ok := encode(v)
	if !ok {
		return
	}
	res := core.Publish([]core.Recipient{{ID: id, Conn: m.conn}}, "", f)
	c.backpressure(room.ID(), res)
}

func (c *Coordinator) backpressure(roomID domain.RoomID, res core.PublishResult) {
	if len(res.Dropped) == 0 {
		return
	}
	c.Metrics.droppedFrames(len(res.Dropped))
	if c.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch c.Policy.OnBackPressure(roomID, slow) {
		case KickMember:
			log.Warn().Str("module", "app.coordinator").Str("room", string(roomID)).Str("sid", string(slow.ID)).
				Msg("send buffer full, kicking")
			// Close only unblocks the transport; its disconnect callback
			// re-enters the coordinator after room.mu is released.
			slow.Conn.Close()
		case DropFrame, NoAction:
		}
	}
}

func encode(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("encode frame")
		return nil, false
	}
	return b, true
}

func newMessageID() string { return uuid.NewString() }
