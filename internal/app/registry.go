package app

import (
	"sync"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

type connState int

const (
	stateUnjoined connState = iota
	stateJoined
	stateLeft
)

func (s connState) String() string {
	switch s {
	case stateUnjoined:
		return "unjoined"
	case stateJoined:
		return "joined"
	case stateLeft:
		return "left"
	}
	return "unknown"
}

// session is the coordinator's view of one live connection.
// mu is a leaf lock: it may be taken while a Room.mu is held, never the other way round.
type session struct {
	id   domain.ConnectionID
	conn core.SignalConnection

	mu    sync.Mutex
	state connState
	room  *Room
	name  string
}

// joined returns the session's room and display name while it is Joined.
func (s *session) joined() (*Room, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateJoined {
		return nil, "", false
	}
	return s.room, s.name, true
}

func (s *session) current() connState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// enter moves Unjoined -> Joined.
func (s *session) enter(room *Room, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateUnjoined {
		return false
	}
	s.state, s.room, s.name = stateJoined, room, name
	return true
}

// exit moves Joined -> Left and reports whether this call did it.
func (s *session) exit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateJoined {
		return false
	}
	s.state = stateLeft
	return true
}

// Registry maps connection ids to their sessions, independently of the
// transport object's lifetime.
type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnectionID]*session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[domain.ConnectionID]*session)}
}

func (r *Registry) Bind(sid domain.ConnectionID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &session{id: sid, conn: conn}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

func (r *Registry) get(sid domain.ConnectionID) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sid]
	return s, ok
}

func (r *Registry) Unbind(sid domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
