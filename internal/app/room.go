package app

import (
	"sync"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
)

const DefaultChatHistory = 100

type member struct {
	p    domain.Participant
	conn core.SignalConnection
}

// Room is one in-memory meeting. Its mutex covers the whole
// read-decide-mutate-publish sequence of a coordinator event, so the
// unexported methods below expect mu to be held by the caller.
type Room struct {
	mu       sync.Mutex
	settings domain.RoomSettings

	// join order; index 0 is next in host succession
	members   []*member
	locked    bool
	recording bool
	closed    bool
	chat      *chatHistory
}

func NewRoom(settings domain.RoomSettings, chatLimit int) *Room {
	if chatLimit <= 0 {
		chatLimit = DefaultChatHistory
	}
	return &Room{settings: settings, chat: newChatHistory(chatLimit)}
}

func (r *Room) ID() domain.RoomID { return r.settings.ID }

func (r *Room) Info() domain.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.RoomInfo{
		ID:               r.settings.ID,
		OwnerName:        r.settings.OwnerName,
		ParticipantCount: len(r.members),
		MaxCapacity:      r.settings.MaxCapacity,
		IsLocked:         r.locked,
		HasPassword:      r.settings.Password != "",
		IsRecording:      r.recording,
		CreatedAt:        r.settings.CreatedAt,
	}
}

func (r *Room) participantList() []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *Room) chatLog() []domain.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chat.Snapshot()
}

// admits runs the admission sequence for one join attempt.
// A lock only turns joiners away while someone is inside.
func (r *Room) admits(password string) error {
	switch {
	case r.closed:
		return domain.ErrRoomNotFound
	case len(r.members) >= r.settings.MaxCapacity:
		return domain.ErrRoomFull
	case r.settings.Password != "" && password != r.settings.Password:
		return domain.ErrIncorrectPassword
	case r.locked && len(r.members) > 0:
		return domain.ErrRoomLocked
	}
	return nil
}

// add appends p; the first member of an empty room becomes host.
func (r *Room) add(p domain.Participant, conn core.SignalConnection) domain.Participant {
	p.IsHost = len(r.members) == 0
	r.members = append(r.members, &member{p: p, conn: conn})
	return p
}

// remove drops id and promotes the earliest remaining member when the host left.
func (r *Room) remove(id domain.ConnectionID) (removed domain.Participant, newHost *domain.Participant, ok bool) {
	i := r.indexOf(id)
	if i < 0 {
		return removed, nil, false
	}
	removed = r.members[i].p
	r.members = append(r.members[:i], r.members[i+1:]...)
	if removed.IsHost && len(r.members) > 0 {
		r.members[0].p.IsHost = true
		h := r.members[0].p
		newHost = &h
	}
	return removed, newHost, true
}

func (r *Room) indexOf(id domain.ConnectionID) int {
	for i, m := range r.members {
		if m.p.ConnectionID == id {
			return i
		}
	}
	return -1
}

func (r *Room) member(id domain.ConnectionID) *member {
	if i := r.indexOf(id); i >= 0 {
		return r.members[i]
	}
	return nil
}

func (r *Room) isHost(id domain.ConnectionID) bool {
	m := r.member(id)
	return m != nil && m.p.IsHost
}

func (r *Room) empty() bool { return len(r.members) == 0 }

func (r *Room) snapshot() []domain.Participant {
	out := make([]domain.Participant, len(r.members))
	for i, m := range r.members {
		out[i] = m.p
	}
	return out
}

func (r *Room) recipients() []core.Recipient {
	out := make([]core.Recipient, len(r.members))
	for i, m := range r.members {
		out[i] = core.Recipient{ID: m.p.ConnectionID, Conn: m.conn}
	}
	return out
}
