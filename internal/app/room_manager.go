package app

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

const maxIDAttempts = 16

// RoomManager is the process-wide room id -> Room table.
// Lock order: RoomManager.mu before Room.mu, never the reverse.
type RoomManager struct {
	mu        sync.RWMutex
	rooms     map[domain.RoomID]*Room
	chatLimit int
	idLen     int
	metrics   *Metrics
	now       func() time.Time
}

type RoomManagerOptions struct {
	ChatHistory int
	IDLength    int
	Metrics     *Metrics
}

func NewRoomManager(opts RoomManagerOptions) *RoomManager {
	if opts.IDLength <= 0 {
		opts.IDLength = DefaultRoomIDLength
	}
	return &RoomManager{
		rooms:     make(map[domain.RoomID]*Room),
		chatLimit: opts.ChatHistory,
		idLen:     opts.IDLength,
		metrics:   opts.Metrics,
		now:       time.Now,
	}
}

// Create registers a new empty room under settings.ID.
func (m *RoomManager) Create(settings domain.RoomSettings) (*Room, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = m.now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[settings.ID]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateRoomID, settings.ID)
	}
	room := NewRoom(settings, m.chatLimit)
	m.rooms[settings.ID] = room
	m.metrics.roomsSet(len(m.rooms))
	log.Info().Str("module", "app.rooms").Str("room", string(settings.ID)).Str("owner", settings.OwnerName).
		Int("capacity", settings.MaxCapacity).Msg("room created")
	return room, nil
}

// Open creates a room under a freshly generated id, retrying on collision.
func (m *RoomManager) Open(ownerName string, maxCapacity int, password string) (*Room, error) {
	for i := 0; i < maxIDAttempts; i++ {
		room, err := m.Create(domain.RoomSettings{
			ID:          NewRoomID(m.idLen),
			OwnerName:   ownerName,
			MaxCapacity: maxCapacity,
			Password:    password,
		})
		if errors.Is(err, domain.ErrDuplicateRoomID) {
			continue
		}
		return room, err
	}
	return nil, domain.ErrDuplicateRoomID
}

func (m *RoomManager) Get(id domain.RoomID) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	return room, ok
}

// RemoveIfEmpty deletes the room only if nobody is in it at call time.
// A removed room is marked closed so a join that already holds a pointer
// to it is turned away with ErrRoomNotFound.
func (m *RoomManager) RemoveIfEmpty(id domain.RoomID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[id]
	if !ok {
		return false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if !room.empty() {
		return false
	}
	room.closed = true
	delete(m.rooms, id)
	m.metrics.roomsSet(len(m.rooms))
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room removed")
	return true
}

func (m *RoomManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *RoomManager) List() []domain.RoomInfo {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	out := make([]domain.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
