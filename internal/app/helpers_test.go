package app

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return core.ErrConnectionClosed
	}
	if f.full {
		return core.ErrBackpressure
	}
	f.frames = append(f.frames, append(core.Frame(nil), fr...))
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) all() []core.Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Frame(nil), f.frames...)
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	f.frames = nil
	f.mu.Unlock()
}

func (f *fakeConn) types() []string {
	var out []string
	for _, fr := range f.all() {
		var env api.Envelope
		if err := json.Unmarshal(fr, &env); err == nil {
			out = append(out, env.Type)
		}
	}
	return out
}

func (f *fakeConn) count(typ string) int {
	n := 0
	for _, t := range f.types() {
		if t == typ {
			n++
		}
	}
	return n
}

// ofType returns the raw frames of one event type in arrival order.
func (f *fakeConn) ofType(typ string) []core.Frame {
	var out []core.Frame
	for _, fr := range f.all() {
		var env api.Envelope
		if err := json.Unmarshal(fr, &env); err == nil && env.Type == typ {
			out = append(out, fr)
		}
	}
	return out
}

func lastOf[T any](t *testing.T, f *fakeConn, typ string) T {
	t.Helper()
	frames := f.ofType(typ)
	require.NotEmpty(t, frames, "no %s frame", typ)
	var v T
	require.NoError(t, json.Unmarshal(frames[len(frames)-1], &v))
	return v
}

type harness struct {
	coord *Coordinator
	rooms *RoomManager
	conns map[domain.ConnectionID]*fakeConn
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	rooms := NewRoomManager(RoomManagerOptions{ChatHistory: 5, Metrics: metrics})
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	return &harness{
		coord: &Coordinator{
			Registry: NewRegistry(),
			Rooms:    rooms,
			Policy:   SimplePolicy{},
			Metrics:  metrics,
			Now: func() time.Time {
				mu.Lock()
				defer mu.Unlock()
				clock = clock.Add(time.Second)
				return clock
			},
		},
		rooms: rooms,
		conns: make(map[domain.ConnectionID]*fakeConn),
	}
}

func (h *harness) room(t *testing.T, id string, capacity int, password string) *Room {
	t.Helper()
	r, err := h.rooms.Create(domain.RoomSettings{
		ID: domain.RoomID(id), OwnerName: "owner", MaxCapacity: capacity, Password: password,
	})
	require.NoError(t, err)
	return r
}

func (h *harness) connect(id string) *fakeConn {
	conn := &fakeConn{}
	h.conns[domain.ConnectionID(id)] = conn
	h.coord.Connect(domain.ConnectionID(id), conn)
	return conn
}

func (h *harness) join(t *testing.T, id, roomID string) *fakeConn {
	t.Helper()
	conn := h.connect(id)
	require.NoError(t, h.coord.Join(domain.ConnectionID(id), api.JoinRoom{RoomID: roomID, DisplayName: "user " + id}))
	return conn
}

func hosts(ps []domain.Participant) []domain.ConnectionID {
	var out []domain.ConnectionID
	for _, p := range ps {
		if p.IsHost {
			out = append(out, p.ConnectionID)
		}
	}
	return out
}

func ids(ps []domain.Participant) []domain.ConnectionID {
	out := make([]domain.ConnectionID, len(ps))
	for i, p := range ps {
		out[i] = p.ConnectionID
	}
	return out
}
