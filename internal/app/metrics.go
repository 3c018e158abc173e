package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meet"

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	rooms        prometheus.Gauge
	participants prometheus.Gauge
	joins        *prometheus.CounterVec
	relayed      *prometheus.CounterVec
	chat         prometheus.Counter
	dropped      prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rooms: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "rooms_active",
			Help: "Rooms currently held in the registry.",
		}),
		participants: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "participants_active",
			Help: "Participants currently joined to a room.",
		}),
		joins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "joins_total",
			Help: "Join attempts by result.",
		}, []string{"result"}),
		relayed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "signals_relayed_total",
			Help: "Negotiation messages by kind and result.",
		}, []string{"kind", "result"}),
		chat: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "chat_messages_total",
			Help: "Chat messages accepted.",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frames_dropped_total",
			Help: "Outbound frames dropped on a full send buffer.",
		}),
	}
}

func (m *Metrics) roomsSet(n int) {
	if m != nil {
		m.rooms.Set(float64(n))
	}
}

func (m *Metrics) joined(result string) {
	if m == nil {
		return
	}
	m.joins.WithLabelValues(result).Inc()
	if result == "ok" {
		m.participants.Inc()
	}
}

func (m *Metrics) departed() {
	if m != nil {
		m.participants.Dec()
	}
}

func (m *Metrics) relay(kind, result string) {
	if m != nil {
		m.relayed.WithLabelValues(kind, result).Inc()
	}
}

func (m *Metrics) chatMessage() {
	if m != nil {
		m.chat.Inc()
	}
}

func (m *Metrics) droppedFrames(n int) {
	if m != nil && n > 0 {
		m.dropped.Add(float64(n))
	}
}
