package app

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards one negotiation message to target, tagged with the true
// sender. The payload is never parsed. Misses are logged and dropped: the
// peer's own negotiation timeout is what notices them.
func (c *Coordinator) Relay(sid domain.ConnectionID, kind api.SignalKind, target domain.ConnectionID, payload json.RawMessage) {
	if !kind.Valid() {
		log.Warn().Str("module", "app.relay").Str("sid", string(sid)).Str("kind", string(kind)).Msg("unknown signal kind")
		return
	}
	_, _, name, ok := c.joined(sid, string(kind))
	if !ok {
		c.Metrics.relay(string(kind), "not_joined")
		return
	}
	ts, ok := c.Registry.get(target)
	if !ok || target == "" {
		c.Metrics.relay(string(kind), "no_target")
		log.Warn().Str("module", "app.relay").Str("sid", string(sid)).Str("target", string(target)).
			Str("kind", string(kind)).Msg("relay target gone")
		return
	}
	frame, err := api.EncodeSignal(kind, sid, name, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Msg("encode signal")
		return
	}
	if err := ts.conn.TrySend(core.Frame(frame)); err != nil {
		c.Metrics.relay(string(kind), "dropped")
		log.Warn().Err(err).Str("module", "app.relay").Str("sid", string(sid)).Str("target", string(target)).
			Str("kind", string(kind)).Msg("relay not delivered")
		return
	}
	c.Metrics.relay(string(kind), "ok")
	log.Debug().Str("module", "app.relay").Str("sid", string(sid)).Str("target", string(target)).
		Str("kind", string(kind)).Int("bytes", len(payload)).Msg("relayed")
}
