package signal

import (
	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
)

// handleRelay forwards offer, answer and ice-candidate frames. The payload
// stays a json.RawMessage all the way to the target.
func (ctl *SignalWSController) handleRelay(sid domain.ConnectionID, conn *WsSignalConn, kind api.SignalKind, data []byte) {
	p, ok := decode[api.Signal](ctl, conn, data)
	if !ok {
		return
	}
	ctl.Coord.Relay(sid, kind, domain.ConnectionID(p.Target), p.Payload)
}
