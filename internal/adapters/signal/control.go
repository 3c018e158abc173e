package signal

import "github.com/dkeye/Meet/internal/api"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendJSON(conn, api.Notice{Type: api.TypePong})
}
