package signal

import "github.com/dkeye/Meet/internal/domain"

func (ctl *SignalWSController) handleWhoAmI(sid domain.ConnectionID, conn *WsSignalConn) {
	ctl.sendJSON(conn, ctl.Coord.WhoAmI(sid))
}
