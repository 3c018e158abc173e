package signal

import (
	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// handleJoin forwards the request; the coordinator itself answers with
// room-joined or join-error.
func (ctl *SignalWSController) handleJoin(sid domain.ConnectionID, conn *WsSignalConn, data []byte) {
	p, ok := decode[api.JoinRoom](ctl, conn, data)
	if !ok {
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room_id", p.RoomID).Msg("join")
	if err := ctl.Coord.Join(sid, p); err != nil && !app.IsAdmissionError(err) {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("join failed")
	}
}

func (ctl *SignalWSController) handleHost(sid domain.ConnectionID, conn *WsSignalConn, typ string, data []byte) {
	switch typ {
	case api.TypeMuteAll:
		ctl.Coord.MuteAll(sid)
	case api.TypeLockRoom:
		ctl.Coord.LockRoom(sid)
	case api.TypeUnlockRoom:
		ctl.Coord.UnlockRoom(sid)
	case api.TypeStartRecording:
		ctl.Coord.StartRecording(sid)
	case api.TypeStopRecording:
		ctl.Coord.StopRecording(sid)
	case api.TypeMuteParticipant, api.TypeRemoveParticipant:
		p, ok := decode[api.Target](ctl, conn, data)
		if !ok {
			return
		}
		target := domain.ConnectionID(p.Target)
		if typ == api.TypeMuteParticipant {
			ctl.Coord.MuteParticipant(sid, target)
		} else {
			ctl.Coord.RemoveParticipant(sid, target)
		}
	}
}
