package signal

import (
	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleStatus(sid domain.ConnectionID, conn *WsSignalConn, typ string, data []byte) {
	switch typ {
	case api.TypeToggleAudio:
		if p, ok := decode[api.ToggleAudio](ctl, conn, data); ok {
			ctl.Coord.ToggleAudio(sid, p.IsMuted)
		}
	case api.TypeToggleVideo:
		if p, ok := decode[api.ToggleVideo](ctl, conn, data); ok {
			ctl.Coord.ToggleVideo(sid, p.IsVideoOff)
		}
	case api.TypeRaiseHand:
		if p, ok := decode[api.RaiseHand](ctl, conn, data); ok {
			ctl.Coord.RaiseHand(sid, p.IsHandRaised)
		}
	case api.TypeStartScreenShare:
		ctl.Coord.StartScreenShare(sid)
	case api.TypeStopScreenShare:
		ctl.Coord.StopScreenShare(sid)
	}
}

func (ctl *SignalWSController) handleChat(sid domain.ConnectionID, conn *WsSignalConn, data []byte) {
	p, ok := decode[api.ChatIn](ctl, conn, data)
	if !ok {
		return
	}
	if !ctl.Chat.Allow(string(sid)) {
		ctl.sendError(conn, "rate_limited")
		return
	}
	if _, err := ctl.Coord.ChatMessage(sid, p.Text); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("chat rejected")
		ctl.sendError(conn, "bad_chat")
	}
}

func (ctl *SignalWSController) handleReaction(sid domain.ConnectionID, conn *WsSignalConn, data []byte) {
	p, ok := decode[api.Reaction](ctl, conn, data)
	if !ok {
		return
	}
	if !ctl.Chat.Allow(string(sid)) {
		ctl.sendError(conn, "rate_limited")
		return
	}
	ctl.Coord.SendReaction(sid, p.Symbol)
}

func (ctl *SignalWSController) handleQuality(sid domain.ConnectionID, conn *WsSignalConn, data []byte) {
	if p, ok := decode[api.QualityReport](ctl, conn, data); ok {
		ctl.Coord.ReportQuality(sid, p.Level)
	}
}
