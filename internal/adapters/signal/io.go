package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Meet/internal/api"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump is the only reader of the connection. Its exit is the
// transport-level disconnect notification.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, sid domain.ConnectionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		cancel()
		ctl.Coord.Disconnect(sid)
		ctl.Chat.Forget(string(sid))
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	})

	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
			}
			return
		}
		ctl.handleSignal(sid, c, data)
	}
}

func (ctl *SignalWSController) handleSignal(sid domain.ConnectionID, c *WsSignalConn, data []byte) {
	var env api.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		ctl.sendError(c, "bad_json")
		return
	}

	switch env.Type {
	case api.TypeJoinRoom:
		ctl.handleJoin(sid, c, data)
	case api.TypeLeaveRoom:
		ctl.Coord.Leave(sid)
	case api.TypePing:
		ctl.handlePing(c)
	case api.TypeWhoAmI:
		ctl.handleWhoAmI(sid, c)
	case string(api.SignalOffer), string(api.SignalAnswer), string(api.SignalCandidate):
		ctl.handleRelay(sid, c, api.SignalKind(env.Type), data)
	case api.TypeChatMessage:
		ctl.handleChat(sid, c, data)
	case api.TypeToggleAudio, api.TypeToggleVideo, api.TypeRaiseHand,
		api.TypeStartScreenShare, api.TypeStopScreenShare:
		ctl.handleStatus(sid, c, env.Type, data)
	case api.TypeSendReaction:
		ctl.handleReaction(sid, c, data)
	case api.TypeConnectionQuality:
		ctl.handleQuality(sid, c, data)
	case api.TypeMuteAll, api.TypeMuteParticipant, api.TypeRemoveParticipant,
		api.TypeLockRoom, api.TypeUnlockRoom, api.TypeStartRecording, api.TypeStopRecording:
		ctl.handleHost(sid, c, env.Type, data)
	default:
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(c, "unknown_type")
	}
}

// decode unmarshals a typed payload and answers bad_payload on failure.
func decode[T any](ctl *SignalWSController, c *WsSignalConn, data []byte) (T, bool) {
	var p T
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad payload")
		ctl.sendError(c, "bad_payload")
		return p, false
	}
	return p, true
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("sendJSON dropped")
	}
}

func (ctl *SignalWSController) sendError(c *WsSignalConn, code string) {
	ctl.sendJSON(c, api.Error{Type: api.TypeError, Error: code})
}
