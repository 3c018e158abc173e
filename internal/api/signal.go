package api

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/domain"
)

type signalHead struct {
	Type       SignalKind          `json:"type"`
	Sender     domain.ConnectionID `json:"sender"`
	SenderName string              `json:"senderName"`
}

// EncodeSignal builds the outbound relay frame. The payload bytes are copied
// verbatim: json.Marshal would compact and re-escape a RawMessage.
func EncodeSignal(kind SignalKind, sender domain.ConnectionID, senderName string, payload json.RawMessage) ([]byte, error) {
	head, err := json.Marshal(signalHead{Type: kind, Sender: sender, SenderName: senderName})
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	const key = `,"payload":`
	out := make([]byte, 0, len(head)+len(key)+len(payload))
	out = append(out, head[:len(head)-1]...)
	out = append(out, key...)
	out = append(out, payload...)
	out = append(out, '}')
	return out, nil
}
