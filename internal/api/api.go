// Package api holds the signaling wire contract with the browser client.
// Every frame is a flat JSON object carrying its event name in "type".
package api

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/domain"
)

// Inbound event names.
const (
	TypeJoinRoom          = "join-room"
	TypeLeaveRoom         = "leave-room"
	TypeChatMessage       = "chat-message"
	TypeToggleAudio       = "toggle-audio"
	TypeToggleVideo       = "toggle-video"
	TypeRaiseHand         = "raise-hand"
	TypeStartScreenShare  = "start-screen-share"
	TypeStopScreenShare   = "stop-screen-share"
	TypeSendReaction      = "send-reaction"
	TypeConnectionQuality = "connection-quality"
	TypeMuteAll           = "mute-all"
	TypeMuteParticipant   = "mute-participant"
	TypeRemoveParticipant = "remove-participant"
	TypeLockRoom          = "lock-room"
	TypeUnlockRoom        = "unlock-room"
	TypeStartRecording    = "start-recording"
	TypeStopRecording     = "stop-recording"
	TypePing              = "ping"
	TypeWhoAmI            = "whoami"
)

// Outbound event names.
const (
	TypeRoomJoined          = "room-joined"
	TypeJoinError           = "join-error"
	TypeParticipantsUpdated = "participants-updated"
	TypeUserJoined          = "user-joined"
	TypeUserLeft            = "user-left"
	TypeNewHost             = "new-host"
	TypeParticipantStatus   = "participant-status"
	TypeUserReaction        = "user-reaction"
	TypeHostMutedYou        = "host-muted-you"
	TypeRemovedByHost       = "removed-by-host"
	TypeRoomLocked          = "room-locked"
	TypeRoomUnlocked        = "room-unlocked"
	TypeRecordingStarted    = "recording-started"
	TypeRecordingStopped    = "recording-stopped"
	TypePong                = "pong"
	TypeError               = "error"
)

// SignalKind is one of the negotiation messages the relay forwards.
// The same name is used in both directions.
type SignalKind string

const (
	SignalOffer     SignalKind = "offer"
	SignalAnswer    SignalKind = "answer"
	SignalCandidate SignalKind = "ice-candidate"
)

func (k SignalKind) Valid() bool {
	switch k {
	case SignalOffer, SignalAnswer, SignalCandidate:
		return true
	}
	return false
}

// Envelope is decoded first to route a frame by its type.
type Envelope struct {
	Type string `json:"type"`
}

type JoinRoom struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password,omitempty"`
}

type Signal struct {
	Target  string          `json:"target"`
	Payload json.RawMessage `json:"payload"`
}

type ChatIn struct {
	Text string `json:"text"`
}

type ToggleAudio struct {
	IsMuted bool `json:"isMuted"`
}

type ToggleVideo struct {
	IsVideoOff bool `json:"isVideoOff"`
}

type RaiseHand struct {
	IsHandRaised bool `json:"isHandRaised"`
}

type Reaction struct {
	Symbol string `json:"symbol"`
}

type QualityReport struct {
	Level string `json:"level"`
}

type Target struct {
	Target string `json:"target"`
}

type RoomJoined struct {
	Type         string               `json:"type"`
	RoomID       domain.RoomID        `json:"roomId"`
	ConnectionID domain.ConnectionID  `json:"connectionId"`
	Participants []domain.Participant `json:"participants"`
	IsHost       bool                 `json:"isHost"`
	ChatHistory  []domain.ChatMessage `json:"chatHistory"`
	MaxCapacity  int                  `json:"maxCapacity"`
	IsLocked     bool                 `json:"isLocked"`
	IsRecording  bool                 `json:"isRecording"`
}

type JoinError struct {
	Type    string `json:"type"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type ParticipantsUpdated struct {
	Type         string               `json:"type"`
	Participants []domain.Participant `json:"participants"`
}

// ParticipantEvent carries user-joined, user-left and new-host.
type ParticipantEvent struct {
	Type        string             `json:"type"`
	Participant domain.Participant `json:"participant"`
}

type ParticipantStatus struct {
	Type         string              `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
	Field        domain.StatusField  `json:"field"`
	Value        bool                `json:"value"`
}

type UserReaction struct {
	Type         string              `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
	DisplayName  string              `json:"displayName"`
	Symbol       string              `json:"symbol"`
}

type QualityChanged struct {
	Type         string              `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
	Level        domain.Quality      `json:"level"`
}

type ChatOut struct {
	Type    string             `json:"type"`
	Message domain.ChatMessage `json:"message"`
}

// Notice is an event without fields, e.g. host-muted-you or room-locked.
type Notice struct {
	Type string `json:"type"`
}

type Error struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type WhoAmI struct {
	Type         string              `json:"type"`
	ConnectionID domain.ConnectionID `json:"connectionId"`
	DisplayName  string              `json:"displayName,omitempty"`
	RoomID       domain.RoomID       `json:"roomId,omitempty"`
}
