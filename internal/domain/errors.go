package domain

import "errors"

// Admission errors, reported to the joining connection only.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrRoomLocked        = errors.New("room is locked")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrAlreadyJoined     = errors.New("connection already joined")
	// ErrSessionLeft means the connection left or was removed; it must reconnect to join again.
	ErrSessionLeft       = errors.New("connection already left, reconnect to join")
)

var (
	ErrDuplicateRoomID    = errors.New("duplicate room id")
	ErrInvalidRoomID      = errors.New("invalid room id")
	ErrInvalidCapacity    = errors.New("max capacity must be positive")
	ErrDisplayNameEmpty   = errors.New("display name empty")
	ErrDisplayNameTooLong = errors.New("display name too long")
	ErrChatEmpty          = errors.New("chat message empty")
	ErrChatTooLong        = errors.New("chat message too long")
	ErrInvalidQuality     = errors.New("invalid connection quality")
	ErrNotJoined          = errors.New("connection not joined")
	ErrUnknownConnection  = errors.New("unknown connection")
)

// Reason maps an admission error to its stable wire code.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrRoomLocked):
		return "room_locked"
	case errors.Is(err, ErrIncorrectPassword):
		return "incorrect_password"
	case errors.Is(err, ErrDisplayNameEmpty), errors.Is(err, ErrDisplayNameTooLong):
		return "invalid_name"
	case errors.Is(err, ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, ErrSessionLeft):
		return "session_left"
	}
	return "internal"
}
