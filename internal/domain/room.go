package domain

import "time"

type RoomID string

// RoomSettings is what the create-room collaborator hands to the registry.
type RoomSettings struct {
	ID          RoomID    `json:"roomId"`
	OwnerName   string    `json:"ownerName"`
	MaxCapacity int       `json:"maxCapacity"`
	Password    string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s RoomSettings) Validate() error {
	if s.ID == "" {
		return ErrInvalidRoomID
	}
	if s.MaxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// RoomInfo is a read-only view of a room for the REST API.
type RoomInfo struct {
	ID               RoomID    `json:"roomId"`
	OwnerName        string    `json:"ownerName"`
	ParticipantCount int       `json:"participantCount"`
	MaxCapacity      int       `json:"maxCapacity"`
	IsLocked         bool      `json:"isLocked"`
	HasPassword      bool      `json:"hasPassword"`
	IsRecording      bool      `json:"isRecording"`
	CreatedAt        time.Time `json:"createdAt"`
}
