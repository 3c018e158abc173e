// Package domain contains entity without logic, just meta-data
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxDisplayNameLen = 36

// ConnectionID is assigned by the transport to one live client connection.
type ConnectionID string

type Quality string

const (
	QualityGood Quality = "good"
	QualityFair Quality = "fair"
	QualityPoor Quality = "poor"
)

func ParseQuality(s string) (Quality, error) {
	switch q := Quality(strings.ToLower(strings.TrimSpace(s))); q {
	case QualityGood, QualityFair, QualityPoor:
		return q, nil
	}
	return "", ErrInvalidQuality
}

// StatusField names one of the client-reported participant flags.
type StatusField string

const (
	StatusMuted         StatusField = "isMuted"
	StatusVideoOff      StatusField = "isVideoOff"
	StatusHandRaised    StatusField = "isHandRaised"
	StatusScreenSharing StatusField = "isScreenSharing"
)

// Participant describes one connected user. Status flags are advisory and
// never checked against the actual media.
type Participant struct {
	ConnectionID      ConnectionID `json:"connectionId"`
	DisplayName       string       `json:"displayName"`
	JoinedAt          time.Time    `json:"joinedAt"`
	IsHost            bool         `json:"isHost"`
	IsMuted           bool         `json:"isMuted"`
	IsVideoOff        bool         `json:"isVideoOff"`
	IsHandRaised      bool         `json:"isHandRaised"`
	IsScreenSharing   bool         `json:"isScreenSharing"`
	ConnectionQuality Quality      `json:"connectionQuality"`
}

func NewParticipant(id ConnectionID, displayName string, joinedAt time.Time) (Participant, error) {
	name, err := NormalizeDisplayName(displayName)
	if err != nil {
		return Participant{}, err
	}
	return Participant{
		ConnectionID:      id,
		DisplayName:       name,
		JoinedAt:          joinedAt,
		ConnectionQuality: QualityGood,
	}, nil
}

// NormalizeDisplayName trims the name and checks its length in runes.
func NormalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrDisplayNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return "", ErrDisplayNameTooLong
	}
	return name, nil
}

// SetStatus updates the flag named by f. It reports false for an unknown field.
func (p *Participant) SetStatus(f StatusField, v bool) bool {
	switch f {
	case StatusMuted:
		p.IsMuted = v
	case StatusVideoOff:
		p.IsVideoOff = v
	case StatusHandRaised:
		p.IsHandRaised = v
	case StatusScreenSharing:
		p.IsScreenSharing = v
	default:
		return false
	}
	return true
}
