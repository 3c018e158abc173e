package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{in: "  Ann  ", want: "Ann"},
		{in: "", err: ErrDisplayNameEmpty},
		{in: " \t ", err: ErrDisplayNameEmpty},
		{in: strings.Repeat("я", MaxDisplayNameLen), want: strings.Repeat("я", MaxDisplayNameLen)},
		{in: strings.Repeat("x", MaxDisplayNameLen+1), err: ErrDisplayNameTooLong},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := NormalizeDisplayName(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewParticipant(t *testing.T) {
	at := time.Now()
	p, err := NewParticipant("c1", " Bob ", at)
	require.NoError(t, err)
	assert.Equal(t, Participant{ConnectionID: "c1", DisplayName: "Bob", JoinedAt: at, ConnectionQuality: QualityGood}, p)

	_, err = NewParticipant("c1", "", at)
	assert.ErrorIs(t, err, ErrDisplayNameEmpty)
}

func TestSetStatus(t *testing.T) {
	var p Participant
	assert.True(t, p.SetStatus(StatusMuted, true))
	assert.True(t, p.SetStatus(StatusVideoOff, true))
	assert.True(t, p.SetStatus(StatusHandRaised, true))
	assert.True(t, p.SetStatus(StatusScreenSharing, true))
	assert.False(t, p.SetStatus("isHost", true))
	assert.Equal(t, Participant{IsMuted: true, IsVideoOff: true, IsHandRaised: true, IsScreenSharing: true}, p)
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{"good": QualityGood, " Fair ": QualityFair, "POOR": QualityPoor} {
		got, err := ParseQuality(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseQuality("great")
	assert.ErrorIs(t, err, ErrInvalidQuality)
}

func TestNormalizeChatText(t *testing.T) {
	got, err := NormalizeChatText("  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	_, err = NormalizeChatText("  ")
	assert.ErrorIs(t, err, ErrChatEmpty)
	_, err = NormalizeChatText(strings.Repeat("a", MaxChatTextLen+1))
	assert.ErrorIs(t, err, ErrChatTooLong)
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrRoomNotFound, "room_not_found"},
		{fmt.Errorf("join X: %w", ErrRoomFull), "room_full"},
		{ErrRoomLocked, "room_locked"},
		{ErrIncorrectPassword, "incorrect_password"},
		{ErrDisplayNameEmpty, "invalid_name"},
		{ErrDisplayNameTooLong, "invalid_name"},
		{ErrAlreadyJoined, "already_joined"},
		{ErrSessionLeft, "session_left"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reason(tt.err), tt.err.Error())
	}
}
