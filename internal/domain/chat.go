package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxChatTextLen = 1000

type ChatMessage struct {
	ID                 string       `json:"id"`
	SenderConnectionID ConnectionID `json:"senderConnectionId"`
	SenderName         string       `json:"senderName"`
	Text               string       `json:"text"`
	Timestamp          time.Time    `json:"timestamp"`
}

func NormalizeChatText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrChatEmpty
	}
	if utf8.RuneCountInString(text) > MaxChatTextLen {
		return "", ErrChatTooLong
	}
	return text, nil
}
