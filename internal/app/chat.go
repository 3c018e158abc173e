package app

import "github.com/dkeye/Meet/internal/domain"

// chatHistory is a bounded ring keeping the newest messages in send order.
type chatHistory struct {
	buf   []domain.ChatMessage
	start int
	size  int
}

func newChatHistory(limit int) *chatHistory {
	if limit < 1 {
		limit = 1
	}
	return &chatHistory{buf: make([]domain.ChatMessage, limit)}
}

func (h *chatHistory) Append(m domain.ChatMessage) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = m
		h.size++
		return
	}
	h.buf[h.start] = m
	h.start = (h.start + 1) % len(h.buf)
}

func (h *chatHistory) Snapshot() []domain.ChatMessage {
	out := make([]domain.ChatMessage, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
