package domain

import "time"

// ChatMessage is one entry of the global, append-only chat log.
type ChatMessage struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"` // author
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Thread returns the messages authored by email, in insertion order.
// This is a display filter, not access control.
func Thread(log []ChatMessage, email string) []ChatMessage {
	out := make([]ChatMessage, 0, len(log))
	for _, msg := range log {
		if msg.Email == email {
			out = append(out, msg)
		}
	}
	return out
}
