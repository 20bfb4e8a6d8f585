package domain

import "time"

// Message is a direct message between two portal users.
type Message struct {
	ID        string    `json:"id"`
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a message sent now.
func NewMessage(id, from, to, subject, body string) *Message {
	return &Message{
		ID:        id,
		FromEmail: from,
		ToEmail:   to,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}
}
