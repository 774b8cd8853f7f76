package models

import "time"

// Message is a direct message. UserID is the sender.
type Message struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
	RecipientID int64     `json:"recipient"`
	Message     string    `json:"message"`
	Date        time.Time `json:"date"`
}

func (m *Message) IsOwnedBy(userID int64) bool {
	return m.UserID == userID
}

// IsVisibleTo reports whether userID is the sender or the recipient.
func (m *Message) IsVisibleTo(userID int64) bool {
	return m.UserID == userID || m.RecipientID == userID
}
