package model

import "time"

// Message represents one chat message within an event.
// Visibility: the host sees every message; a non-host guest sees all
// public messages plus their own private ones.
type Message struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	Private    bool      `json:"private"`
	SentOn     time.Time `json:"sent_on"`
}

// VisibleTo reports whether userID may read this message within an
// event hosted by hostID
func (m *Message) VisibleTo(userID, hostID string) bool {
	if userID == hostID {
		return true
	}
	if !m.Private {
		return true
	}
	return m.SenderID == userID
}
