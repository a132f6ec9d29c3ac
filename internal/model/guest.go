package model

import "time"

// Guest represents one person attending (or invited to) an event
type Guest struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	RSVP       string    `json:"rsvp"` // pending, yes, no
	JoinedOn   time.Time `json:"joined_on"`
	InviteCode string    `json:"invite_code,omitempty"` // set for host-added guests
}

// RSVP states. Any state may transition to any other; pending is initial.
const (
	RSVPPending = "pending"
	RSVPYes     = "yes"
	RSVPNo      = "no"
)

// ValidRSVP reports whether s is a recognized RSVP state
func ValidRSVP(s string) bool {
	return s == RSVPPending || s == RSVPYes || s == RSVPNo
}

// GuestDraft carries the fields supplied when a person joins via code
// or is added manually by the host
type GuestDraft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// GuestPatch is a partial update to a guest. RSVP changes flow only
// through this patch.
type GuestPatch struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	RSVP  *string `json:"rsvp,omitempty"`
}
