package model

import "time"

// Event represents one hosted gathering with its owned collections
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, host-local
	Location    string    `json:"location,omitempty"`
	Code        string    `json:"code"` // join code, always upper-case
	MaxGuests   int       `json:"max_guests"`
	HostID      string    `json:"host_id"`
	HostName    string    `json:"host_name"`
	Theme       Theme     `json:"theme"`
	CreatedOn   time.Time `json:"created_on"`

	// Owned collections, hydrated by the repository
	Guests   []Guest   `json:"guests,omitempty"`
	Dishes   []Dish    `json:"dishes,omitempty"`
	Items    []Item    `json:"items,omitempty"`
	Messages []Message `json:"messages,omitempty"`

	// SeedWarning is set when event creation succeeded but part of the
	// theme dish seeding failed. Never persisted.
	SeedWarning string `json:"-"`
}

// Theme describes an event's visual theme
type Theme struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Gradient string `json:"gradient,omitempty"` // CSS color gradient
}

// Bare returns a copy of the event without its owned collections,
// the shape that gets persisted. Collections are persisted through
// their own stores.
func (e Event) Bare() Event {
	e.Guests = nil
	e.Dishes = nil
	e.Items = nil
	e.Messages = nil
	e.SeedWarning = ""
	return e
}

// IsFull reports whether the event has reached guest capacity
func (e *Event) IsFull() bool {
	return e.MaxGuests > 0 && len(e.Guests) >= e.MaxGuests
}

// HasGuestEmail reports whether an email is already on the guest list
func (e *Event) HasGuestEmail(email string) bool {
	for _, g := range e.Guests {
		if g.Email == email {
			return true
		}
	}
	return false
}

// Guest looks up a guest by id
func (e *Event) Guest(id string) *Guest {
	for i := range e.Guests {
		if e.Guests[i].ID == id {
			return &e.Guests[i]
		}
	}
	return nil
}

// Dish looks up a dish by id
func (e *Event) Dish(id string) *Dish {
	for i := range e.Dishes {
		if e.Dishes[i].ID == id {
			return &e.Dishes[i]
		}
	}
	return nil
}

// Item looks up an item by id
func (e *Event) Item(id string) *Item {
	for i := range e.Items {
		if e.Items[i].ID == id {
			return &e.Items[i]
		}
	}
	return nil
}

// Constraints
const (
	MaxEventTitleLength = 100
	DefaultMaxGuests    = 20
	JoinCodeLength      = 6
)

// EventDraft carries the host-supplied fields for a new event
type EventDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	Location    string     `json:"location,omitempty"`
	MaxGuests   int        `json:"max_guests,omitempty"`
	Theme       *Theme     `json:"theme,omitempty"`
	Dishes      []DishStub `json:"dishes,omitempty"` // seeded as dishes owned by the new event
}

// EventPatch is a partial update to an event's scalar fields.
// Collection fields are mutated through their own operations, never here.
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
	MaxGuests   *int    `json:"max_guests,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p *EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.Time == nil && p.Location == nil && p.MaxGuests == nil
}

// User identifies the current session's user. Supplied by the identity
// collaborator; the engine never mutates it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
