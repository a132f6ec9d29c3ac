package model

import "time"

// Template is a reusable snapshot of an event's theme and dish list.
// Guests, items, and messages are never snapshotted.
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Theme       Theme      `json:"theme"`
	Dishes      []DishStub `json:"dishes"`
	Public      bool       `json:"public"`
	CreatorID   string     `json:"creator_id"`
	CreatorName string     `json:"creator_name"`
	UsageCount  int        `json:"usage_count"`
	CreatedOn   time.Time  `json:"created_on"`
}

// TemplateMeta carries the user-supplied fields when saving a template
type TemplateMeta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Public      bool   `json:"public"`
}
