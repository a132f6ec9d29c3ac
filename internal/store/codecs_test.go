package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/potluck/internal/model"
)

func TestEventCodecRoundTrip(t *testing.T) {
	e := model.Event{
		ID:          "e1",
		Title:       "Friendsgiving",
		Description: "bring stretchy pants",
		Date:        "2026-11-26",
		Time:        "18:30",
		Location:    "12 Oak St",
		Code:        "XK42QP",
		MaxGuests:   8,
		HostID:      "u1",
		HostName:    "Sam",
		Theme:       model.ThemeClassic,
		CreatedOn:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	got := EventCodec.FromRecord(EventCodec.ToRecord(e))
	assert.Equal(t, e, got)
}

func TestEventCodecFieldRenaming(t *testing.T) {
	rec := EventCodec.ToRecord(model.Event{ID: "e1", HostID: "u1", MaxGuests: 5})
	assert.Equal(t, "u1", rec["host_id"])
	assert.Equal(t, 5, rec["max_guests"])
	assert.NotContains(t, rec, "guests", "collections never enter the event record")
}

func TestEventCodecDefaults(t *testing.T) {
	e := EventCodec.FromRecord(map[string]interface{}{"id": "e1", "title": "Dinner"})
	assert.Equal(t, model.DefaultMaxGuests, e.MaxGuests)
	assert.Equal(t, model.ThemeDefault, e.Theme)
}

func TestEventCodecRecordIDUnwrapping(t *testing.T) {
	e := EventCodec.FromRecord(map[string]interface{}{
		"id":    "event:⟨9b1c2d3e⟩",
		"title": "Dinner",
	})
	assert.Equal(t, "9b1c2d3e", e.ID)
}

func TestGuestCodecRSVPDefault(t *testing.T) {
	g := GuestCodec.FromRecord(map[string]interface{}{
		"id":       "g1",
		"event_id": "e1",
		"email":    "a@example.com",
	})
	assert.Equal(t, model.RSVPPending, g.RSVP)

	g = GuestCodec.FromRecord(map[string]interface{}{"id": "g1", "rsvp": "maybe"})
	assert.Equal(t, model.RSVPPending, g.RSVP, "unrecognized rsvp falls back to pending")
}

func TestItemCodecDefaults(t *testing.T) {
	i := ItemCodec.FromRecord(map[string]interface{}{"id": "i1", "name": "Napkins"})
	assert.Equal(t, 1, i.Quantity)
	assert.Equal(t, model.ItemOther, i.Category)
}

func TestItemCodecQuantityFromFloat(t *testing.T) {
	// JSON decoding hands back float64 numbers
	i := ItemCodec.FromRecord(map[string]interface{}{"id": "i1", "quantity": float64(3)})
	assert.Equal(t, 3, i.Quantity)
}

func TestTemplateCodecDishStubs(t *testing.T) {
	tpl := model.Template{
		ID:    "t1",
		Name:  "Taco Night",
		Theme: model.ThemeTaco,
		Dishes: []model.DishStub{
			{Name: "Guacamole", Category: model.DishAppetizers},
			{Name: "Carnitas", Description: "slow cooked", Category: model.DishMains},
		},
		CreatorID:  "u1",
		UsageCount: 2,
		CreatedOn:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	got := TemplateCodec.FromRecord(TemplateCodec.ToRecord(tpl))
	require.Len(t, got.Dishes, 2)
	assert.Equal(t, tpl.Dishes, got.Dishes, "stub order is preserved")
	assert.Equal(t, tpl.Theme, got.Theme)
	assert.Equal(t, 2, got.UsageCount)
}

func TestCodecMatches(t *testing.T) {
	g := model.Guest{ID: "g1", EventID: "e1", Email: "a@example.com", RSVP: model.RSVPYes}

	assert.True(t, GuestCodec.Matches(g, Filter{"event_id": "e1"}))
	assert.True(t, GuestCodec.Matches(g, Filter{"event_id": "e1", "email": "a@example.com"}))
	assert.False(t, GuestCodec.Matches(g, Filter{"event_id": "e2"}))
	assert.True(t, GuestCodec.Matches(g, Filter{}), "empty filter matches everything")
}

func TestCodecApplyPatch(t *testing.T) {
	d := model.Dish{ID: "d1", EventID: "e1", Name: "Lasagna", Category: model.DishMains}

	patched := DishCodec.ApplyPatch(d, map[string]interface{}{"assigned_to": "g1"})
	assert.Equal(t, "g1", patched.AssignedTo)
	assert.Equal(t, "Lasagna", patched.Name, "unpatched fields survive")

	released := DishCodec.ApplyPatch(patched, map[string]interface{}{"assigned_to": ""})
	assert.Empty(t, released.AssignedTo)
}

func TestParseTimeFormats(t *testing.T) {
	want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, want, parseTime(want))
	assert.Equal(t, want, parseTime("2026-09-01T12:00:00Z"))
	assert.True(t, parseTime(42).IsZero())
}
