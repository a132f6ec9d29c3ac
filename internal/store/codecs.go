package store

import (
	"github.com/gatherly/potluck/internal/cache"
	"github.com/gatherly/potluck/internal/model"
)

// Per-entity codecs. Each one is the explicit bidirectional mapping
// between the in-memory shape and the remote record shape, and the
// only place where field renaming and default filling happen.

// EventCodec maps events. Owned collections are never part of the
// event record; they persist through their own stores.
var EventCodec = Codec[model.Event]{
	Table:    "event",
	CacheKey: cache.KeyEvents,
	ID:       func(e model.Event) string { return e.ID },
	ToRecord: func(e model.Event) map[string]interface{} {
		return map[string]interface{}{
			"id":          e.ID,
			"title":       e.Title,
			"description": e.Description,
			"date":        e.Date,
			"time":        e.Time,
			"location":    e.Location,
			"code":        e.Code,
			"max_guests":  e.MaxGuests,
			"host_id":     e.HostID,
			"host_name":   e.HostName,
			"theme":       themeToRecord(e.Theme),
			"created_on":  e.CreatedOn,
		}
	},
	FromRecord: func(rec map[string]interface{}) model.Event {
		e := model.Event{
			ID:          recordID(rec["id"]),
			Title:       getString(rec, "title"),
			Description: getString(rec, "description"),
			Date:        getString(rec, "date"),
			Time:        getString(rec, "time"),
			Location:    getString(rec, "location"),
			Code:        getString(rec, "code"),
			MaxGuests:   getInt(rec, "max_guests"),
			HostID:      getString(rec, "host_id"),
			HostName:    getString(rec, "host_name"),
			Theme:       themeFromRecord(getMap(rec, "theme")),
			CreatedOn:   parseTime(rec["created_on"]),
		}
		if e.MaxGuests <= 0 {
			e.MaxGuests = model.DefaultMaxGuests
		}
		return e
	},
}

// GuestCodec maps guests. A missing rsvp defaults to pending.
var GuestCodec = Codec[model.Guest]{
	Table:    "guest",
	CacheKey: cache.KeyGuests,
	ID:       func(g model.Guest) string { return g.ID },
	ToRecord: func(g model.Guest) map[string]interface{} {
		return map[string]interface{}{
			"id":          g.ID,
			"event_id":    g.EventID,
			"name":        g.Name,
			"email":       g.Email,
			"phone":       g.Phone,
			"rsvp":        g.RSVP,
			"joined_on":   g.JoinedOn,
			"invite_code": g.InviteCode,
		}
	},
	FromRecord: func(rec map[string]interface{}) model.Guest {
		g := model.Guest{
			ID:         recordID(rec["id"]),
			EventID:    getString(rec, "event_id"),
			Name:       getString(rec, "name"),
			Email:      getString(rec, "email"),
			Phone:      getString(rec, "phone"),
			RSVP:       getString(rec, "rsvp"),
			JoinedOn:   parseTime(rec["joined_on"]),
			InviteCode: getString(rec, "invite_code"),
		}
		if !model.ValidRSVP(g.RSVP) {
			g.RSVP = model.RSVPPending
		}
		return g
	},
}

// DishCodec maps dishes.
var DishCodec = Codec[model.Dish]{
	Table:    "dish",
	CacheKey: cache.KeyDishes,
	ID:       func(d model.Dish) string { return d.ID },
	ToRecord: func(d model.Dish) map[string]interface{} {
		return map[string]interface{}{
			"id":          d.ID,
			"event_id":    d.EventID,
			"name":        d.Name,
			"description": d.Description,
			"category":    d.Category,
			"custom":      d.Custom,
			"assigned_to": d.AssignedTo,
		}
	},
	FromRecord: func(rec map[string]interface{}) model.Dish {
		d := model.Dish{
			ID:          recordID(rec["id"]),
			EventID:     getString(rec, "event_id"),
			Name:        getString(rec, "name"),
			Description: getString(rec, "description"),
			Category:    getString(rec, "category"),
			Custom:      getBool(rec, "custom"),
			AssignedTo:  getString(rec, "assigned_to"),
		}
		if !model.ValidDishCategory(d.Category) {
			d.Category = model.DishMains
		}
		return d
	},
}

// ItemCodec maps items. Items have no remote table; the Table name
// exists only so logs and filters stay uniform. Quantity defaults to 1.
var ItemCodec = Codec[model.Item]{
	Table:    "item",
	CacheKey: cache.KeyItems,
	ID:       func(i model.Item) string { return i.ID },
	ToRecord: func(i model.Item) map[string]interface{} {
		return map[string]interface{}{
			"id":          i.ID,
			"event_id":    i.EventID,
			"name":        i.Name,
			"description": i.Description,
			"category":    i.Category,
			"quantity":    i.Quantity,
			"assigned_to": i.AssignedTo,
		}
	},
	FromRecord: func(rec map[string]interface{}) model.Item {
		i := model.Item{
			ID:          recordID(rec["id"]),
			EventID:     getString(rec, "event_id"),
			Name:        getString(rec, "name"),
			Description: getString(rec, "description"),
			Category:    getString(rec, "category"),
			Quantity:    getInt(rec, "quantity"),
			AssignedTo:  getString(rec, "assigned_to"),
		}
		if i.Quantity <= 0 {
			i.Quantity = 1
		}
		if !model.ValidItemCategory(i.Category) {
			i.Category = model.ItemOther
		}
		return i
	},
}

// MessageCodec maps chat messages.
var MessageCodec = Codec[model.Message]{
	Table:    "message",
	CacheKey: cache.KeyMessages,
	ID:       func(m model.Message) string { return m.ID },
	ToRecord: func(m model.Message) map[string]interface{} {
		return map[string]interface{}{
			"id":          m.ID,
			"event_id":    m.EventID,
			"sender_id":   m.SenderID,
			"sender_name": m.SenderName,
			"text":        m.Text,
			"private":     m.Private,
			"sent_on":     m.SentOn,
		}
	},
	FromRecord: func(rec map[string]interface{}) model.Message {
		return model.Message{
			ID:         recordID(rec["id"]),
			EventID:    getString(rec, "event_id"),
			SenderID:   getString(rec, "sender_id"),
			SenderName: getString(rec, "sender_name"),
			Text:       getString(rec, "text"),
			Private:    getBool(rec, "private"),
			SentOn:     parseTime(rec["sent_on"]),
		}
	},
}

// TemplateCodec maps templates, including their ordered dish stubs.
var TemplateCodec = Codec[model.Template]{
	Table:    "template",
	CacheKey: cache.KeyTemplates,
	ID:       func(t model.Template) string { return t.ID },
	ToRecord: func(t model.Template) map[string]interface{} {
		stubs := make([]interface{}, 0, len(t.Dishes))
		for _, d := range t.Dishes {
			stubs = append(stubs, map[string]interface{}{
				"name":        d.Name,
				"description": d.Description,
				"category":    d.Category,
			})
		}
		return map[string]interface{}{
			"id":           t.ID,
			"name":         t.Name,
			"description":  t.Description,
			"theme":        themeToRecord(t.Theme),
			"dishes":       stubs,
			"public":       t.Public,
			"creator_id":   t.CreatorID,
			"creator_name": t.CreatorName,
			"usage_count":  t.UsageCount,
			"created_on":   t.CreatedOn,
		}
	},
	FromRecord: func(rec map[string]interface{}) model.Template {
		t := model.Template{
			ID:          recordID(rec["id"]),
			Name:        getString(rec, "name"),
			Description: getString(rec, "description"),
			Theme:       themeFromRecord(getMap(rec, "theme")),
			Public:      getBool(rec, "public"),
			CreatorID:   getString(rec, "creator_id"),
			CreatorName: getString(rec, "creator_name"),
			UsageCount:  getInt(rec, "usage_count"),
			CreatedOn:   parseTime(rec["created_on"]),
		}
		if stubs, ok := rec["dishes"].([]interface{}); ok {
			t.Dishes = make([]model.DishStub, 0, len(stubs))
			for _, s := range stubs {
				stub, ok := s.(map[string]interface{})
				if !ok {
					continue
				}
				t.Dishes = append(t.Dishes, model.DishStub{
					Name:        getString(stub, "name"),
					Description: getString(stub, "description"),
					Category:    getString(stub, "category"),
				})
			}
		}
		return t
	},
}

func themeToRecord(t model.Theme) map[string]interface{} {
	return map[string]interface{}{
		"id":       t.ID,
		"name":     t.Name,
		"icon":     t.Icon,
		"gradient": t.Gradient,
	}
}

func themeFromRecord(rec map[string]interface{}) model.Theme {
	if rec == nil {
		return model.ThemeDefault
	}
	t := model.Theme{
		ID:       getString(rec, "id"),
		Name:     getString(rec, "name"),
		Icon:     getString(rec, "icon"),
		Gradient: getString(rec, "gradient"),
	}
	if t.ID == "" {
		return model.ThemeDefault
	}
	return t
}
