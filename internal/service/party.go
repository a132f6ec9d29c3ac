package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gatherly/potluck/internal/ident"
	"github.com/gatherly/potluck/internal/model"
	"github.com/gatherly/potluck/internal/store"
)

// Stores bundles the per-entity dual stores the repository writes through.
type Stores struct {
	Events    store.Store[model.Event]
	Guests    store.Store[model.Guest]
	Dishes    store.Store[model.Dish]
	Items     store.Store[model.Item]
	Messages  store.Store[model.Message]
	Templates store.Store[model.Template]
}

// Identity supplies the current session's user. The engine treats it
// as an opaque input and never mutates it.
type Identity interface {
	CurrentUser() model.User
}

// PartyService owns the canonical in-memory event graph and is the
// only writer to it. All other components mutate through its
// operations.
type PartyService struct {
	stores   Stores
	ident    *ident.Generator
	identity Identity
	log      *slog.Logger

	mu       sync.Mutex
	events   map[string]*model.Event
	watchers []func(model.Event)
}

// NewPartyService creates the event repository with its collaborators
// injected.
func NewPartyService(stores Stores, gen *ident.Generator, identity Identity, log *slog.Logger) *PartyService {
	if log == nil {
		log = slog.Default()
	}
	return &PartyService{
		stores:   stores,
		ident:    gen,
		identity: identity,
		log:      log,
		events:   make(map[string]*model.Event),
	}
}

// Watch registers an observer called with a copy of the updated event
// after every successful mutation.
func (s *PartyService) Watch(fn func(model.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// CreateEvent generates a join code, persists the event, then seeds
// its dishes from the draft (or the theme's suggestions). Dish-seed
// failures do not roll back the event; they surface as a SeedWarning.
func (s *PartyService) CreateEvent(ctx context.Context, draft model.EventDraft) (*model.Event, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > model.MaxEventTitleLength {
		return nil, ErrTitleTooLong
	}

	code, err := s.ident.JoinCode(ctx, s.codeExists)
	if err != nil {
		return nil, fmt.Errorf("generate join code: %w", err)
	}

	user := s.identity.CurrentUser()
	theme := model.ThemeDefault
	if draft.Theme != nil {
		theme = *draft.Theme
	}
	maxGuests := draft.MaxGuests
	if maxGuests <= 0 {
		maxGuests = model.DefaultMaxGuests
	}

	event := model.Event{
		ID:          s.ident.NewID(),
		Title:       title,
		Description: draft.Description,
		Date:        draft.Date,
		Time:        draft.Time,
		Location:    draft.Location,
		Code:        strings.ToUpper(code),
		MaxGuests:   maxGuests,
		HostID:      user.ID,
		HostName:    user.Name,
		Theme:       theme,
		CreatedOn:   time.Now().UTC(),
	}

	persisted, _, err := s.stores.Events.Create(ctx, event.Bare())
	if err != nil {
		return nil, fmt.Errorf("%w: persist event: %v", ErrStorageFailed, err)
	}
	event = persisted

	stubs := draft.Dishes
	if len(stubs) == 0 {
		stubs = model.ThemeDishes(theme.ID)
	}
	var failed int
	for _, stub := range stubs {
		dish := model.Dish{
			ID:          s.entityID(event.ID),
			EventID:     event.ID,
			Name:        stub.Name,
			Description: stub.Description,
			Category:    stub.Category,
		}
		created, _, err := s.stores.Dishes.Create(ctx, dish)
		if err != nil {
			failed++
			s.log.Warn("dish seed failed",
				slog.String("event_id", event.ID),
				slog.String("dish", stub.Name),
				slog.String("error", err.Error()))
			continue
		}
		event.Dishes = append(event.Dishes, created)
	}
	if failed > 0 {
		event.SeedWarning = fmt.Sprintf("%d of %d dishes could not be seeded", failed, len(stubs))
	}
	event.Guests = []model.Guest{}
	event.Items = []model.Item{}
	event.Messages = []model.Message{}

	s.putEvent(event)
	s.notify(event)
	return &event, nil
}

// EventByID is a pure lookup over the in-memory graph. Callers
// needing freshness must Refresh first.
func (s *PartyService) EventByID(id string) (*model.Event, error) {
	event, ok := s.eventCopy(id)
	if !ok {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

// EventByCode resolves a join code against the in-memory graph,
// case-insensitively.
func (s *PartyService) EventByCode(code string) (*model.Event, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.Code == code {
			out := copyEvent(*e)
			return &out, nil
		}
	}
	return nil, ErrEventNotFound
}

// Events returns the in-memory graph, newest first.
func (s *PartyService) Events() []model.Event {
	s.mu.Lock()
	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, copyEvent(*e))
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	return out
}

// UpdateEvent merges a scalar-field patch into the event. Collection
// fields are mutated through their own operations, never here. An
// empty patch is a no-op and performs no store round-trip.
func (s *PartyService) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	current, ok := s.eventCopy(id)
	if !ok {
		return nil, ErrEventNotFound
	}
	if patch.IsEmpty() {
		return &current, nil
	}

	rec := make(map[string]interface{})
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		rec["title"] = title
	}
	if patch.Description != nil {
		rec["description"] = *patch.Description
	}
	if patch.Date != nil {
		rec["date"] = *patch.Date
	}
	if patch.Time != nil {
		rec["time"] = *patch.Time
	}
	if patch.Location != nil {
		rec["location"] = *patch.Location
	}
	if patch.MaxGuests != nil {
		rec["max_guests"] = *patch.MaxGuests
	}

	updated, _, err := s.stores.Events.Update(ctx, id, rec)
	if err != nil {
		return nil, fmt.Errorf("%w: update event: %v", ErrStorageFailed, err)
	}

	current.Title = updated.Title
	current.Description = updated.Description
	current.Date = updated.Date
	current.Time = updated.Time
	current.Location = updated.Location
	current.MaxGuests = updated.MaxGuests

	s.putEvent(current)
	s.notify(current)
	return &current, nil
}

// DeleteEvent removes the event and its owned collections from the
// graph and from whichever stores hold them.
func (s *PartyService) DeleteEvent(ctx context.Context, id string) error {
	event, ok := s.eventCopy(id)
	if !ok {
		got, _, err := s.stores.Events.Get(ctx, id)
		if err != nil {
			return ErrEventNotFound
		}
		event = s.hydrate(ctx, got)
	}

	for _, g := range event.Guests {
		s.deleteOwned(ctx, "guest", func() (store.Source, error) { return s.stores.Guests.Delete(ctx, g.ID) })
	}
	for _, d := range event.Dishes {
		s.deleteOwned(ctx, "dish", func() (store.Source, error) { return s.stores.Dishes.Delete(ctx, d.ID) })
	}
	for _, i := range event.Items {
		s.deleteOwned(ctx, "item", func() (store.Source, error) { return s.stores.Items.Delete(ctx, i.ID) })
	}
	for _, m := range event.Messages {
		s.deleteOwned(ctx, "message", func() (store.Source, error) { return s.stores.Messages.Delete(ctx, m.ID) })
	}

	if _, err := s.stores.Events.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete event: %v", ErrStorageFailed, err)
	}

	s.mu.Lock()
	delete(s.events, id)
	s.mu.Unlock()
	return nil
}

// JoinEvent resolves the event by code (remote-first), checks capacity
// and email uniqueness against the current guest list, and creates a
// pending guest.
func (s *PartyService) JoinEvent(ctx context.Context, code string, draft model.GuestDraft) (*model.Guest, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(draft.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	matches, _, err := s.stores.Events.Find(ctx, store.Filter{"code": code})
	if err != nil || len(matches) == 0 {
		return nil, ErrEventNotFound
	}
	event := matches[0]

	guests, _, err := s.stores.Guests.Find(ctx, store.Filter{"event_id": event.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: load guest list: %v", ErrStorageFailed, err)
	}
	if event.MaxGuests > 0 && len(guests) >= event.MaxGuests {
		return nil, ErrEventFull
	}
	for _, g := range guests {
		if strings.EqualFold(g.Email, email) {
			return nil, ErrAlreadyJoined
		}
	}

	guest := model.Guest{
		ID:       s.entityID(event.ID),
		EventID:  event.ID,
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(draft.Phone),
		RSVP:     model.RSVPPending,
		JoinedOn: time.Now().UTC(),
	}
	created, _, err := s.stores.Guests.Create(ctx, guest)
	if err != nil {
		return nil, fmt.Errorf("%w: persist guest: %v", ErrStorageFailed, err)
	}

	s.mergeGuests(event, append(guests, created))
	return &created, nil
}

// AddGuest manually adds a guest on the host's behalf, carrying a
// personal invite code. The same capacity and uniqueness rules as
// JoinEvent apply.
func (s *PartyService) AddGuest(ctx context.Context, eventID string, draft model.GuestDraft) (*model.Guest, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(draft.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	event, ok := s.eventCopy(eventID)
	if !ok {
		return nil, ErrEventNotFound
	}

	guests, _, err := s.stores.Guests.Find(ctx, store.Filter{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("%w: load guest list: %v", ErrStorageFailed, err)
	}
	if event.MaxGuests > 0 && len(guests) >= event.MaxGuests {
		return nil, ErrEventFull
	}
	for _, g := range guests {
		if strings.EqualFold(g.Email, email) {
			return nil, ErrAlreadyJoined
		}
	}

	// Personal invite codes are not checked for uniqueness; they only
	// identify one invitation within one event.
	inviteCode, err := s.ident.JoinCode(ctx, neverExists)
	if err != nil {
		return nil, fmt.Errorf("generate invite code: %w", err)
	}

	guest := model.Guest{
		ID:         s.entityID(eventID),
		EventID:    eventID,
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(draft.Phone),
		RSVP:       model.RSVPPending,
		JoinedOn:   time.Now().UTC(),
		InviteCode: inviteCode,
	}
	created, _, err := s.stores.Guests.Create(ctx, guest)
	if err != nil {
		return nil, fmt.Errorf("%w: persist guest: %v", ErrStorageFailed, err)
	}

	s.mergeGuests(event.Bare(), append(guests, created))
	return &created, nil
}

// UpdateGuest merges RSVP, name, or phone changes into one guest.
// This is the sole path for RSVP transitions; any state may move to
// any other.
func (s *PartyService) UpdateGuest(ctx context.Context, eventID, guestID string, patch model.GuestPatch) (*model.Guest, error) {
	if patch.RSVP != nil && !model.ValidRSVP(*patch.RSVP) {
		return nil, ErrInvalidRSVP
	}

	rec := make(map[string]interface{})
	if patch.Name != nil {
		rec["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		rec["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if patch.RSVP != nil {
		rec["rsvp"] = *patch.RSVP
	}

	if len(rec) == 0 {
		event, ok := s.eventCopy(eventID)
		if !ok {
			return nil, ErrEventNotFound
		}
		if g := event.Guest(guestID); g != nil {
			out := *g
			return &out, nil
		}
		return nil, ErrGuestNotFound
	}

	updated, _, err := s.stores.Guests.Update(ctx, guestID, rec)
	if err != nil {
		return nil, ErrGuestNotFound
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		if g := e.Guest(guestID); g != nil {
			*g = updated
		}
	}); ok {
		s.notify(event)
	}
	return &updated, nil
}

// AddDish adds an ad hoc dish to the event.
func (s *PartyService) AddDish(ctx context.Context, eventID string, stub model.DishStub) (*model.Dish, error) {
	if strings.TrimSpace(stub.Name) == "" {
		return nil, ErrNameRequired
	}
	if !model.ValidDishCategory(stub.Category) {
		return nil, ErrInvalidCategory
	}
	if _, ok := s.eventCopy(eventID); !ok {
		return nil, ErrEventNotFound
	}

	dish := model.Dish{
		ID:          s.entityID(eventID),
		EventID:     eventID,
		Name:        strings.TrimSpace(stub.Name),
		Description: stub.Description,
		Category:    stub.Category,
		Custom:      true,
	}
	created, _, err := s.stores.Dishes.Create(ctx, dish)
	if err != nil {
		return nil, fmt.Errorf("%w: persist dish: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		e.Dishes = append(e.Dishes, created)
	}); ok {
		s.notify(event)
	}
	return &created, nil
}

// RemoveDish deletes a dish from the event.
func (s *PartyService) RemoveDish(ctx context.Context, eventID, dishID string) error {
	event, ok := s.eventCopy(eventID)
	if !ok {
		return ErrEventNotFound
	}
	if event.Dish(dishID) == nil {
		return ErrDishNotFound
	}

	if _, err := s.stores.Dishes.Delete(ctx, dishID); err != nil {
		return fmt.Errorf("%w: delete dish: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		for i := range e.Dishes {
			if e.Dishes[i].ID == dishID {
				e.Dishes = append(e.Dishes[:i], e.Dishes[i+1:]...)
				break
			}
		}
	}); ok {
		s.notify(event)
	}
	return nil
}

// AddItem adds a "thing to bring" to the event. Items persist only in
// the local cache.
func (s *PartyService) AddItem(ctx context.Context, eventID string, draft model.ItemDraft) (*model.Item, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	if !model.ValidItemCategory(draft.Category) {
		return nil, ErrInvalidCategory
	}
	if _, ok := s.eventCopy(eventID); !ok {
		return nil, ErrEventNotFound
	}

	quantity := draft.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	item := model.Item{
		ID:          s.entityID(eventID),
		EventID:     eventID,
		Name:        strings.TrimSpace(draft.Name),
		Description: draft.Description,
		Category:    draft.Category,
		Quantity:    quantity,
	}
	created, _, err := s.stores.Items.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("%w: persist item: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		e.Items = append(e.Items, created)
	}); ok {
		s.notify(event)
	}
	return &created, nil
}

// RemoveItem deletes an item from the event.
func (s *PartyService) RemoveItem(ctx context.Context, eventID, itemID string) error {
	event, ok := s.eventCopy(eventID)
	if !ok {
		return ErrEventNotFound
	}
	if event.Item(itemID) == nil {
		return ErrItemNotFound
	}

	if _, err := s.stores.Items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("%w: delete item: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		for i := range e.Items {
			if e.Items[i].ID == itemID {
				e.Items = append(e.Items[:i], e.Items[i+1:]...)
				break
			}
		}
	}); ok {
		s.notify(event)
	}
	return nil
}

// SendMessage appends a chat message from the current user.
func (s *PartyService) SendMessage(ctx context.Context, eventID, text string, private bool) (*model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if _, ok := s.eventCopy(eventID); !ok {
		return nil, ErrEventNotFound
	}

	user := s.identity.CurrentUser()
	msg := model.Message{
		ID:         s.entityID(eventID),
		EventID:    eventID,
		SenderID:   user.ID,
		SenderName: user.Name,
		Text:       text,
		Private:    private,
		SentOn:     time.Now().UTC(),
	}
	created, _, err := s.stores.Messages.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: persist message: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		e.Messages = append(e.Messages, created)
	}); ok {
		s.notify(event)
	}
	return &created, nil
}

// MessagesFor returns the messages userID may read: everything for
// the host, public plus own private messages for everyone else.
func (s *PartyService) MessagesFor(eventID, userID string) ([]model.Message, error) {
	event, ok := s.eventCopy(eventID)
	if !ok {
		return nil, ErrEventNotFound
	}
	out := make([]model.Message, 0, len(event.Messages))
	for _, m := range event.Messages {
		if m.VisibleTo(userID, event.HostID) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Refresh re-derives the in-memory graph from the stores: events the
// current user hosts plus events where they appear as a guest by
// email. The fallback tier answers from the cache snapshot when the
// remote store is down. A completely empty result synthesizes a
// local starter event so the caller never sees an empty graph on
// first run.
func (s *PartyService) Refresh(ctx context.Context) ([]model.Event, error) {
	user := s.identity.CurrentUser()
	seen := make(map[string]model.Event)

	hosted, _, hostErr := s.stores.Events.Find(ctx, store.Filter{"host_id": user.ID})
	if hostErr != nil {
		s.log.Warn("refresh: hosted events unavailable", slog.String("error", hostErr.Error()))
	}
	for _, e := range hosted {
		seen[e.ID] = e
	}

	memberships, _, guestErr := s.stores.Guests.Find(ctx, store.Filter{"email": strings.ToLower(user.Email)})
	if guestErr != nil {
		s.log.Warn("refresh: guest memberships unavailable", slog.String("error", guestErr.Error()))
	}
	for _, g := range memberships {
		if _, ok := seen[g.EventID]; ok {
			continue
		}
		event, _, err := s.stores.Events.Get(ctx, g.EventID)
		if err != nil {
			s.log.Warn("refresh: guest event unavailable",
				slog.String("event_id", g.EventID),
				slog.String("error", err.Error()))
			continue
		}
		seen[event.ID] = event
	}

	if len(seen) == 0 {
		starter, err := s.createStarter(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("%w: synthesize starter event: %v", ErrStorageFailed, err)
		}
		seen[starter.ID] = starter
	}

	out := make([]model.Event, 0, len(seen))
	for _, e := range seen {
		out = append(out, s.hydrate(ctx, e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })

	s.mu.Lock()
	s.events = make(map[string]*model.Event, len(out))
	for i := range out {
		e := copyEvent(out[i])
		s.events[e.ID] = &e
	}
	s.mu.Unlock()

	for _, e := range out {
		s.notify(e)
	}
	return out, nil
}

// ----- mutation primitives shared with the assignment resolver -----

// setDishAssignment unconditionally overwrites the dish's assignee.
// Called with an empty guest id it releases the dish.
func (s *PartyService) setDishAssignment(ctx context.Context, eventID, dishID, guestID string) (*model.Dish, error) {
	event, ok := s.eventCopy(eventID)
	if !ok {
		return nil, ErrEventNotFound
	}
	if event.Dish(dishID) == nil {
		if s.ownedElsewhere(eventID, dishID) {
			return nil, ErrDishNotInEvent
		}
		return nil, ErrDishNotFound
	}
	if guestID != "" && event.Guest(guestID) == nil {
		return nil, ErrGuestNotFound
	}

	updated, _, err := s.stores.Dishes.Update(ctx, dishID, map[string]interface{}{"assigned_to": guestID})
	if err != nil {
		return nil, fmt.Errorf("%w: update dish assignment: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		if d := e.Dish(dishID); d != nil {
			*d = updated
		}
	}); ok {
		s.notify(event)
	}
	return &updated, nil
}

// setItemAssignment mirrors setDishAssignment for items.
func (s *PartyService) setItemAssignment(ctx context.Context, eventID, itemID, guestID string) (*model.Item, error) {
	event, ok := s.eventCopy(eventID)
	if !ok {
		return nil, ErrEventNotFound
	}
	if event.Item(itemID) == nil {
		if s.ownedElsewhere(eventID, itemID) {
			return nil, ErrItemNotInEvent
		}
		return nil, ErrItemNotFound
	}
	if guestID != "" && event.Guest(guestID) == nil {
		return nil, ErrGuestNotFound
	}

	updated, _, err := s.stores.Items.Update(ctx, itemID, map[string]interface{}{"assigned_to": guestID})
	if err != nil {
		return nil, fmt.Errorf("%w: update item assignment: %v", ErrStorageFailed, err)
	}

	if event, ok := s.withEvent(eventID, func(e *model.Event) {
		if i := e.Item(itemID); i != nil {
			*i = updated
		}
	}); ok {
		s.notify(event)
	}
	return &updated, nil
}

// ----- helpers -----

// codeExists is the uniqueness predicate injected into join-code
// generation; it checks both tiers through the fallback store.
func (s *PartyService) codeExists(ctx context.Context, code string) (bool, error) {
	matches, _, err := s.stores.Events.Find(ctx, store.Filter{"code": strings.ToUpper(code)})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func neverExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

// entityID mints an id for an entity owned by ownerID, inheriting the
// ephemeral marker so local events keep local children.
func (s *PartyService) entityID(ownerID string) string {
	if store.IsLocal(ownerID) {
		return store.LocalPrefix + s.ident.NewID()
	}
	return s.ident.NewID()
}

// createStarter synthesizes the placeholder event shown on a cold,
// empty first run. It is ephemeral and never reaches the remote store.
func (s *PartyService) createStarter(ctx context.Context, user model.User) (model.Event, error) {
	code, err := s.ident.JoinCode(ctx, neverExists)
	if err != nil {
		return model.Event{}, err
	}

	event := model.Event{
		ID:          store.LocalPrefix + s.ident.NewID(),
		Title:       "My First Potluck",
		Description: "A sample gathering to explore the app. Invite friends or delete it any time.",
		Code:        code,
		MaxGuests:   model.DefaultMaxGuests,
		HostID:      user.ID,
		HostName:    user.Name,
		Theme:       model.ThemeDefault,
		CreatedOn:   time.Now().UTC(),
	}
	persisted, _, err := s.stores.Events.Create(ctx, event.Bare())
	if err != nil {
		return model.Event{}, err
	}
	event = persisted

	for _, stub := range model.ThemeDishes(event.Theme.ID) {
		dish := model.Dish{
			ID:          s.entityID(event.ID),
			EventID:     event.ID,
			Name:        stub.Name,
			Description: stub.Description,
			Category:    stub.Category,
		}
		if _, _, err := s.stores.Dishes.Create(ctx, dish); err != nil {
			s.log.Warn("starter dish seed failed", slog.String("error", err.Error()))
		}
	}
	return event, nil
}

// hydrate loads an event's owned collections from the stores. Load
// failures leave the collection empty; they are logged, not surfaced.
func (s *PartyService) hydrate(ctx context.Context, event model.Event) model.Event {
	byEvent := store.Filter{"event_id": event.ID}

	guests, _, err := s.stores.Guests.Find(ctx, byEvent)
	if err != nil {
		s.log.Warn("hydrate guests failed", slog.String("event_id", event.ID), slog.String("error", err.Error()))
	}
	dishes, _, err := s.stores.Dishes.Find(ctx, byEvent)
	if err != nil {
		s.log.Warn("hydrate dishes failed", slog.String("event_id", event.ID), slog.String("error", err.Error()))
	}
	items, _, err := s.stores.Items.Find(ctx, byEvent)
	if err != nil {
		s.log.Warn("hydrate items failed", slog.String("event_id", event.ID), slog.String("error", err.Error()))
	}
	messages, _, err := s.stores.Messages.Find(ctx, byEvent)
	if err != nil {
		s.log.Warn("hydrate messages failed", slog.String("event_id", event.ID), slog.String("error", err.Error()))
	}

	event.Guests = guests
	event.Dishes = dishes
	event.Items = items
	event.Messages = messages
	return event
}

// mergeGuests installs a fresh guest list for an event, preserving
// whatever other collections the graph already holds.
func (s *PartyService) mergeGuests(event model.Event, guests []model.Guest) {
	s.mu.Lock()
	existing, ok := s.events[event.ID]
	if ok {
		existing.Guests = guests
		event = copyEvent(*existing)
	} else {
		event.Guests = guests
		e := copyEvent(event)
		s.events[event.ID] = &e
	}
	s.mu.Unlock()
	s.notify(event)
}

// putEvent installs a copy of the event as the graph's entry.
func (s *PartyService) putEvent(event model.Event) {
	e := copyEvent(event)
	s.mu.Lock()
	s.events[e.ID] = &e
	s.mu.Unlock()
}

// ownedElsewhere reports whether some other event in the graph owns
// the dish or item; it distinguishes a wrong-event id from an unknown
// one.
func (s *PartyService) ownedElsewhere(eventID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for eid, e := range s.events {
		if eid == eventID {
			continue
		}
		if e.Dish(id) != nil || e.Item(id) != nil {
			return true
		}
	}
	return false
}

// eventCopy returns a defensive copy of one graph entry.
func (s *PartyService) eventCopy(id string) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, false
	}
	return copyEvent(*e), true
}

// withEvent applies a mutation to one graph entry under the lock and
// returns a copy of the result.
func (s *PartyService) withEvent(id string, fn func(*model.Event)) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, false
	}
	fn(e)
	return copyEvent(*e), true
}

// notify calls every watcher with the updated event, outside the lock.
func (s *PartyService) notify(event model.Event) {
	s.mu.Lock()
	watchers := make([]func(model.Event), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()
	for _, fn := range watchers {
		fn(copyEvent(event))
	}
}

// copyEvent clones an event, including its collection slices. Empty
// collections stay empty rather than collapsing to nil so lookups and
// no-op updates return the event exactly as created.
func copyEvent(e model.Event) model.Event {
	e.Guests = slices.Clone(e.Guests)
	e.Dishes = slices.Clone(e.Dishes)
	e.Items = slices.Clone(e.Items)
	e.Messages = slices.Clone(e.Messages)
	return e
}

// deleteOwned removes one owned entity during event deletion; delete
// failures are logged and skipped so the cascade keeps going.
func (s *PartyService) deleteOwned(ctx context.Context, kind string, del func() (store.Source, error)) {
	if _, err := del(); err != nil {
		s.log.Warn("cascade delete failed", slog.String("kind", kind), slog.String("error", err.Error()))
	}
}
