package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/gatherly/potluck/internal/model"
	"github.com/gatherly/potluck/internal/store"
)

// TemplateService snapshots events into reusable templates and seeds
// new events from them. It reuses the party service's mutation
// primitives rather than touching the graph itself.
type TemplateService struct {
	party *PartyService
	log   *slog.Logger
}

// NewTemplateService creates the template engine beside the repository.
func NewTemplateService(party *PartyService, log *slog.Logger) *TemplateService {
	if log == nil {
		log = slog.Default()
	}
	return &TemplateService{party: party, log: log}
}

// SaveAsTemplate snapshots the event's theme and a reduced copy of its
// dishes. Guests, items, and messages are never snapshotted.
func (s *TemplateService) SaveAsTemplate(ctx context.Context, eventID string, meta model.TemplateMeta) (*model.Template, error) {
	event, err := s.party.EventByID(eventID)
	if err != nil {
		return nil, err
	}
	name := meta.Name
	if name == "" {
		name = event.Title
	}

	user := s.party.identity.CurrentUser()
	stubs := make([]model.DishStub, 0, len(event.Dishes))
	for _, d := range event.Dishes {
		stubs = append(stubs, d.Stub())
	}

	tpl := model.Template{
		ID:          s.party.ident.NewID(),
		Name:        name,
		Description: meta.Description,
		Theme:       event.Theme,
		Dishes:      stubs,
		Public:      meta.Public,
		CreatorID:   user.ID,
		CreatorName: user.Name,
		CreatedOn:   time.Now().UTC(),
	}
	created, _, err := s.party.stores.Templates.Create(ctx, tpl)
	if err != nil {
		return nil, ErrStorageFailed
	}
	return &created, nil
}

// CreateFromTemplate merges the template's theme and dish stubs into a
// fresh event. The usage counter bump is best-effort; its failure
// never blocks event creation.
func (s *TemplateService) CreateFromTemplate(ctx context.Context, templateID string, draft model.EventDraft) (*model.Event, error) {
	tpl, _, err := s.party.stores.Templates.Get(ctx, templateID)
	if err != nil {
		return nil, ErrTemplateNotFound
	}

	if draft.Title == "" {
		draft.Title = tpl.Name
	}
	if draft.Theme == nil {
		theme := tpl.Theme
		draft.Theme = &theme
	}
	if len(draft.Dishes) == 0 {
		draft.Dishes = append([]model.DishStub(nil), tpl.Dishes...)
	}

	event, err := s.party.CreateEvent(ctx, draft)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.party.stores.Templates.Update(ctx, templateID,
		map[string]interface{}{"usage_count": tpl.UsageCount + 1}); err != nil {
		s.log.Warn("template usage counter update failed",
			slog.String("template_id", templateID),
			slog.String("error", err.Error()))
	}
	return event, nil
}

// Templates lists the templates visible to the current user: their
// own plus public ones, newest first.
func (s *TemplateService) Templates(ctx context.Context) ([]model.Template, error) {
	all, _, err := s.party.stores.Templates.Find(ctx, store.Filter{})
	if err != nil {
		return nil, ErrStorageFailed
	}
	user := s.party.identity.CurrentUser()
	out := make([]model.Template, 0, len(all))
	for _, t := range all {
		if t.Public || t.CreatorID == user.ID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	return out, nil
}
