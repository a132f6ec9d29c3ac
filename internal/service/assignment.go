package service

import (
	"context"

	"github.com/gatherly/potluck/internal/model"
)

// AssignmentService implements claim/release semantics for dishes and
// items. Assignment is exclusive (one guest per entity) but
// unconditional: assigning to a new guest silently replaces any prior
// assignment, and two near-simultaneous claims resolve last-write-
// wins. All graph mutation goes through the party service.
type AssignmentService struct {
	party *PartyService
}

// NewAssignmentService creates the resolver over the event repository.
func NewAssignmentService(party *PartyService) *AssignmentService {
	return &AssignmentService{party: party}
}

// AssignDish sets the dish's assignee. An empty guest id releases it;
// there is no separate unassign operation.
func (s *AssignmentService) AssignDish(ctx context.Context, eventID, dishID, guestID string) (*model.Dish, error) {
	return s.party.setDishAssignment(ctx, eventID, dishID, guestID)
}

// AssignItem sets the item's assignee. An empty guest id releases it.
func (s *AssignmentService) AssignItem(ctx context.Context, eventID, itemID, guestID string) (*model.Item, error) {
	return s.party.setItemAssignment(ctx, eventID, itemID, guestID)
}

// AssignmentsFor returns everything one guest has claimed within an
// event.
func (s *AssignmentService) AssignmentsFor(eventID, guestID string) ([]model.Dish, []model.Item, error) {
	event, err := s.party.EventByID(eventID)
	if err != nil {
		return nil, nil, err
	}
	var dishes []model.Dish
	for _, d := range event.Dishes {
		if d.AssignedTo == guestID && guestID != "" {
			dishes = append(dishes, d)
		}
	}
	var items []model.Item
	for _, i := range event.Items {
		if i.AssignedTo == guestID && guestID != "" {
			items = append(items, i)
		}
	}
	return dishes, items, nil
}
