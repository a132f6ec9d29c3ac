package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/potluck/internal/model"
)

func TestAssignDishLastWriteWins(t *testing.T) {
	party, _, _ := newEngine(t)
	assign := NewAssignmentService(party)
	ctx := context.Background()

	event, err := party.CreateEvent(ctx, model.EventDraft{Title: "Dinner"})
	require.NoError(t, err)
	ana, err := party.JoinEvent(ctx, event.Code, model.GuestDraft{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	ben, err := party.JoinEvent(ctx, event.Code, model.GuestDraft{Name: "Ben", Email: "ben@example.com"})
	require.NoError(t, err)
	dishID := event.Dishes[0].ID

	dish, err := assign.AssignDish(ctx, event.ID, dishID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, dish.AssignedTo)

	// Ben's claim plainly overwrites Ana's, no conflict error
	dish, err = assign.AssignDish(ctx, event.ID, dishID, ben.ID)
	require.NoError(t, err)
	assert.Equal(t, ben.ID, dish.AssignedTo)

	anaDishes, _, err := assign.AssignmentsFor(event.ID, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, anaDishes, "the overwritten claimer no longer holds the dish")

	benDishes, _, err := assign.AssignmentsFor(event.ID, ben.ID)
	require.NoError(t, err)
	require.Len(t, benDishes, 1)
	assert.Equal(t, dishID, benDishes[0].ID)
}

func TestAssignDishRelease(t *testing.T) {
	party, _, _ := newEngine(t)
	assign := NewAssignmentService(party)
	ctx := context.Background()

	event, err := party.CreateEvent(ctx, model.EventDraft{Title: "Dinner"})
	require.NoError(t, err)
	ana, err := party.JoinEvent(ctx, event.Code, model.GuestDraft{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	dishID := event.Dishes[0].ID

	_, err = assign.AssignDish(ctx, event.ID, dishID, ana.ID)
	require.NoError(t, err)

	dish, err := assign.AssignDish(ctx, event.ID, dishID, "")
	require.NoError(t, err)
	assert.Empty(t, dish.AssignedTo)

	anaDishes, _, err := assign.AssignmentsFor(event.ID, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, anaDishes)
}

func TestAssignDishUnknownTargets(t *testing.T) {
	party, _, _ := newEngine(t)
	assign := NewAssignmentService(party)
	ctx := context.Background()

	event, err := party.CreateEvent(ctx, model.EventDraft{Title: "Dinner"})
	require.NoError(t, err)
	dishID := event.Dishes[0].ID

	_, err = assign.AssignDish(ctx, event.ID, dishID, "no-such-guest")
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = assign.AssignDish(ctx, event.ID, "no-such-dish", "")
	assert.ErrorIs(t, err, ErrDishNotFound)

	_, err = assign.AssignDish(ctx, "no-such-event", dishID, "")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestAssignAcrossEvents(t *testing.T) {
	party, _, _ := newEngine(t)
	assign := NewAssignmentService(party)
	ctx := context.Background()

	first, err := party.CreateEvent(ctx, model.EventDraft{Title: "Dinner"})
	require.NoError(t, err)
	second, err := party.CreateEvent(ctx, model.EventDraft{Title: "Brunch"})
	require.NoError(t, err)

	item, err := party.AddItem(ctx, second.ID, model.ItemDraft{Name: "Ice", Category: model.ItemDrinks})
	require.NoError(t, err)

	// Ids belonging to another event are rejected as misdirected, not unknown
	_, err = assign.AssignDish(ctx, first.ID, second.Dishes[0].ID, "")
	assert.ErrorIs(t, err, ErrDishNotInEvent)

	_, err = assign.AssignItem(ctx, first.ID, item.ID, "")
	assert.ErrorIs(t, err, ErrItemNotInEvent)
}

func TestAssignItem(t *testing.T) {
	party, _, _ := newEngine(t)
	assign := NewAssignmentService(party)
	ctx := context.Background()

	event, err := party.CreateEvent(ctx, model.EventDraft{Title: "Dinner"})
	require.NoError(t, err)
	ana, err := party.JoinEvent(ctx, event.Code, model.GuestDraft{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	item, err := party.AddItem(ctx, event.ID, model.ItemDraft{Name: "Ice", Category: model.ItemDrinks, Quantity: 3})
	require.NoError(t, err)

	claimed, err := assign.AssignItem(ctx, event.ID, item.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, ana.ID, claimed.AssignedTo)

	_, anaItems, err := assign.AssignmentsFor(event.ID, ana.ID)
	require.NoError(t, err)
	require.Len(t, anaItems, 1)
	assert.Equal(t, item.ID, anaItems[0].ID)

	_, err = assign.AssignItem(ctx, event.ID, "no-such-item", ana.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
