// Package model defines the domain entities for the potluck engine.
//
// The model package contains struct definitions for events, guests,
// dishes, items, messages, and templates, plus the draft/patch request
// shapes used by the service layer. Models carry json struct tags in
// the in-memory (camel-free, snake_case) shape; translation to and
// from remote-store records happens in the store package's codecs.
//
// # Ownership
//
// An Event owns its guests, dishes, items, and messages. Guests carry
// an event_id back-reference but are only ever deleted through event
// deletion.
//
// # RSVP
//
// RSVP is the only field with constrained values: pending, yes, no.
// Any state may transition to any other; there is no terminal state.
package model
