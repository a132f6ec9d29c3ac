// Package service implements the event engine's business logic.
//
// PartyService is the event repository: it owns the canonical
// in-memory event graph and is its single writer. AssignmentService
// (dish/item claims) and TemplateService (snapshot/instantiate) sit
// beside it and mutate only through its primitives.
//
// All service methods return sentinel errors from errors.go; storage
// failures are recovered through the store layer's cache fallback and
// only surface as ErrStorageFailed when no fallback tier was left.
package service
