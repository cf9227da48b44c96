package services

import (
	"errors"
	"fmt"
	"log"

	"cinehub/internal/repositories"
	"cinehub/pkg/events"
)

// ErrNotFound reports that a referenced entity is missing or soft-deleted.
// It aliases the repository sentinel so errors.Is works across layers.
var ErrNotFound = repositories.ErrNotFound

// ErrConflict reports a uniqueness violation (email or title name) detected
// by the pre-check. A conflict that races past the pre-check is caught by
// the database unique index and surfaces as a generic database error.
var ErrConflict = errors.New("conflict")

// ValidationError reports malformed input, detected before any persistence
// attempt. Value carries the submitted value so forms can re-display it.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UpstreamError reports a failed call to an external collaborator, such as
// the object-storage upload. The pending entity change is never committed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// publishEvent sends a lifecycle event best-effort. Publish failures are
// logged and never fail the request.
func publishEvent(client *events.Client, eventType string, payload map[string]interface{}) {
	if client == nil {
		return
	}
	if err := client.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
