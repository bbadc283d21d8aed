// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/filmes-api/internal/model"
)

// MovieEventsQueue is the durable queue movie events are published to.
const MovieEventsQueue = "filme.events"

// Event types published after a committed write.
const (
	MovieCreated = "filme.created"
	MovieUpdated = "filme.updated"
	MovieDeleted = "filme.deleted"
)

// MovieEvent is published when a movie row is created, replaced, patched or
// deleted.  It carries the state after the write (the last known state for
// deletions) so consumers do not need to query the primary database.
type MovieEvent struct {
	Type       string `json:"type"`
	MovieID    uint64 `json:"movie_id"`
	Title      string `json:"title"`
	Genre      string `json:"genre"`
	Duration   int    `json:"duration"`
	OccurredAt string `json:"occurred_at"`
}

// NewMovieEvent builds an event of the given type for m, stamped with the
// current UTC time.
func NewMovieEvent(typ string, m *model.Movie) MovieEvent {
	return MovieEvent{
		Type:       typ,
		MovieID:    m.ID,
		Title:      m.Title,
		Genre:      m.Genre,
		Duration:   m.Duration,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
