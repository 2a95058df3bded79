// Package outbox persists reservation lifecycle events for asynchronous
// publication, keeping event emission out of the request path.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	stateNew     = "NEW"
	stateClaimed = "CLAIMED"
	stateSent    = "SENT"
	stateFailed  = "FAILED"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

// EventDocument is one pending or settled event.
type EventDocument struct {
	ID          string            `bson:"_id"`
	Name        string            `bson:"name"`
	Payload     []byte            `bson:"payload"`
	OccurredAt  time.Time         `bson:"occurred_at"`
	Aggregate   string            `bson:"aggregate"`
	Headers     map[string]string `bson:"headers"`
	State       string            `bson:"state"`
	Attempts    int               `bson:"attempts"`
	NextAttempt time.Time         `bson:"next_attempt_at"`
	ClaimedBy   string            `bson:"claimed_by"`
	ClaimedAt   time.Time         `bson:"claimed_at"`
	SentAt      time.Time         `bson:"sent_at"`
	LastError   string            `bson:"last_error"`
}

// Store is the persistence contract shared by the mongo and memory outboxes.
type Store interface {
	Enqueue(ctx context.Context, name, aggregateID string, payload any) error
	Claim(ctx context.Context, workerID string) (*EventDocument, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error
}

func newDocument(name, aggregateID string, payload any) (EventDocument, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return EventDocument{}, fmt.Errorf("outbox: encode payload: %w", err)
	}
	now := time.Now().UTC()
	return EventDocument{
		ID:          uuid.NewString(),
		Name:        name,
		Payload:     body,
		OccurredAt:  now,
		Aggregate:   aggregateID,
		Headers:     map[string]string{},
		State:       stateNew,
		NextAttempt: now,
	}, nil
}

// MemoryStore backs tests and the demo wiring mode.
type MemoryStore struct {
	mu    sync.Mutex
	items []*EventDocument
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Enqueue(_ context.Context, name, aggregateID string, payload any) error {
	doc, err := newDocument(name, aggregateID, payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, &doc)
	return nil
}

func (s *MemoryStore) Claim(_ context.Context, workerID string) (*EventDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, doc := range s.items {
		claimable := doc.State == stateNew || doc.State == stateFailed
		if claimable && !doc.NextAttempt.After(now) {
			doc.State = stateClaimed
			doc.ClaimedBy = workerID
			doc.ClaimedAt = now
			clone := *doc
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) MarkSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.items {
		if doc.ID == id {
			doc.State = stateSent
			doc.SentAt = time.Now().UTC()
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) MarkFailed(_ context.Context, id string, next time.Time, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.items {
		if doc.ID == id {
			doc.State = stateFailed
			doc.NextAttempt = next
			doc.LastError = errMsg
			doc.Attempts++
			return nil
		}
	}
	return nil
}

// Pending returns the events not yet sent, oldest first. Test helper.
func (s *MemoryStore) Pending() []EventDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EventDocument, 0, len(s.items))
	for _, doc := range s.items {
		if doc.State != stateSent {
			out = append(out, *doc)
		}
	}
	return out
}
