// Package repository provides the durable append-only store for records
// produced by function handlers. The store is keyed by record kind;
// records are never updated or deleted here. Readers (the hosting UI, the
// records CLI) pull lists independently of the writers.
package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

// Repository is the durable store contract. Append must be atomic with
// respect to concurrent appends from independent conversations.
type Repository interface {
	// Append adds a record to its kind's log
	Append(ctx context.Context, record *model.Record) error

	// List returns all records of a kind, oldest first
	List(ctx context.Context, kind model.RecordKind) ([]*model.Record, error)

	// ListByActor returns a kind's records created by one actor, oldest first
	ListByActor(ctx context.Context, kind model.RecordKind, actorID string) ([]*model.Record, error)

	// Close releases underlying resources
	Close() error
}

// memoryRepo is a mutex-guarded in-memory store used by tests and
// ephemeral chat sessions
type memoryRepo struct {
	mu      sync.Mutex
	records map[model.RecordKind][]*model.Record
}

// NewMemory creates an in-memory repository
func NewMemory() Repository {
	return &memoryRepo{
		records: make(map[model.RecordKind][]*model.Record),
	}
}

func (r *memoryRepo) Append(ctx context.Context, record *model.Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Kind] = append(r.records[record.Kind], record)
	return nil
}

func (r *memoryRepo) List(ctx context.Context, kind model.RecordKind) ([]*model.Record, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Record, len(r.records[kind]))
	copy(out, r.records[kind])
	return out, nil
}

func (r *memoryRepo) ListByActor(ctx context.Context, kind model.RecordKind, actorID string) ([]*model.Record, error) {
	all, err := r.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	var out []*model.Record
	for _, rec := range all {
		if rec.ActorID == actorID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memoryRepo) Close() error {
	return nil
}

func validateRecord(record *model.Record) error {
	if record == nil {
		return goerr.New("record is nil")
	}
	if record.ID == "" {
		return goerr.New("record ID is empty")
	}
	if err := record.Kind.Validate(); err != nil {
		return err
	}
	return nil
}
