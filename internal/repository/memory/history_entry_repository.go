package memory

import (
	"context"
	"sort"
	"sync"

	"telemedicine-assistant-be/internal/entity"
	"telemedicine-assistant-be/internal/repository/contract"
	"telemedicine-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// HistoryEntryRepository keeps daily history entries in process memory.
type HistoryEntryRepository struct {
	mu      sync.RWMutex
	entries []*entity.HistoryEntry
}

func NewHistoryEntryRepository() *HistoryEntryRepository {
	return &HistoryEntryRepository{}
}

func (r *HistoryEntryRepository) Create(ctx context.Context, entry *entity.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	clone := *entry
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *HistoryEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *HistoryEntryRepository) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserId != userId {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *HistoryEntryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.HistoryEntry
	for _, e := range r.entries {
		if matchHistoryEntry(e, specs) {
			clone := *e
			out = append(out, &clone)
		}
	}
	applyHistoryOrdering(out, specs)
	return out, nil
}

func (r *HistoryEntryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HistoryEntry, error) {
	entries, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

func (r *HistoryEntryRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, e := range r.entries {
		if matchHistoryEntry(e, specs) {
			count++
		}
	}
	return count, nil
}

func matchHistoryEntry(e *entity.HistoryEntry, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if e.Id != s.ID {
				return false
			}
		case specification.ByUserID:
			if e.UserId != s.UserID {
				return false
			}
		case specification.ByDate:
			if e.Date != s.Date {
				return false
			}
		}
	}
	return true
}

func applyHistoryOrdering(entries []*entity.HistoryEntry, specs []specification.Specification) {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.SliceStable(entries, func(i, j int) bool {
				if s.Desc {
					return entries[i].CreatedAt.After(entries[j].CreatedAt)
				}
				return entries[i].CreatedAt.Before(entries[j].CreatedAt)
			})
		}
	}
}

var _ contract.HistoryEntryRepository = (*HistoryEntryRepository)(nil)
