package critiques

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores critique records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]CritiqueRecord
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]CritiqueRecord),
		byUser: make(map[string][]string),
	}
}

// Save stores the record.
func (r *MemoryRepo) Save(ctx context.Context, record CritiqueRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[record.ID]; !exists {
		r.byUser[record.UserID] = append(r.byUser[record.UserID], record.ID)
	}
	r.byID[record.ID] = record
	return nil
}

// GetByID returns a record by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, recordID string) (CritiqueRecord, error) {
	if err := ctx.Err(); err != nil {
		return CritiqueRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.byID[recordID]
	if !ok {
		return CritiqueRecord{}, ErrNotFound
	}
	return record, nil
}

// ListByUser returns a user's records, newest first, with limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]CritiqueRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	ids := r.byUser[userID]
	records := make([]CritiqueRecord, 0, len(ids))
	for _, id := range ids {
		if record, ok := r.byID[id]; ok {
			records = append(records, record)
		}
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if offset >= len(records) {
		return []CritiqueRecord{}, nil
	}
	end := len(records)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return records[offset:end], nil
}

// Delete removes a record by ID. Deleting an unknown ID returns ErrNotFound.
func (r *MemoryRepo) Delete(ctx context.Context, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[recordID]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, recordID)

	ids := r.byUser[record.UserID]
	for i, id := range ids {
		if id == recordID {
			r.byUser[record.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
