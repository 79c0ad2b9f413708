package critiques

import "context"

// Repo defines persistence operations for critique records.
//
// Delete is unconditional by id; ownership is enforced by the caller. The
// composite record id keeps collisions to same-user saves within the same
// millisecond.
type Repo interface {
	Save(ctx context.Context, record CritiqueRecord) error
	GetByID(ctx context.Context, recordID string) (CritiqueRecord, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]CritiqueRecord, error)
	Delete(ctx context.Context, recordID string) error
}
