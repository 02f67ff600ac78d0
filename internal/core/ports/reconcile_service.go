package ports

import "context"

// ReconcileReport counts the repairs made by one reconciliation pass.
type ReconcileReport struct {
	OrphanCommentsDeleted int64
	OutfitsRelinked       int
	DanglingRefsDropped   int
	MissingRefsAdded      int
	DanglingLikesPulled   int64
}

// Repaired reports whether the pass changed anything.
func (r ReconcileReport) Repaired() bool {
	return r.OrphanCommentsDeleted > 0 || r.OutfitsRelinked > 0 || r.DanglingLikesPulled > 0
}

// Reconciler restores outfit/comment/user referential integrity.
type Reconciler interface {
	Run(ctx context.Context) (*ReconcileReport, error)
}
