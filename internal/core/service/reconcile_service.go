package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

var _ ports.Reconciler = (*ReconcileService)(nil)

// ReconcileService repairs the references left dangling when a two-write
// sequence was interrupted without a transaction. It must not run
// concurrently with request traffic: it rewrites comment lists from a
// snapshot. Orphan deletion re-checks each outfit, but a comment pushed while
// SetComments runs can still be dropped from the list.
type ReconcileService struct {
	outfits  ports.OutfitRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewReconcileService(
	outfits ports.OutfitRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *ReconcileService {
	return &ReconcileService{outfits: outfits, comments: comments, users: users, log: log}
}

// Run deletes comments whose outfit is gone, makes each outfit's comment list
// match the comments that point at it (oldest first), and removes likes by
// accounts that no longer exist.
func (s *ReconcileService) Run(ctx context.Context) (*ports.ReconcileReport, error) {
	report := &ports.ReconcileReport{}

	outfits, err := s.outfits.List(ctx, ports.OutfitFilter{})
	if err != nil {
		return nil, fmt.Errorf("reconcile: list outfits: %w", err)
	}
	comments, err := s.comments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile: list comments: %w", err)
	}

	known := make(map[string]struct{}, len(outfits))
	for _, o := range outfits {
		known[o.ID] = struct{}{}
	}

	linked := make(map[string][]string, len(outfits))
	var missing []string
	seenMissing := make(map[string]struct{})
	for _, c := range comments {
		if _, ok := known[c.OutfitID]; ok {
			linked[c.OutfitID] = append(linked[c.OutfitID], c.ID)
			continue
		}
		if _, ok := seenMissing[c.OutfitID]; !ok {
			seenMissing[c.OutfitID] = struct{}{}
			missing = append(missing, c.OutfitID)
		}
	}

	missing, err = s.stillMissing(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	if len(missing) > 0 {
		n, err := s.comments.DeleteByOutfits(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("reconcile: delete orphan comments: %w", err)
		}
		report.OrphanCommentsDeleted = n
	}

	for _, o := range outfits {
		want := linked[o.ID]
		if sameRefs(o.Comments, want) {
			continue
		}
		dropped, added := diffRefs(o.Comments, want)
		if want == nil {
			want = []string{}
		}
		if err := s.outfits.SetComments(ctx, o.ID, want); err != nil {
			return nil, fmt.Errorf("reconcile: relink outfit %s: %w", o.ID, err)
		}
		report.OutfitsRelinked++
		report.DanglingRefsDropped += dropped
		report.MissingRefsAdded += added
	}

	var likers []string
	for _, o := range outfits {
		likers = append(likers, o.Likes...)
	}
	resolved, err := resolveUsers(ctx, s.users, likers)
	if err != nil {
		return nil, fmt.Errorf("reconcile: resolve likers: %w", err)
	}
	var gone []string
	seenGone := make(map[string]struct{})
	for _, id := range likers {
		if _, ok := resolved[id]; ok {
			continue
		}
		if _, ok := seenGone[id]; !ok {
			seenGone[id] = struct{}{}
			gone = append(gone, id)
		}
	}
	if len(gone) > 0 {
		n, err := s.outfits.PullLikes(ctx, gone)
		if err != nil {
			return nil, fmt.Errorf("reconcile: pull dangling likes: %w", err)
		}
		report.DanglingLikesPulled = n
	}

	ev := s.log.Info()
	if report.Repaired() {
		ev = s.log.Warn()
	}
	ev.Int64("orphan_comments_deleted", report.OrphanCommentsDeleted).
		Int("outfits_relinked", report.OutfitsRelinked).
		Int("dangling_refs_dropped", report.DanglingRefsDropped).
		Int("missing_refs_added", report.MissingRefsAdded).
		Int64("dangling_likes_pulled", report.DanglingLikesPulled).
		Msg("reconciliation finished")

	return report, nil
}

// stillMissing drops the outfit ids that exist after all, such as outfits
// created after the snapshot was taken.
func (s *ReconcileService) stillMissing(ctx context.Context, ids []string) ([]string, error) {
	gone := ids[:0:0]
	for _, id := range ids {
		_, err := s.outfits.FindByID(ctx, id)
		switch {
		case err == nil:
			s.log.Debug().Str("outfit_id", id).Msg("outfit appeared after snapshot, keeping its comments")
		case errors.Is(err, domain.ErrOutfitNotFound), errors.Is(err, domain.ErrInvalidID):
			gone = append(gone, id)
		default:
			return nil, fmt.Errorf("check outfit %s: %w", id, err)
		}
	}
	return gone, nil
}

func sameRefs(have, want []string) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

// diffRefs counts the ids in have that are not in want, and the reverse.
func diffRefs(have, want []string) (dropped, added int) {
	wantSet := make(map[string]struct{}, len(want))
	for _, id := range want {
		wantSet[id] = struct{}{}
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, id := range have {
		haveSet[id] = struct{}{}
		if _, ok := wantSet[id]; !ok {
			dropped++
		}
	}
	for _, id := range want {
		if _, ok := haveSet[id]; !ok {
			added++
		}
	}
	return dropped, added
}
