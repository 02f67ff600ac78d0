package service

import (
	"context"

	"github.com/outfitshare/outfit-api/internal/core/ports"
)

// resolveUsers looks up the public summaries of ids in one query. Ids with no
// matching account are absent from the returned map.
func resolveUsers(ctx context.Context, users ports.UserRepository, ids []string) (map[string]ports.UserSummary, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	out := make(map[string]ports.UserSummary, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}

	found, err := users.FindByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		out[u.ID] = ports.UserSummary{ID: u.ID, Username: u.Username}
	}
	return out, nil
}

func summaryOf(resolved map[string]ports.UserSummary, id string) *ports.UserSummary {
	s, ok := resolved[id]
	if !ok {
		return nil
	}
	return &s
}
