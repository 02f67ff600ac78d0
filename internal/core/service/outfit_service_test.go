package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

func TestOutfitService_Create(t *testing.T) {
	f := newFixture()

	o, err := f.outfits.Create(context.Background(), ports.CreateOutfitInput{
		Name: "Street", Description: "Casual fit", Image: "url", UserID: "u1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Likes == nil || len(o.Likes) != 0 {
		t.Errorf("expected empty like-set, got %v", o.Likes)
	}
	if o.Comments == nil || len(o.Comments) != 0 {
		t.Errorf("expected empty comment list, got %v", o.Comments)
	}
	if o.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestOutfitService_Create_MissingFields(t *testing.T) {
	f := newFixture()

	_, err := f.outfits.Create(context.Background(), ports.CreateOutfitInput{Name: "Street", UserID: "u1"})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestOutfitService_ListAll_ResolvesOwnerAndLikes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.mustRegister("alice")
	bob := f.mustRegister("bob")

	older := f.mustOutfit(alice.ID, "older")
	newer := f.mustOutfit("gone-user", "newer")
	if _, err := f.outfits.ToggleLike(ctx, older.ID, bob.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := f.outfits.ToggleLike(ctx, older.ID, "ghost"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	list, err := f.outfits.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 outfits, got %d", len(list))
	}
	if list[0].Outfit.ID != newer.ID || list[1].Outfit.ID != older.ID {
		t.Fatalf("expected newest first")
	}
	if list[0].Owner != nil {
		t.Errorf("expected nil owner for missing account, got %+v", list[0].Owner)
	}
	if list[1].Owner == nil || list[1].Owner.Username != "alice" {
		t.Errorf("expected owner alice, got %+v", list[1].Owner)
	}
	if len(list[1].Likers) != 1 || list[1].Likers[0].Username != "bob" {
		t.Errorf("expected likers [bob], got %+v", list[1].Likers)
	}
}

func TestOutfitService_ListByOwner(t *testing.T) {
	f := newFixture()
	first := f.mustOutfit("u1", "first")
	second := f.mustOutfit("u1", "second")
	f.mustOutfit("u2", "other")

	got, err := f.outfits.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestOutfitService_Update(t *testing.T) {
	f := newFixture()
	o := f.mustOutfit("u1", "before")

	updated, err := f.outfits.Update(context.Background(), o.ID, ports.UpdateOutfitInput{
		Name: "after", Description: "new desc", Image: "new-url",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "after" || updated.Description != "new desc" || updated.Image != "new-url" {
		t.Fatalf("fields not replaced: %+v", updated)
	}

	if _, err := f.outfits.Update(context.Background(), o.ID, ports.UpdateOutfitInput{Name: "x"}); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := f.outfits.Update(context.Background(), "missing", ports.UpdateOutfitInput{
		Name: "a", Description: "b", Image: "c",
	}); !errors.Is(err, domain.ErrOutfitNotFound) {
		t.Fatalf("expected ErrOutfitNotFound, got %v", err)
	}
}

func TestOutfitService_DeleteMany(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.mustOutfit("u1", "a")
	b := f.mustOutfit("u1", "b")
	survivor := f.mustOutfit("u1", "c")
	f.mustComment(a.ID, "u2", "on a")
	kept := f.mustComment(survivor.ID, "u2", "on c")

	n, err := f.outfits.DeleteMany(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if got, _ := f.comments.ListByOutfit(ctx, a.ID); len(got) != 0 {
		t.Fatalf("expected comments of deleted outfit to cascade, got %d", len(got))
	}
	if got, _ := f.comments.ListByOutfit(ctx, survivor.ID); len(got) != 1 || got[0].Comment.ID != kept.Comment.ID {
		t.Fatalf("expected unrelated comment to survive, got %+v", got)
	}

	// Idempotent: deleting the same ids again finds nothing.
	if _, err := f.outfits.DeleteMany(ctx, []string{a.ID, b.ID}); !errors.Is(err, domain.ErrNothingDeleted) {
		t.Fatalf("expected ErrNothingDeleted, got %v", err)
	}
}

func TestOutfitService_DeleteMany_Validation(t *testing.T) {
	f := newFixture()

	if _, err := f.outfits.DeleteMany(context.Background(), nil); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := f.outfits.DeleteMany(context.Background(), []string{""}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestOutfitService_ToggleLike_Parity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.mustOutfit("u1", "street")

	for i := 1; i <= 5; i++ {
		res, err := f.outfits.ToggleLike(ctx, o.ID, "u2")
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		wantLiked := i%2 == 1
		if res.Liked != wantLiked {
			t.Fatalf("after %d toggles expected liked=%v, got %v", i, wantLiked, res.Liked)
		}
		wantCount := 0
		if wantLiked {
			wantCount = 1
		}
		if res.LikeCount != wantCount {
			t.Fatalf("after %d toggles expected count %d, got %d", i, wantCount, res.LikeCount)
		}

		likes, err := f.outfits.GetLikes(ctx, o.ID, "u2")
		if err != nil {
			t.Fatalf("get likes: %v", err)
		}
		if likes.Liked != res.Liked || likes.LikeCount != res.LikeCount {
			t.Fatalf("GetLikes %+v disagrees with toggle result %+v", likes, res)
		}
	}
}

func TestOutfitService_ToggleLike_UppercaseUserID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := f.mustRegister("owner")
	liker := f.mustRegister("liker")
	o := f.mustOutfit(owner.ID, "street")
	upper := strings.ToUpper(liker.ID)

	res, err := f.outfits.ToggleLike(ctx, strings.ToUpper(o.ID), upper)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.Liked || res.LikeCount != 1 {
		t.Fatalf("expected liked with 1 like, got %+v", res)
	}

	for _, id := range []string{upper, liker.ID} {
		likes, err := f.outfits.GetLikes(ctx, o.ID, id)
		if err != nil {
			t.Fatalf("get likes: %v", err)
		}
		if !likes.Liked || likes.LikeCount != 1 {
			t.Fatalf("GetLikes(%s) = %+v, want liked with 1 like", id, likes)
		}
	}

	res, err = f.outfits.ToggleLike(ctx, o.ID, liker.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.Liked || res.LikeCount != 0 {
		t.Fatalf("the lowercase id must undo the uppercase like, got %+v", res)
	}
}

func TestOutfitService_ToggleLike_Errors(t *testing.T) {
	f := newFixture()

	if _, err := f.outfits.ToggleLike(context.Background(), "", "u1"); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := f.outfits.ToggleLike(context.Background(), "missing", "u1"); !errors.Is(err, domain.ErrOutfitNotFound) {
		t.Fatalf("expected ErrOutfitNotFound, got %v", err)
	}
}

func TestOutfitService_ToggleLike_ConcurrentUsers(t *testing.T) {
	f := newFixture()
	o := f.mustOutfit("owner", "popular")

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := f.outfits.ToggleLike(context.Background(), o.ID, fmt.Sprintf("user-%d", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle failed: %v", err)
	}

	likes, err := f.outfits.GetLikes(context.Background(), o.ID, "")
	if err != nil {
		t.Fatalf("get likes: %v", err)
	}
	if likes.LikeCount != n {
		t.Fatalf("expected %d likes, got %d", n, likes.LikeCount)
	}
	if likes.Liked {
		t.Fatal("liked must be false when no user is given")
	}
}

func TestOutfitService_GetLikes_NotFound(t *testing.T) {
	f := newFixture()
	if _, err := f.outfits.GetLikes(context.Background(), "missing", ""); !errors.Is(err, domain.ErrOutfitNotFound) {
		t.Fatalf("expected ErrOutfitNotFound, got %v", err)
	}
}
