package service

import (
	"context"
	"errors"
	"testing"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

func TestCommentService_Create_LinksOutfit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.mustRegister("alice")
	o := f.mustOutfit("owner", "street")

	detail, err := f.comments.Create(ctx, ports.CreateCommentInput{OutfitID: o.ID, UserID: author.ID, Text: "love it"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Author == nil || detail.Author.Username != "alice" {
		t.Fatalf("expected author alice, got %+v", detail.Author)
	}

	stored, err := f.outfits.outfits.FindByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("find outfit: %v", err)
	}
	if len(stored.Comments) != 1 || stored.Comments[0] != detail.Comment.ID {
		t.Fatalf("expected outfit to reference new comment, got %v", stored.Comments)
	}
}

func TestCommentService_Create_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.comments.Create(context.Background(), ports.CreateCommentInput{OutfitID: "o1", UserID: "u1"})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestCommentService_Create_OutfitMissing(t *testing.T) {
	f := newFixture()

	_, err := f.comments.Create(context.Background(), ports.CreateCommentInput{OutfitID: "missing", UserID: "u1", Text: "hi"})
	if !errors.Is(err, domain.ErrOutfitNotFound) {
		t.Fatalf("expected ErrOutfitNotFound, got %v", err)
	}
	if len(f.store.comments) != 0 {
		t.Fatal("no comment should be stored for a missing outfit")
	}
}

func TestCommentService_Create_LinkFailureSurfaces(t *testing.T) {
	f := newFixture()
	o := f.mustOutfit("owner", "street")
	f.store.pushErr = errors.New("write conflict")

	if _, err := f.comments.Create(context.Background(), ports.CreateCommentInput{OutfitID: o.ID, UserID: "u1", Text: "hi"}); err == nil {
		t.Fatal("expected link failure to be returned")
	}
}

func TestCommentService_ListByOutfit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.mustOutfit("owner", "street")
	first := f.mustComment(o.ID, "u1", "first")
	second := f.mustComment(o.ID, "u2", "second")
	f.mustComment(f.mustOutfit("owner", "other").ID, "u1", "elsewhere")

	got, err := f.comments.ListByOutfit(ctx, o.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Comment.ID != second.Comment.ID || got[1].Comment.ID != first.Comment.ID {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestCommentService_ListByOutfit_InvalidID(t *testing.T) {
	f := newFixture()

	for _, id := range []string{"", "undefined"} {
		if _, err := f.comments.ListByOutfit(context.Background(), id); !errors.Is(err, domain.ErrInvalidID) {
			t.Errorf("ListByOutfit(%q): expected ErrInvalidID, got %v", id, err)
		}
	}
}

func TestCommentService_Update(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	author := f.mustRegister("bob")
	c := f.mustComment(f.mustOutfit("owner", "x").ID, author.ID, "old")

	updated, err := f.comments.Update(ctx, c.Comment.ID, "new")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Comment.Text != "new" || updated.Author == nil || updated.Author.Username != "bob" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := f.comments.Update(ctx, c.Comment.ID, ""); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := f.comments.Update(ctx, "missing", "x"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_Delete_PrunesOutfitReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.mustOutfit("owner", "x")
	gone := f.mustComment(o.ID, "u1", "remove me")
	stays := f.mustComment(o.ID, "u1", "keep me")

	if err := f.comments.Delete(ctx, gone.Comment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stored, _ := f.outfits.outfits.FindByID(ctx, o.ID)
	if len(stored.Comments) != 1 || stored.Comments[0] != stays.Comment.ID {
		t.Fatalf("expected only the remaining comment referenced, got %v", stored.Comments)
	}

	if err := f.comments.Delete(ctx, gone.Comment.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound on second delete, got %v", err)
	}
}

func TestCommentService_Delete_OutfitAlreadyGone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.mustOutfit("owner", "x")
	c := f.mustComment(o.ID, "u1", "orphan soon")
	delete(f.store.outfits, o.ID)

	if err := f.comments.Delete(ctx, c.Comment.ID); err != nil {
		t.Fatalf("expected delete to tolerate missing outfit, got %v", err)
	}
}
