package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store shared by the three stub repositories
// ---------------------------------------------------------------------------

type memStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]*domain.User
	outfits  map[string]*domain.Outfit
	comments map[string]*domain.Comment
	order    map[string]int // insertion sequence, used for creation ordering

	pushErr error // if set, PushComment returns this error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		outfits:  make(map[string]*domain.Outfit),
		comments: make(map[string]*domain.Comment),
		order:    make(map[string]int),
	}
}

func (m *memStore) nextID() string {
	m.seq++
	id := fmt.Sprintf("%024x", 0xfacade000000+m.seq)
	m.order[id] = m.seq
	return id
}

// canon mirrors the Mongo repositories: ids parse in either case and are
// stored lowercase.
func canon(id string) string { return strings.ToLower(id) }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneOutfit(o *domain.Outfit) *domain.Outfit {
	c := *o
	c.Likes = append([]string{}, o.Likes...)
	c.Comments = append([]string{}, o.Comments...)
	return &c
}

func cloneComment(c *domain.Comment) *domain.Comment {
	cp := *c
	return &cp
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct{ m *memStore }

func (r stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	c := cloneUser(u)
	c.ID = r.m.nextID()
	r.m.users[c.ID] = c
	return cloneUser(c), nil
}

func (r stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[canon(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.m.users[canon(id)]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r stubUserRepo) Update(_ context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[canon(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	return cloneUser(u), nil
}

func (r stubUserRepo) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[canon(id)]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.m.users, canon(id))
	return nil
}

// ---------------------------------------------------------------------------
// Outfits
// ---------------------------------------------------------------------------

type stubOutfitRepo struct{ m *memStore }

func (r stubOutfitRepo) Create(_ context.Context, o *domain.Outfit) (*domain.Outfit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c := cloneOutfit(o)
	c.ID = r.m.nextID()
	r.m.outfits[c.ID] = c
	return cloneOutfit(c), nil
}

func (r stubOutfitRepo) FindByID(_ context.Context, id string) (*domain.Outfit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.outfits[canon(id)]
	if !ok {
		return nil, domain.ErrOutfitNotFound
	}
	return cloneOutfit(o), nil
}

// List mirrors the Mongo query: newest first, optional owner filter.
func (r stubOutfitRepo) List(_ context.Context, f ports.OutfitFilter) ([]*domain.Outfit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*domain.Outfit{}
	for _, o := range r.m.outfits {
		if f.OwnerID != "" && o.UserID != f.OwnerID {
			continue
		}
		out = append(out, cloneOutfit(o))
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order[out[i].ID] > r.m.order[out[j].ID] })
	return out, nil
}

func (r stubOutfitRepo) Update(_ context.Context, id string, p domain.OutfitPatch) (*domain.Outfit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.outfits[id]
	if !ok {
		return nil, domain.ErrOutfitNotFound
	}
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Image != nil {
		o.Image = *p.Image
	}
	return cloneOutfit(o), nil
}

func (r stubOutfitRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.m.outfits[id]; ok {
			delete(r.m.outfits, id)
			n++
		}
	}
	return n, nil
}

func (r stubOutfitRepo) ToggleLike(_ context.Context, outfitID, userID string) (*domain.Outfit, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.outfits[canon(outfitID)]
	if !ok {
		return nil, domain.ErrOutfitNotFound
	}
	userID = canon(userID)
	kept := o.Likes[:0:0]
	found := false
	for _, id := range o.Likes {
		if id == userID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		kept = append(kept, userID)
	}
	o.Likes = kept
	return cloneOutfit(o), nil
}

func (r stubOutfitRepo) PullLikes(_ context.Context, userIDs []string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	drop := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		drop[id] = struct{}{}
	}
	var n int64
	for _, o := range r.m.outfits {
		kept := []string{}
		for _, id := range o.Likes {
			if _, ok := drop[id]; !ok {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(o.Likes) {
			o.Likes = kept
			n++
		}
	}
	return n, nil
}

func (r stubOutfitRepo) PushComment(_ context.Context, outfitID, commentID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.pushErr != nil {
		return r.m.pushErr
	}
	o, ok := r.m.outfits[outfitID]
	if !ok {
		return domain.ErrOutfitNotFound
	}
	o.Comments = append(o.Comments, commentID)
	return nil
}

func (r stubOutfitRepo) PullComment(_ context.Context, outfitID, commentID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.outfits[outfitID]
	if !ok {
		return domain.ErrOutfitNotFound
	}
	kept := []string{}
	for _, id := range o.Comments {
		if id != commentID {
			kept = append(kept, id)
		}
	}
	o.Comments = kept
	return nil
}

func (r stubOutfitRepo) SetComments(_ context.Context, outfitID string, ids []string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.outfits[outfitID]
	if !ok {
		return domain.ErrOutfitNotFound
	}
	o.Comments = append([]string{}, ids...)
	return nil
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

type stubCommentRepo struct{ m *memStore }

func (r stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := cloneComment(c)
	cp.ID = r.m.nextID()
	r.m.comments[cp.ID] = cp
	return cloneComment(cp), nil
}

func (r stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r stubCommentRepo) sorted(match func(*domain.Comment) bool, order ports.CommentOrder) []*domain.Comment {
	out := []*domain.Comment{}
	for _, c := range r.m.comments {
		if match(c) {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if order == ports.NewestFirst {
			return r.m.order[out[i].ID] > r.m.order[out[j].ID]
		}
		return r.m.order[out[i].ID] < r.m.order[out[j].ID]
	})
	return out
}

func (r stubCommentRepo) ListByOutfit(_ context.Context, outfitID string, order ports.CommentOrder) ([]*domain.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.sorted(func(c *domain.Comment) bool { return c.OutfitID == outfitID }, order), nil
}

func (r stubCommentRepo) ListAll(_ context.Context) ([]*domain.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.sorted(func(*domain.Comment) bool { return true }, ports.OldestFirst), nil
}

func (r stubCommentRepo) Update(_ context.Context, id string, p domain.CommentPatch) (*domain.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	return cloneComment(c), nil
}

func (r stubCommentRepo) Delete(_ context.Context, id string) (*domain.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	delete(r.m.comments, id)
	return c, nil
}

func (r stubCommentRepo) DeleteByOutfits(_ context.Context, outfitIDs []string) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	drop := make(map[string]struct{}, len(outfitIDs))
	for _, id := range outfitIDs {
		drop[id] = struct{}{}
	}
	var n int64
	for id, c := range r.m.comments {
		if _, ok := drop[c.OutfitID]; ok {
			delete(r.m.comments, id)
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Transactor
// ---------------------------------------------------------------------------

// stubTx runs fn inline, like the Mongo transactor with transactions off.
type stubTx struct{ calls int }

func (t *stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fixture struct {
	store    *memStore
	tx       *stubTx
	users    *UserService
	outfits  *OutfitService
	comments *CommentService
}

func newFixture() *fixture {
	m := newMemStore()
	tx := &stubTx{}
	u, o, c := stubUserRepo{m}, stubOutfitRepo{m}, stubCommentRepo{m}
	return &fixture{
		store:    m,
		tx:       tx,
		users:    NewUserService(u, o, c, tx, 4, discardLogger),
		outfits:  NewOutfitService(o, c, u, tx, discardLogger),
		comments: NewCommentService(c, o, u, tx, discardLogger),
	}
}

func (f *fixture) mustRegister(username string) *domain.User {
	u, err := f.users.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "pass-" + username,
	})
	if err != nil {
		panic(fmt.Sprintf("register %s: %v", username, err))
	}
	return u
}

func (f *fixture) mustOutfit(ownerID, name string) *domain.Outfit {
	o, err := f.outfits.Create(context.Background(), ports.CreateOutfitInput{
		Name:        name,
		Description: "Casual fit",
		Image:       "https://img.example.com/" + name,
		UserID:      ownerID,
	})
	if err != nil {
		panic(fmt.Sprintf("create outfit %s: %v", name, err))
	}
	return o
}

func (f *fixture) mustComment(outfitID, userID, text string) *ports.CommentDetail {
	c, err := f.comments.Create(context.Background(), ports.CreateCommentInput{
		OutfitID: outfitID,
		UserID:   userID,
		Text:     text,
	})
	if err != nil {
		panic(fmt.Sprintf("create comment: %v", err))
	}
	return c
}
