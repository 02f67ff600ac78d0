package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

type stubUserService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	authenticateFn  func(ctx context.Context, username, password string) (*domain.User, error)
	renameFn        func(ctx context.Context, userID, username string) (*domain.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	deleteFn        func(ctx context.Context, userID string) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubUserService) Rename(ctx context.Context, userID, username string) (*domain.User, error) {
	return s.renameFn(ctx, userID, username)
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *stubUserService) Delete(ctx context.Context, userID string) error {
	return s.deleteFn(ctx, userID)
}

type stubOutfitService struct {
	createFn      func(ctx context.Context, in ports.CreateOutfitInput) (*domain.Outfit, error)
	listAllFn     func(ctx context.Context) ([]ports.OutfitDetail, error)
	listByOwnerFn func(ctx context.Context, ownerID string) ([]*domain.Outfit, error)
	updateFn      func(ctx context.Context, id string, in ports.UpdateOutfitInput) (*domain.Outfit, error)
	deleteManyFn  func(ctx context.Context, ids []string) (int64, error)
	toggleLikeFn  func(ctx context.Context, outfitID, userID string) (*ports.LikeResult, error)
	getLikesFn    func(ctx context.Context, outfitID, userID string) (*ports.LikeResult, error)
}

func (s *stubOutfitService) Create(ctx context.Context, in ports.CreateOutfitInput) (*domain.Outfit, error) {
	return s.createFn(ctx, in)
}

func (s *stubOutfitService) ListAll(ctx context.Context) ([]ports.OutfitDetail, error) {
	return s.listAllFn(ctx)
}

func (s *stubOutfitService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Outfit, error) {
	return s.listByOwnerFn(ctx, ownerID)
}

func (s *stubOutfitService) Update(ctx context.Context, id string, in ports.UpdateOutfitInput) (*domain.Outfit, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubOutfitService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.deleteManyFn(ctx, ids)
}

func (s *stubOutfitService) ToggleLike(ctx context.Context, outfitID, userID string) (*ports.LikeResult, error) {
	return s.toggleLikeFn(ctx, outfitID, userID)
}

func (s *stubOutfitService) GetLikes(ctx context.Context, outfitID, userID string) (*ports.LikeResult, error) {
	return s.getLikesFn(ctx, outfitID, userID)
}

type stubCommentService struct {
	createFn       func(ctx context.Context, in ports.CreateCommentInput) (*ports.CommentDetail, error)
	listByOutfitFn func(ctx context.Context, outfitID string) ([]ports.CommentDetail, error)
	updateFn       func(ctx context.Context, id, text string) (*ports.CommentDetail, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubCommentService) Create(ctx context.Context, in ports.CreateCommentInput) (*ports.CommentDetail, error) {
	return s.createFn(ctx, in)
}

func (s *stubCommentService) ListByOutfit(ctx context.Context, outfitID string) ([]ports.CommentDetail, error) {
	return s.listByOutfitFn(ctx, outfitID)
}

func (s *stubCommentService) Update(ctx context.Context, id, text string) (*ports.CommentDetail, error) {
	return s.updateFn(ctx, id, text)
}

func (s *stubCommentService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// newContext builds an Echo context with the validator installed and the
// given path params set as name, value pairs.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return m
}

func decodeArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var a []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return a
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectMessage(t *testing.T, body map[string]any, want string) {
	t.Helper()
	if body["message"] != want {
		t.Fatalf("expected message %q, got %v", want, body["message"])
	}
}
