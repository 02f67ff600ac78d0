package handler

import (
	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func idRef(id string) userRef {
	return userRef{id: id}
}

func resolvedRef(id string, s *ports.UserSummary) userRef {
	ref := userRef{id: id, resolved: true}
	if s != nil {
		ref.summary = &userSummaryResponse{ID: s.ID, Username: s.Username}
	}
	return ref
}

// toOutfitResponse renders an outfit with unresolved references.
func toOutfitResponse(o *domain.Outfit) outfitResponse {
	likes := make([]userRef, 0, len(o.Likes))
	for _, id := range o.Likes {
		likes = append(likes, idRef(id))
	}
	return outfitResponse{
		ID:          o.ID,
		User:        idRef(o.UserID),
		Name:        o.Name,
		Description: o.Description,
		Image:       o.Image,
		Likes:       likes,
		Comments:    nonNil(o.Comments),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// toOutfitDetailResponse renders an outfit with owner and likers resolved.
func toOutfitDetailResponse(d ports.OutfitDetail) outfitResponse {
	res := toOutfitResponse(d.Outfit)
	res.User = resolvedRef(d.Outfit.UserID, d.Owner)
	res.Likes = make([]userRef, 0, len(d.Likers))
	for i := range d.Likers {
		res.Likes = append(res.Likes, resolvedRef(d.Likers[i].ID, &d.Likers[i]))
	}
	return res
}

func toOutfitResponses(outfits []*domain.Outfit) []outfitResponse {
	out := make([]outfitResponse, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, toOutfitResponse(o))
	}
	return out
}

func toCommentResponse(d ports.CommentDetail) commentResponse {
	return commentResponse{
		ID:        d.Comment.ID,
		OutfitID:  d.Comment.OutfitID,
		UserID:    resolvedRef(d.Comment.UserID, d.Author),
		Text:      d.Comment.Text,
		CreatedAt: d.Comment.CreatedAt,
		UpdatedAt: d.Comment.UpdatedAt,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
