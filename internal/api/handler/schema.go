package handler

import (
	"encoding/json"
	"time"
)

// --- Requests ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type renameRequest struct {
	Username string `json:"username" validate:"required"`
}

type createOutfitRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
}

type updateOutfitRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
}

type deleteOutfitsRequest struct {
	OutfitIDs []string `json:"outfitIds" validate:"required,min=1,dive,required"`
}

type toggleLikeRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type createCommentRequest struct {
	OutfitID string `json:"outfitId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

type updateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// --- Responses ---

type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the public view of an account. The password hash is never
// rendered.
type userResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type renameResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type userSummaryResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// userRef is a reference to a user as stored on another record. It renders
// as the bare id when not resolved, as {_id, username} when resolved, and as
// null when resolution found no such user.
type userRef struct {
	id       string
	resolved bool
	summary  *userSummaryResponse
}

func (r userRef) MarshalJSON() ([]byte, error) {
	switch {
	case !r.resolved:
		return json.Marshal(r.id)
	case r.summary == nil:
		return []byte("null"), nil
	default:
		return json.Marshal(r.summary)
	}
}

type outfitResponse struct {
	ID          string    `json:"_id"`
	User        userRef   `json:"user" swaggertype:"object"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Likes       []userRef `json:"likes" swaggertype:"array,object"`
	Comments    []string  `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type outfitEnvelope struct {
	Message string         `json:"message"`
	Outfit  outfitResponse `json:"outfit"`
}

type deleteOutfitsResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type toggleLikeResponse struct {
	Message   string `json:"message"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
}

type likesResponse struct {
	LikeCount int  `json:"likeCount"`
	Liked     bool `json:"liked"`
}

type commentResponse struct {
	ID        string    `json:"_id"`
	OutfitID  string    `json:"outfitId"`
	UserID    userRef   `json:"userId" swaggertype:"object"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type commentEnvelope struct {
	Message string          `json:"message"`
	Comment commentResponse `json:"comment"`
}

// missingCommentFields echoes what was received, so clients can see which
// field was empty.
type missingCommentFields struct {
	Message  string               `json:"message"`
	Error    string               `json:"error,omitempty"`
	Received createCommentRequest `json:"received"`
}
