package domain

import "time"

// Comment is a single remark left by a user on an outfit.
type Comment struct {
	ID        string
	OutfitID  string
	UserID    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentPatch carries the mutable comment fields.
type CommentPatch struct {
	Text *string
}

// Empty reports whether the patch would change nothing.
func (p CommentPatch) Empty() bool {
	return p.Text == nil
}
