package domain

import "time"

// Outfit is a posted look. Likes holds user ids with set semantics; Comments
// holds comment ids in creation order.
type Outfit struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Image       string
	Likes       []string
	Comments    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LikedBy reports whether userID is in the like-set.
func (o *Outfit) LikedBy(userID string) bool {
	for _, id := range o.Likes {
		if SameID(id, userID) {
			return true
		}
	}
	return false
}

// LikeCount is the size of the like-set.
func (o *Outfit) LikeCount() int {
	return len(o.Likes)
}

// OutfitPatch carries the mutable outfit fields. Nil fields are left untouched.
type OutfitPatch struct {
	Name        *string
	Description *string
	Image       *string
}

// Empty reports whether the patch would change nothing.
func (p OutfitPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Image == nil
}
