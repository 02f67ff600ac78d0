package mongo

import (
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/outfitshare/outfit-api/internal/core/domain"
)

// Collection and field names match the documents written by the original
// mongoose models so existing data keeps working.
const (
	collectionUsers    = "users"
	collectionOutfits  = "outfits"
	collectionComments = "comments"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type outfitDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	User        primitive.ObjectID   `bson:"user"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Image       string               `bson:"image"`
	Likes       []primitive.ObjectID `bson:"likes"`
	Comments    []primitive.ObjectID `bson:"comments"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d outfitDocument) toDomain() *domain.Outfit {
	return &domain.Outfit{
		ID:          d.ID.Hex(),
		UserID:      d.User.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Image:       d.Image,
		Likes:       toHexes(d.Likes),
		Comments:    toHexes(d.Comments),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OutfitID  primitive.ObjectID `bson:"outfitId"`
	UserID    primitive.ObjectID `bson:"userId"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d commentDocument) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		OutfitID:  d.OutfitID.Hex(),
		UserID:    d.UserID.Hex(),
		Text:      d.Text,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// objectID parses a hex id, reporting domain.ErrInvalidID when malformed.
func objectID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func objectIDs(hexes []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := objectID(h)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

// validObjectIDs keeps only the well-formed ids. Used for lookups by
// reference where a malformed stored value simply resolves to nothing.
func validObjectIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if oid, err := primitive.ObjectIDFromHex(h); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func toHexes(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// dupIndexPattern picks the violated index out of an E11000 message. The key
// value follows "dup key", so a value that spells an index name cannot match
// first.
var dupIndexPattern = regexp.MustCompile(`index: (\S+) dup key`)

// duplicateIndex returns the name of the unique index err violated, or "" if
// err is not a duplicate-key error.
func duplicateIndex(err error) string {
	if !mongo.IsDuplicateKeyError(err) {
		return ""
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if m := dupIndexPattern.FindStringSubmatch(e.Message); m != nil {
				return m[1]
			}
		}
	}
	if m := dupIndexPattern.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}
