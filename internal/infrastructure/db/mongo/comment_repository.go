package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct {
	coll *mongo.Collection
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(collectionComments)}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	outfit, err := objectID(c.OutfitID)
	if err != nil {
		return nil, err
	}
	author, err := objectID(c.UserID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := commentDocument{
		OutfitID:  outfit,
		UserID:    author,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert comment: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) ListByOutfit(ctx context.Context, outfitID string, order ports.CommentOrder) ([]*domain.Comment, error) {
	oid, err := objectID(outfitID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"outfitId": oid}, order)
}

func (r *CommentRepository) ListAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{}, ports.OldestFirst)
}

func (r *CommentRepository) Update(ctx context.Context, id string, patch domain.CommentPatch) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CommentRepository) DeleteByOutfits(ctx context.Context, outfitIDs []string) (int64, error) {
	oids := validObjectIDs(outfitIDs)
	if len(oids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"outfitId": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete comments: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the index backing per-outfit listings and cascades.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "outfitId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M, order ports.CommentOrder) ([]*domain.Comment, error) {
	dir := -1
	if order == ports.OldestFirst {
		dir = 1
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: dir}, {Key: "_id", Value: dir}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	out := make([]*domain.Comment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
