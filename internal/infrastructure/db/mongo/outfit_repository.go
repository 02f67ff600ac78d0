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

// OutfitRepository implements ports.OutfitRepository.
type OutfitRepository struct {
	coll *mongo.Collection
}

var _ ports.OutfitRepository = (*OutfitRepository)(nil)

func NewOutfitRepository(db *mongo.Database) *OutfitRepository {
	return &OutfitRepository{coll: db.Collection(collectionOutfits)}
}

func (r *OutfitRepository) Create(ctx context.Context, o *domain.Outfit) (*domain.Outfit, error) {
	owner, err := objectID(o.UserID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := outfitDocument{
		User:        owner,
		Name:        o.Name,
		Description: o.Description,
		Image:       o.Image,
		Likes:       []primitive.ObjectID{},
		Comments:    []primitive.ObjectID{},
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert outfit: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert outfit: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *OutfitRepository) FindByID(ctx context.Context, id string) (*domain.Outfit, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc outfitDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrOutfitNotFound
		}
		return nil, fmt.Errorf("find outfit: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns outfits newest first. Ties on createdAt fall back to _id,
// which is itself time-ordered.
func (r *OutfitRepository) List(ctx context.Context, f ports.OutfitFilter) ([]*domain.Outfit, error) {
	filter := bson.M{}
	if f.OwnerID != "" {
		owner, err := objectID(f.OwnerID)
		if err != nil {
			return nil, err
		}
		filter["user"] = owner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find outfits: %w", err)
	}

	var docs []outfitDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode outfits: %w", err)
	}

	out := make([]*domain.Outfit, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *OutfitRepository) Update(ctx context.Context, id string, patch domain.OutfitPatch) (*domain.Outfit, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
}

func (r *OutfitRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete outfits: %w", err)
	}
	return res.DeletedCount, nil
}

// ToggleLike flips membership of userID in likes with a single pipeline
// update, so concurrent toggles on the same outfit serialize on the document
// and none is lost.
func (r *OutfitRepository) ToggleLike(ctx context.Context, outfitID, userID string) (*domain.Outfit, error) {
	oid, err := objectID(outfitID)
	if err != nil {
		return nil, err
	}
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, toggleLikePipeline(uid))
}

func toggleLikePipeline(uid primitive.ObjectID) mongo.Pipeline {
	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$in", Value: bson.A{uid, likes}}},
			bson.D{{Key: "$filter", Value: bson.D{
				{Key: "input", Value: likes},
				{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", uid}}}},
			}}},
			bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{uid}}}},
		}}}}}}},
	}
}

func (r *OutfitRepository) PullLikes(ctx context.Context, userIDs []string) (int64, error) {
	uids := validObjectIDs(userIDs)
	if len(uids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"likes": bson.M{"$in": uids}},
		bson.M{"$pull": bson.M{"likes": bson.M{"$in": uids}}},
	)
	if err != nil {
		return 0, fmt.Errorf("pull likes: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *OutfitRepository) PushComment(ctx context.Context, outfitID, commentID string) error {
	return r.updateComments(ctx, outfitID, commentID, "$push")
}

func (r *OutfitRepository) PullComment(ctx context.Context, outfitID, commentID string) error {
	return r.updateComments(ctx, outfitID, commentID, "$pull")
}

func (r *OutfitRepository) SetComments(ctx context.Context, outfitID string, commentIDs []string) error {
	oid, err := objectID(outfitID)
	if err != nil {
		return err
	}
	cids, err := objectIDs(commentIDs)
	if err != nil {
		return err
	}
	return r.updateOne(ctx, oid, bson.M{"$set": bson.M{"comments": cids}})
}

// EnsureIndexes creates the indexes backing the listing and cascade queries.
func (r *OutfitRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *OutfitRepository) updateComments(ctx context.Context, outfitID, commentID, op string) error {
	oid, err := objectID(outfitID)
	if err != nil {
		return err
	}
	cid, err := objectID(commentID)
	if err != nil {
		return err
	}
	return r.updateOne(ctx, oid, bson.M{op: bson.M{"comments": cid}})
}

func (r *OutfitRepository) updateOne(ctx context.Context, oid primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update outfit: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOutfitNotFound
	}
	return nil
}

func (r *OutfitRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update interface{}) (*domain.Outfit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc outfitDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrOutfitNotFound
		}
		return nil, fmt.Errorf("update outfit: %w", err)
	}
	return doc.toDomain(), nil
}
