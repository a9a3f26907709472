package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

const collectionBlogs = "blogs"

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

type mongoBlog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Tags      []string           `bson:"tags"`
	Status    string             `bson:"status"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mb mongoBlog) toDomain() *domain.Blog {
	tags := mb.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Blog{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Content:   mb.Content,
		Tags:      tags,
		Status:    domain.BlogStatus(mb.Status),
		OwnerID:   mb.OwnerID,
		CreatedAt: mb.CreatedAt,
		UpdatedAt: mb.UpdatedAt,
	}
}

// ownerFilter builds the single-post filter. The owner id is always part of
// the query: a post owned by someone else never matches, so it reads as
// nonexistent.
func ownerFilter(id primitive.ObjectID, ownerID string) bson.M {
	return bson.M{"_id": id, "owner_id": ownerID}
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBlog{
		Title:     b.Title,
		Content:   b.Content,
		Tags:      b.Tags,
		Status:    string(b.Status),
		OwnerID:   b.OwnerID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, classify("insert blog", err)
	}

	created := *b
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBlog
	if err := r.col.FindOne(ctx, ownerFilter(oid, ownerID)).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, classify("find blog", err)
	}
	return mb.toDomain(), nil
}

func (r *BlogRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, classify("list blogs", err)
	}
	defer cur.Close(ctx)

	blogs := []*domain.Blog{}
	for cur.Next(ctx) {
		var mb mongoBlog
		if err := cur.Decode(&mb); err != nil {
			return nil, classify("decode blog", err)
		}
		blogs = append(blogs, mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, classify("list blogs", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, id, ownerID string, upd ports.BlogUpdate) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":      upd.Title,
		"content":    upd.Content,
		"status":     string(upd.Status),
		"tags":       upd.Tags,
		"updated_at": time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mb mongoBlog
	err = r.col.FindOneAndUpdate(ctx, ownerFilter(oid, ownerID), bson.M{"$set": set}, opts).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, classify("update blog", err)
	}
	return mb.toDomain(), nil
}

func (r *BlogRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBlogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownerFilter(oid, ownerID))
	if err != nil {
		return classify("delete blog", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the blogs collection.
func (r *BlogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
