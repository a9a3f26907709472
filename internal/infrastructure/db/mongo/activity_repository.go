package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

const collectionActivity = "blog_activity"

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type mongoActivity struct {
	BlogID  string    `bson:"blog_id"`
	OwnerID string    `bson:"owner_id"`
	Action  string    `bson:"action"`
	Title   string    `bson:"title,omitempty"`
	At      time.Time `bson:"at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivity{
		BlogID:  e.BlogID,
		OwnerID: e.OwnerID,
		Action:  e.Action,
		Title:   e.Title,
		At:      e.At,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return classify("insert activity", err)
	}
	return nil
}

func (r *ActivityRepository) ListByBlog(ctx context.Context, blogID, ownerID string) ([]*domain.ActivityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"blog_id": blogID, "owner_id": ownerID}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, classify("list activity", err)
	}
	defer cur.Close(ctx)

	events := []*domain.ActivityEvent{}
	for cur.Next(ctx) {
		var ma mongoActivity
		if err := cur.Decode(&ma); err != nil {
			return nil, classify("decode activity", err)
		}
		events = append(events, &domain.ActivityEvent{
			BlogID:  ma.BlogID,
			OwnerID: ma.OwnerID,
			Action:  ma.Action,
			Title:   ma.Title,
			At:      ma.At,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, classify("list activity", err)
	}
	return events, nil
}

// EnsureIndexes creates the per-post lookup index on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "owner_id", Value: 1}, {Key: "at", Value: -1}},
	})
	return err
}
