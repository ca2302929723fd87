package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/renovatepro/renovate-api/internal/core/domain"
)

const collectionOrderEvents = "order_events"

// OrderEventRepository appends to the order activity log.
type OrderEventRepository struct {
	col *mongo.Collection
}

func NewOrderEventRepository(db *mongo.Database) *OrderEventRepository {
	return &OrderEventRepository{col: db.Collection(collectionOrderEvents)}
}

// InsertEvent persists one activity entry.
func (r *OrderEventRepository) InsertEvent(ctx context.Context, event *domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	fields := make([]string, 0, len(event.Fields))
	for _, f := range event.Fields {
		fields = append(fields, string(f))
	}

	doc := bson.M{
		"order_id":    event.OrderID,
		"action":      string(event.Action),
		"actor_id":    event.ActorID,
		"actor_role":  event.ActorRole,
		"fields":      fields,
		"status":      string(event.Status),
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *OrderEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}
