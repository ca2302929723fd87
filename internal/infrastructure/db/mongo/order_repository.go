package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/renovatepro/renovate-api/internal/core/domain"
	"github.com/renovatepro/renovate-api/internal/core/ports"
)

const collectionOrders = "orders"

var orderSortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"budget":     "budget",
	"status":     "status",
}

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// mongoOrder stores user references as hex strings.
type mongoOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	User        string             `bson:"user"`
	Service     string             `bson:"service"`
	Designer    string             `bson:"designer,omitempty"`
	Workers     []string           `bson:"workers"`
	Status      string             `bson:"status"`
	Description string             `bson:"description"`
	Budget      float64            `bson:"budget"`
	Address     string             `bson:"address"`
	ClientName  string             `bson:"client_name"`
	ClientPhone string             `bson:"client_phone"`
	StartDate   *time.Time         `bson:"start_date,omitempty"`
	EndDate     *time.Time         `bson:"end_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoOrder(o *domain.Order) mongoOrder {
	workers := o.Workers
	if workers == nil {
		workers = []string{}
	}
	return mongoOrder{
		User:        o.Owner,
		Service:     o.Service,
		Designer:    o.Designer,
		Workers:     workers,
		Status:      string(o.Status),
		Description: o.Description,
		Budget:      o.Budget,
		Address:     o.Address,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (m *mongoOrder) toDomain() *domain.Order {
	workers := m.Workers
	if workers == nil {
		workers = []string{}
	}
	return &domain.Order{
		ID:          m.ID.Hex(),
		Owner:       m.User,
		Service:     m.Service,
		Designer:    m.Designer,
		Workers:     workers,
		Status:      domain.OrderStatus(m.Status),
		Description: m.Description,
		Budget:      m.Budget,
		Address:     m.Address,
		ClientName:  m.ClientName,
		ClientPhone: m.ClientPhone,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoOrder(o)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateByID writes changes with a single $set and returns the document as
// stored afterwards. Concurrent writers are last-writer-wins per field.
func (r *OrderRepository) UpdateByID(ctx context.Context, id string, changes domain.OrderChanges) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOrder
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, orderUpdate(changes, time.Now().UTC()), returnUpdated).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) DeleteByID(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, total, err := findPage[mongoOrder](ctx, r.col, orderFilter(f), findOptions(f.PageRequest, orderSortFields, "created_at"))
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toDomain())
	}
	return orders, total, nil
}

// orderFilter turns the role scope and query parameters into a Mongo filter.
// A worker scope matches membership in the workers array.
func orderFilter(f ports.ListOrdersFilter) bson.M {
	filter := bson.M{}
	if f.Scope.Owner != "" {
		filter["user"] = f.Scope.Owner
	}
	if f.Scope.Designer != "" {
		filter["designer"] = f.Scope.Designer
	}
	if f.Scope.Worker != "" {
		filter["workers"] = f.Scope.Worker
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"description": contains(f.Search)},
			bson.M{"address": contains(f.Search)},
			bson.M{"client_name": contains(f.Search)},
		}
	}
	return filter
}

// orderUpdate builds the $set document for the submitted fields.
func orderUpdate(c domain.OrderChanges, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.Budget != nil {
		set["budget"] = *c.Budget
	}
	if c.Address != nil {
		set["address"] = *c.Address
	}
	if c.ClientName != nil {
		set["client_name"] = *c.ClientName
	}
	if c.ClientPhone != nil {
		set["client_phone"] = *c.ClientPhone
	}
	if c.Service != nil {
		set["service"] = *c.Service
	}
	if c.Status != nil {
		set["status"] = string(*c.Status)
	}
	if c.Workers != nil {
		workers := *c.Workers
		if workers == nil {
			workers = []string{}
		}
		set["workers"] = workers
	}
	if c.Designer != nil {
		set["designer"] = *c.Designer
	}
	if c.Owner != nil {
		set["user"] = *c.Owner
	}
	return bson.M{"$set": set}
}

// EnsureIndexes creates one index per list scope.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "designer", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "workers", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}
