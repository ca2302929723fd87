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

const collectionPortfolio = "portfolio"

var portfolioSortFields = map[string]string{
	"title":      "title",
	"category":   "category",
	"created_at": "created_at",
}

type PortfolioRepository struct {
	col *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{col: db.Collection(collectionPortfolio)}
}

type mongoPortfolioItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	User        string             `bson:"user"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoPortfolioItem) toDomain() *domain.PortfolioItem {
	return &domain.PortfolioItem{
		ID:          m.ID.Hex(),
		Owner:       m.User,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Category:    m.Category,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *PortfolioRepository) Create(ctx context.Context, it *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPortfolioItem{
		User:        it.Owner,
		Title:       it.Title,
		Description: it.Description,
		ImageURL:    it.ImageURL,
		Category:    it.Category,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert portfolio item: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PortfolioRepository) FindByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPortfolioItemNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPortfolioItem
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("find portfolio item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PortfolioRepository) UpdateByID(ctx context.Context, id string, c domain.PortfolioChanges) (*domain.PortfolioItem, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPortfolioItemNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.ImageURL != nil {
		set["image_url"] = *c.ImageURL
	}
	if c.Category != nil {
		set["category"] = *c.Category
	}

	var doc mongoPortfolioItem
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, returnUpdated).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PortfolioRepository) DeleteByID(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPortfolioItemNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPortfolioItemNotFound
	}
	return nil
}

func (r *PortfolioRepository) List(ctx context.Context, f ports.ListPortfolioFilter) ([]*domain.PortfolioItem, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Owner != "" {
		filter["user"] = f.Owner
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	docs, total, err := findPage[mongoPortfolioItem](ctx, r.col, filter, findOptions(f.PageRequest, portfolioSortFields, "created_at"))
	if err != nil {
		return nil, 0, err
	}
	out := make([]*domain.PortfolioItem, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

func (r *PortfolioRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
