package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umalmyha/crm/internal/model"
)

// BrandRepository provides access to brands collection
type BrandRepository interface {
	FindByID(ctx context.Context, id string) (*model.Brand, error)
	FindByCode(ctx context.Context, code string) (*model.Brand, error)
	FindAll(ctx context.Context) ([]*model.Brand, error)
	Create(ctx context.Context, b *model.Brand) error
}

type mongoBrandRepository struct {
	col *mongo.Collection
}

// NewMongoBrandRepository builds mongo-backed BrandRepository
func NewMongoBrandRepository(db *mongo.Database) BrandRepository {
	return &mongoBrandRepository{col: db.Collection("brands")}
}

func (r *mongoBrandRepository) FindByID(ctx context.Context, id string) (*model.Brand, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoBrandRepository) FindByCode(ctx context.Context, code string) (*model.Brand, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *mongoBrandRepository) FindAll(ctx context.Context) ([]*model.Brand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	brands := make([]*model.Brand, 0)
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *mongoBrandRepository) Create(ctx context.Context, b *model.Brand) error {
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return err
	}
	return nil
}

func (r *mongoBrandRepository) findOne(ctx context.Context, filter bson.M) (*model.Brand, error) {
	var b model.Brand
	if err := r.col.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
