package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umalmyha/crm/internal/model"
)

// TagRepository provides access to tags collection
type TagRepository interface {
	FindByID(ctx context.Context, id string) (*model.Tag, error)
	FindAllByType(ctx context.Context, tagType string) ([]*model.Tag, error)
	Create(ctx context.Context, t *model.Tag) error
}

type mongoTagRepository struct {
	col *mongo.Collection
}

// NewMongoTagRepository builds mongo-backed TagRepository
func NewMongoTagRepository(db *mongo.Database) TagRepository {
	return &mongoTagRepository{col: db.Collection("tags")}
}

func (r *mongoTagRepository) FindByID(ctx context.Context, id string) (*model.Tag, error) {
	var t model.Tag
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *mongoTagRepository) FindAllByType(ctx context.Context, tagType string) ([]*model.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{"type": tagType}, opts)
	if err != nil {
		return nil, err
	}

	tags := make([]*model.Tag, 0)
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *mongoTagRepository) Create(ctx context.Context, t *model.Tag) error {
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return err
	}
	return nil
}
