package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umalmyha/crm/internal/model"
)

// SegmentRepository provides access to segments collection
type SegmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Segment, error)
	FindAllByContentType(ctx context.Context, contentType string) ([]*model.Segment, error)
	Create(ctx context.Context, s *model.Segment) error
}

type mongoSegmentRepository struct {
	col *mongo.Collection
}

// NewMongoSegmentRepository builds mongo-backed SegmentRepository
func NewMongoSegmentRepository(db *mongo.Database) SegmentRepository {
	return &mongoSegmentRepository{col: db.Collection("segments")}
}

func (r *mongoSegmentRepository) FindByID(ctx context.Context, id string) (*model.Segment, error) {
	var s model.Segment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *mongoSegmentRepository) FindAllByContentType(ctx context.Context, contentType string) ([]*model.Segment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{"contentType": contentType}, opts)
	if err != nil {
		return nil, err
	}

	segments := make([]*model.Segment, 0)
	if err := cursor.All(ctx, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (r *mongoSegmentRepository) Create(ctx context.Context, s *model.Segment) error {
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return err
	}
	return nil
}
