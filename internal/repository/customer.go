package repository

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umalmyha/crm/internal/model"
)

// fields tried by free-text search
var searchFields = []string{"firstName", "lastName", "email", "phone"}

// CustomerQuery is a set of filters applied to customers collection,
// all present filters are combined with logical AND
type CustomerQuery struct {
	IDs         []string
	TagID       string
	Segment     *model.Segment
	SearchValue string
	Skip        int64
	Limit       int64
}

// Filter builds mongo filter document out of present query parameters
func (q CustomerQuery) Filter() bson.M {
	and := make(bson.A, 0, 4)

	if len(q.IDs) > 0 {
		and = append(and, bson.M{"_id": bson.M{"$in": q.IDs}})
	}

	if q.TagID != "" {
		and = append(and, bson.M{"tagIds": q.TagID})
	}

	if q.Segment != nil {
		and = append(and, q.Segment.Filter())
	}

	if q.SearchValue != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(q.SearchValue), Options: "i"}
		or := make(bson.A, 0, len(searchFields))
		for _, f := range searchFields {
			or = append(or, bson.M{f: rx})
		}
		and = append(and, bson.M{"$or": or})
	}

	if len(and) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": and}
}

// CustomerRepository provides access to customers collection
type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	FindAll(ctx context.Context, q CustomerQuery) ([]*model.Customer, error)
	Count(ctx context.Context, q CustomerQuery) (int64, error)
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	DeleteByID(ctx context.Context, id string) error
}

type mongoCustomerRepository struct {
	col *mongo.Collection
}

// NewMongoCustomerRepository builds mongo-backed CustomerRepository
func NewMongoCustomerRepository(db *mongo.Database) CustomerRepository {
	return &mongoCustomerRepository{col: db.Collection("customers")}
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context, q CustomerQuery) ([]*model.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.col.Find(ctx, q.Filter(), opts)
	if err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) Count(ctx context.Context, q CustomerQuery) (int64, error) {
	return r.col.CountDocuments(ctx, q.Filter())
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c); err != nil {
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	return nil
}
