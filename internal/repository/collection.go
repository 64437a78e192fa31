package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dan9191/fintrack/internal/models"
)

// ListOptions controls paging and ordering of Find
type ListOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Collection is a typed wrapper around one mongo collection
type Collection[T any] struct {
	coll *mongo.Collection
}

func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("mongo couldn't InsertOne in %s: %w", c.coll.Name(), err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("mongo returned unexpected id type %T in %s", res.InsertedID, c.coll.Name())
	}
	return id, nil
}

func (c *Collection[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't FindOne in %s: %w", c.coll.Name(), err)
	}
	return &doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, filter bson.M, opts ListOptions) ([]T, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := c.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't Find in %s: %w", c.coll.Name(), err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logrus.Errorf("mongo couldn't close cursor in %s: %v", c.coll.Name(), err)
		}
	}()

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo couldn't decode cursor in %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongo couldn't CountDocuments in %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

// Update applies update (an operator document such as {"$set": ...}) to the document with id
func (c *Collection[T]) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mongo couldn't UpdateOne in %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Collection[T]) UpdateMany(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := c.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("mongo couldn't UpdateMany in %s: %w", c.coll.Name(), err)
	}
	return res.ModifiedCount, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo couldn't DeleteOne in %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongo couldn't DeleteMany in %s: %w", c.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

// Sum adds up field over the documents matching match
func (c *Collection[T]) Sum(ctx context.Context, match bson.M, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := c.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// SumBy groups matching documents by groupField and sums field, largest total first
func (c *Collection[T]) SumBy(ctx context.Context, match bson.M, groupField, field string) ([]models.CategoryTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + groupField},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}
	rows := make([]models.CategoryTotal, 0)
	if err := c.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SumByMonth sums field per calendar month (UTC) of dateField, keyed "YYYY-MM"
func (c *Collection[T]) SumByMonth(ctx context.Context, match bson.M, dateField, field string) (map[string]float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m"},
				{Key: "date", Value: "$" + dateField},
			}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}
	var rows []struct {
		Month string  `bson:"_id"`
		Total float64 `bson:"total"`
	}
	if err := c.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	result := make(map[string]float64, len(rows))
	for _, row := range rows {
		result[row.Month] = row.Total
	}
	return result, nil
}

func (c *Collection[T]) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("mongo couldn't Aggregate in %s: %w", c.coll.Name(), err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logrus.Errorf("mongo couldn't close cursor in %s: %v", c.coll.Name(), err)
		}
	}()
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("mongo couldn't decode aggregate in %s: %w", c.coll.Name(), err)
	}
	return nil
}
