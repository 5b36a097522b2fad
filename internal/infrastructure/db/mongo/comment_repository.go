package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/worklock/worklock/internal/core/domain"
)

const commentsCollection = "comments"

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentsCollection)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Comment   string             `bson:"comment"`
	Timestamp int64              `bson:"timestamp"`
}

func (r *MongoCommentRepository) Insert(ctx context.Context, c *domain.Comment) error {
	doc := mongoComment{
		Email:     c.Email,
		Comment:   c.Comment,
		Timestamp: c.Timestamp,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

// List returns all comments, newest first.
func (r *MongoCommentRepository) List(ctx context.Context) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []domain.Comment
	for cursor.Next(ctx) {
		var mc mongoComment
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, domain.Comment{
			ID:        mc.ID.Hex(),
			Email:     mc.Email,
			Comment:   mc.Comment,
			Timestamp: mc.Timestamp,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
