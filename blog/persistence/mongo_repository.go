package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/blogify/blog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ domain.PostRepository = (*MongoPostRepository)(nil)

// MongoPostRepository implements domain.PostRepository on a MongoDB collection
type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(coll *mongo.Collection) *MongoPostRepository {
	return &MongoPostRepository{coll: coll}
}

// postDocument is the stored shape of a post
type postDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Content     string    `bson:"content"`
	ContentType string    `bson:"contentType"`
	Author      string    `bson:"author"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func newPostDocument(p *domain.Post) postDocument {
	return postDocument{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		ContentType: string(p.ContentType),
		Author:      p.Author,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (d postDocument) toDomain() *domain.Post {
	return &domain.Post{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		ContentType: contentTypeOrDefault(d.ContentType),
		Author:      d.Author,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *MongoPostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	if _, err := r.coll.InsertOne(ctx, newPostDocument(p)); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	if id == "" {
		return nil, fmt.Errorf("post ID cannot be empty")
	}

	var doc postDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoPostRepository) ListPosts(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	limit, offset = normalizePage(limit, offset)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*domain.Post, 0)
	for cursor.Next(ctx) {
		var doc postDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode post: %w", err)
		}
		posts = append(posts, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

func (r *MongoPostRepository) UpdatePost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	var existing postDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": p.ID}).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, p.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to load post %s: %w", p.ID, err)
	}

	p.CreatedAt = existing.CreatedAt
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}

	res, err := r.coll.UpdateByID(ctx, p.ID, bson.M{"$set": mutableFields(p)})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, p.ID)
	}
	return nil
}

func (r *MongoPostRepository) UpsertPost(ctx context.Context, p *domain.Post) error {
	if err := checkPost(p); err != nil {
		return err
	}

	update := bson.M{
		"$set":         mutableFields(p),
		"$setOnInsert": bson.M{"createdAt": p.CreatedAt.UTC()},
	}
	if _, err := r.coll.UpdateByID(ctx, p.ID, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert post: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("post ID cannot be empty")
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
	}
	return nil
}

func mutableFields(p *domain.Post) bson.M {
	return bson.M{
		"title":       p.Title,
		"description": p.Description,
		"content":     p.Content,
		"contentType": string(p.ContentType),
		"author":      p.Author,
		"updatedAt":   p.UpdatedAt.UTC(),
	}
}
