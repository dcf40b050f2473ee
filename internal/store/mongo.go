package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory-catalog/internal/domain"
)

// Predefined errors for store operations
var (
	ErrCategoryNotFound = errors.New("store: category not found")
	ErrItemNotFound     = errors.New("store: item not found")
)

const (
	collCategories = "categories"
	collItems      = "items"
)

// MongoStore implements the CategoryStorer and ItemStorer interfaces on top
// of two MongoDB collections.
type MongoStore struct {
	client     *mongo.Client
	categories *mongo.Collection
	items      *mongo.Collection
}

// NewMongoStore creates a MongoStore bound to the named database.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:     client,
		categories: db.Collection(collCategories),
		items:      db.Collection(collItems),
	}
}

// --- CategoryStorer Implementation ---

func (s *MongoStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	res, err := s.categories.InsertOne(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("store: CreateCategory failed to insert document: %w", err)
	}
	created := *category
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

func (s *MongoStore) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var category domain.Category
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: GetCategoryByID failed to decode document: %w", err)
	}
	return &category, nil
}

func (s *MongoStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query collection: %w", err)
	}
	categories := make([]domain.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to decode documents: %w", err)
	}
	return categories, nil
}

// ReplaceCategory performs a full-document replace at the category's id.
func (s *MongoStore) ReplaceCategory(ctx context.Context, category *domain.Category) error {
	res, err := s.categories.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		return fmt.Errorf("store: ReplaceCategory failed to execute replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *MongoStore) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: DeleteCategory failed to execute delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *MongoStore) CountCategories(ctx context.Context) (int64, error) {
	count, err := s.categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("store: CountCategories failed: %w", err)
	}
	return count, nil
}

// --- ItemStorer Implementation ---

func (s *MongoStore) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	res, err := s.items.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("store: CreateItem failed to insert document: %w", err)
	}
	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

func (s *MongoStore) GetItemByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	var item domain.Item
	err := s.items.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("store: GetItemByID failed to decode document: %w", err)
	}
	return &item, nil
}

func (s *MongoStore) ListItems(ctx context.Context) ([]domain.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.items.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: ListItems failed to query collection: %w", err)
	}
	items := make([]domain.Item, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("store: ListItems failed to decode documents: %w", err)
	}
	return items, nil
}

func (s *MongoStore) ListItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.items.Find(ctx, bson.M{"category": categoryID}, opts)
	if err != nil {
		return nil, fmt.Errorf("store: ListItemsByCategory failed to query collection: %w", err)
	}
	items := make([]domain.Item, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("store: ListItemsByCategory failed to decode documents: %w", err)
	}
	return items, nil
}

// ReplaceItem performs a full-document replace at the item's id.
func (s *MongoStore) ReplaceItem(ctx context.Context, item *domain.Item) error {
	res, err := s.items.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("store: ReplaceItem failed to execute replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *MongoStore) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("store: DeleteItem failed to execute delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *MongoStore) CountItems(ctx context.Context) (int64, error) {
	count, err := s.items.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("store: CountItems failed: %w", err)
	}
	return count, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client != nil {
		log.Println("INFO: Disconnecting from document store...")
		if err := s.client.Disconnect(ctx); err != nil {
			log.Printf("ERROR: Failed to disconnect from document store: %v", err)
			return err
		}
		log.Println("INFO: Document store connection closed successfully.")
	}
	return nil
}
