package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-catalog/internal/domain"
)

// CategoryStorer defines the document-store operations for categories.
type CategoryStorer interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error) // Sorted by name ascending
	ReplaceCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	CountCategories(ctx context.Context) (int64, error)
}

// ItemStorer defines the document-store operations for items.
type ItemStorer interface {
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetItemByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error) // Sorted by name ascending
	ListItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.Item, error)
	ReplaceItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, id primitive.ObjectID) error
	CountItems(ctx context.Context) (int64, error)
}
