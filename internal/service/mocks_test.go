package service

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory-catalog/internal/domain"
)

// MockCategoryStorer is a mock implementation of store.CategoryStorer
type MockCategoryStorer struct {
	mock.Mock
}

func (m *MockCategoryStorer) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryStorer) ReplaceCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryStorer) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryStorer) CountCategories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemStorer is a mock implementation of store.ItemStorer
type MockItemStorer struct {
	mock.Mock
}

func (m *MockItemStorer) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemStorer) GetItemByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemStorer) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	var items []domain.Item
	if arg0 := args.Get(0); arg0 != nil {
		items = arg0.([]domain.Item)
	}
	return items, args.Error(1)
}

func (m *MockItemStorer) ListItemsByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.Item, error) {
	args := m.Called(ctx, categoryID)
	var items []domain.Item
	if arg0 := args.Get(0); arg0 != nil {
		items = arg0.([]domain.Item)
	}
	return items, args.Error(1)
}

func (m *MockItemStorer) ReplaceItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemStorer) DeleteItem(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemStorer) CountItems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockImageStorer is a mock implementation of ImageStorer
type MockImageStorer struct {
	mock.Mock
}

func (m *MockImageStorer) Save(file multipart.File, originalName string) (string, error) {
	args := m.Called(file, originalName)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorer) Release(webPath string) error {
	args := m.Called(webPath)
	return args.Error(0)
}

func (m *MockImageStorer) Placeholder() string {
	args := m.Called()
	return args.String(0)
}
