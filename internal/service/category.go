// Package service implements the catalog's command layer: stateless CRUD
// transactions over the document store, the category delete guard, and the
// item image lifecycle. Paired independent reads fan out concurrently and
// join before the command proceeds.
package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"inventory-catalog/internal/domain"
	"inventory-catalog/internal/forms"
	"inventory-catalog/internal/store"
)

// CategoryDetail is the view model for a category together with the items
// that reference it. It backs the detail page, the delete confirmation and
// the blocked-delete redisplay.
type CategoryDetail struct {
	Category *domain.Category
	Items    []domain.Item
}

// CategoryService provides the category commands.
type CategoryService struct {
	categories store.CategoryStorer
	items      store.ItemStorer
	validator  *forms.Validator
}

// NewCategoryService creates a CategoryService with its dependencies.
func NewCategoryService(cs store.CategoryStorer, is store.ItemStorer, v *forms.Validator) *CategoryService {
	return &CategoryService{categories: cs, items: is, validator: v}
}

// List returns all categories ordered by name ascending.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

// Get returns a single category or store.ErrCategoryNotFound.
func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return s.categories.GetCategoryByID(ctx, id)
}

// GetWithItems returns a category and all items referencing it. The two
// lookups are independent and run concurrently.
func (s *CategoryService) GetWithItems(ctx context.Context, id primitive.ObjectID) (*CategoryDetail, error) {
	var (
		category *domain.Category
		items    []domain.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = s.categories.GetCategoryByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.ListItemsByCategory(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &CategoryDetail{Category: category, Items: items}, nil
}

// Create validates the form and inserts a new category. On success it
// returns the record's canonical location; on rule failure it returns the
// field errors and the (escaped) form is left ready for redisplay.
func (s *CategoryService) Create(ctx context.Context, form *forms.CategoryForm) (string, []forms.FieldError, error) {
	if errs := s.validator.ValidateCategory(form); len(errs) > 0 {
		return "", errs, nil
	}
	created, err := s.categories.CreateCategory(ctx, &domain.Category{
		Name:        form.Name,
		Description: form.Description,
	})
	if err != nil {
		return "", nil, fmt.Errorf("service: create category: %w", err)
	}
	return created.URL(), nil, nil
}

// Update validates the form and replaces the full record at id. Replacing a
// missing id surfaces store.ErrCategoryNotFound.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, form *forms.CategoryForm) (string, []forms.FieldError, error) {
	if errs := s.validator.ValidateCategory(form); len(errs) > 0 {
		return "", errs, nil
	}
	category := &domain.Category{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
	}
	if err := s.categories.ReplaceCategory(ctx, category); err != nil {
		return "", nil, err
	}
	return category.URL(), nil, nil
}

// Delete removes a category unless items still reference it. A blocked
// delete returns the same listing used for display (category plus its
// items) so the caller can show why the operation was refused; a successful
// delete returns nil. A missing id surfaces store.ErrCategoryNotFound.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) (*CategoryDetail, error) {
	detail, err := s.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Items) > 0 {
		return detail, nil
	}
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	return nil, nil
}
