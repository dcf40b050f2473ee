package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"inventory-catalog/internal/domain"
	"inventory-catalog/internal/forms"
	"inventory-catalog/internal/store"
)

// ImageStorer is the part of the asset store the item service depends on.
type ImageStorer interface {
	Save(file multipart.File, originalName string) (string, error)
	Release(webPath string) error
	Placeholder() string
}

// ItemDetail is the view model for an item with its category resolved.
// Category is nil when the reference dangles.
type ItemDetail struct {
	Item     *domain.Item
	Category *domain.Category
}

// ItemFormView is the view model for the item create/update form: the
// escaped field values, the selectable categories, and any field errors.
type ItemFormView struct {
	Form       forms.ItemForm
	Categories []domain.Category
	Errors     []forms.FieldError
}

// ItemService provides the item commands.
type ItemService struct {
	items      store.ItemStorer
	categories store.CategoryStorer
	images     ImageStorer
	validator  *forms.Validator
	logger     *log.Logger
}

// NewItemService creates an ItemService with its dependencies.
func NewItemService(is store.ItemStorer, cs store.CategoryStorer, img ImageStorer, v *forms.Validator, logger *log.Logger) *ItemService {
	return &ItemService{items: is, categories: cs, images: img, validator: v, logger: logger}
}

// List returns all items ordered by name ascending.
func (s *ItemService) List(ctx context.Context) ([]domain.Item, error) {
	return s.items.ListItems(ctx)
}

// Get returns an item with its category resolved, or store.ErrItemNotFound.
// A dangling category reference leaves Category nil rather than failing the
// whole lookup.
func (s *ItemService) Get(ctx context.Context, id primitive.ObjectID) (*ItemDetail, error) {
	item, err := s.items.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.GetCategoryByID(ctx, item.CategoryID)
	if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
		return nil, err
	}
	return &ItemDetail{Item: item, Category: category}, nil
}

// NewForm returns the view for the create form: the selectable category
// list plus the original prefill defaults.
func (s *ItemService) NewForm(ctx context.Context) (*ItemFormView, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemFormView{
		Form: forms.ItemForm{
			Price:      "1.0",
			Stock:      "1",
			Categories: []string{},
		},
		Categories: categories,
	}, nil
}

// EditForm returns the view for the update form. The item and the category
// list are independent lookups and run concurrently.
func (s *ItemService) EditForm(ctx context.Context, id primitive.ObjectID) (*ItemFormView, error) {
	var (
		item       *domain.Item
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = s.items.GetItemByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ItemFormView{
		Form: forms.ItemForm{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.String(),
			Stock:       fmt.Sprintf("%d", item.Stock),
			ImageURL:    item.ImageURL,
			Categories:  []string{item.CategoryID.Hex()},
		},
		Categories: categories,
	}, nil
}

// Create validates the form, resolves the image reference and inserts the
// item. On success it returns the new record's canonical location; on rule
// failure it returns a redisplay view carrying the escaped values, the
// field errors and a freshly loaded category list. Nothing is persisted on
// failure.
func (s *ItemService) Create(ctx context.Context, form *forms.ItemForm, upload *multipart.FileHeader) (string, *ItemFormView, error) {
	vals, categoryID, redisplay, err := s.validated(ctx, form)
	if redisplay != nil || err != nil {
		return "", redisplay, err
	}

	imageURL, err := s.resolveImage(upload)
	if err != nil {
		return "", nil, err
	}

	price, err := primitive.ParseDecimal128(vals.Price.String())
	if err != nil {
		return "", nil, fmt.Errorf("service: convert price: %w", err)
	}
	created, err := s.items.CreateItem(ctx, &domain.Item{
		Name:        form.Name,
		Description: form.Description,
		CategoryID:  categoryID,
		Price:       price,
		Stock:       vals.Stock,
		ImageURL:    imageURL,
	})
	if err != nil {
		s.discardUpload(upload, imageURL)
		return "", nil, fmt.Errorf("service: create item: %w", err)
	}
	return created.URL(), nil, nil
}

// Update runs the same pipeline as Create and replaces the full record at
// id. When a new image was uploaded the previous image file is released,
// unless it is the reserved placeholder. A missing id surfaces
// store.ErrItemNotFound.
func (s *ItemService) Update(ctx context.Context, id primitive.ObjectID, form *forms.ItemForm, upload *multipart.FileHeader) (string, *ItemFormView, error) {
	vals, categoryID, redisplay, err := s.validated(ctx, form)
	if redisplay != nil || err != nil {
		return "", redisplay, err
	}

	existing, err := s.items.GetItemByID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	imageURL, err := s.resolveImage(upload)
	if err != nil {
		return "", nil, err
	}

	price, err := primitive.ParseDecimal128(vals.Price.String())
	if err != nil {
		return "", nil, fmt.Errorf("service: convert price: %w", err)
	}
	item := &domain.Item{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		CategoryID:  categoryID,
		Price:       price,
		Stock:       vals.Stock,
		ImageURL:    imageURL,
	}
	if err := s.items.ReplaceItem(ctx, item); err != nil {
		s.discardUpload(upload, imageURL)
		return "", nil, err
	}

	if upload != nil && existing.ImageURL != imageURL {
		if err := s.images.Release(existing.ImageURL); err != nil {
			// The record was already replaced; an orphaned file is not
			// worth failing the request over.
			s.logger.Printf("WARN: failed to release replaced image %s: %v", existing.ImageURL, err)
		}
	}
	return item.URL(), nil, nil
}

// Delete removes an item by id, unconditionally. The associated image file
// is intentionally left in place (only the update path releases files).
func (s *ItemService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.items.DeleteItem(ctx, id)
}

// validated runs form validation and category-reference parsing. A non-nil
// redisplay view means the command must stop and redisplay the form.
func (s *ItemService) validated(ctx context.Context, form *forms.ItemForm) (*forms.ItemValues, primitive.ObjectID, *ItemFormView, error) {
	vals, errs := s.validator.ValidateItem(form)

	var categoryID primitive.ObjectID
	if len(form.Categories) == 1 {
		var err error
		categoryID, err = primitive.ObjectIDFromHex(form.Categories[0])
		if err != nil {
			errs = append(errs, forms.FieldError{Field: "categories", Message: "Selected category is invalid."})
		}
	}

	if len(errs) > 0 {
		categories, err := s.categories.ListCategories(ctx)
		if err != nil {
			return nil, primitive.NilObjectID, nil, err
		}
		return nil, primitive.NilObjectID, &ItemFormView{
			Form:       *form,
			Categories: categories,
			Errors:     errs,
		}, nil
	}
	return vals, categoryID, nil, nil
}

// discardUpload releases a freshly stored upload after the surrounding store
// write failed, so the aborted command leaves no orphaned file behind.
func (s *ItemService) discardUpload(upload *multipart.FileHeader, imageURL string) {
	if upload == nil {
		return
	}
	if err := s.images.Release(imageURL); err != nil {
		s.logger.Printf("WARN: failed to release image %s after aborted write: %v", imageURL, err)
	}
}

// resolveImage stores the uploaded file if one was supplied and returns its
// web path, falling back to the reserved placeholder otherwise.
func (s *ItemService) resolveImage(upload *multipart.FileHeader) (string, error) {
	if upload == nil {
		return s.images.Placeholder(), nil
	}
	file, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("service: open uploaded image: %w", err)
	}
	defer file.Close()
	webPath, err := s.images.Save(file, upload.Filename)
	if err != nil {
		return "", fmt.Errorf("service: store uploaded image: %w", err)
	}
	return webPath, nil
}
