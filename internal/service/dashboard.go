package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"inventory-catalog/internal/store"
)

// Counts is the dashboard view model.
type Counts struct {
	Categories int64
	Items      int64
}

// Dashboard provides the index page counts.
type Dashboard struct {
	categories store.CategoryStorer
	items      store.ItemStorer
}

// NewDashboard creates a Dashboard with its dependencies.
func NewDashboard(cs store.CategoryStorer, is store.ItemStorer) *Dashboard {
	return &Dashboard{categories: cs, items: is}
}

// Counts fetches the category and item counts concurrently.
func (d *Dashboard) Counts(ctx context.Context) (*Counts, error) {
	var counts Counts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts.Categories, err = d.categories.CountCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Items, err = d.items.CountItems(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}
