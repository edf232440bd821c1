package stats

import (
	"context"

	"resonance/models"
)

// The stubs satisfy the repository interfaces; the dashboard only counts.

type stubProducts struct{}

func (stubProducts) Create(context.Context, *models.Product) error            { return nil }
func (stubProducts) Replace(context.Context, *models.Product) error           { return nil }
func (stubProducts) GetByID(context.Context, string) (*models.Product, error) { return nil, nil }
func (stubProducts) GetMany(context.Context, []string) (map[string]models.Product, error) {
	return nil, nil
}
func (stubProducts) List(context.Context, bool) ([]models.Product, error) { return nil, nil }
func (stubProducts) Delete(context.Context, string) error                 { return nil }
func (stubProducts) EnsureIndexes(context.Context) error                  { return nil }

type blogs struct{ counter }

func (blogs) Create(context.Context, *models.Blog) error            { return nil }
func (blogs) Replace(context.Context, *models.Blog) error           { return nil }
func (blogs) GetByID(context.Context, string) (*models.Blog, error) { return nil, nil }
func (blogs) List(context.Context, bool) ([]models.Blog, error)     { return nil, nil }
func (blogs) Delete(context.Context, string) error                  { return nil }
func (blogs) EnsureIndexes(context.Context) error                   { return nil }

type events struct{ counter }

func (events) Create(context.Context, *models.Event) error            { return nil }
func (events) Replace(context.Context, *models.Event) error           { return nil }
func (events) GetByID(context.Context, string) (*models.Event, error) { return nil, nil }
func (events) List(context.Context) ([]models.Event, error)           { return nil, nil }
func (events) Delete(context.Context, string) error                   { return nil }
func (events) EnsureIndexes(context.Context) error                    { return nil }

type stubUsers struct{}

func (stubUsers) GetByID(context.Context, string) (*models.User, error)    { return nil, nil }
func (stubUsers) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (stubUsers) Create(context.Context, *models.User) error               { return nil }
func (stubUsers) Update(context.Context, *models.User) error               { return nil }
func (stubUsers) MarkEmailVerified(context.Context, string) (*models.User, error) {
	return nil, nil
}
func (stubUsers) EnsureIndexes(context.Context) error { return nil }
