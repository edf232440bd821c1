package content

import (
	"context"
	"errors"
	"time"

	"resonance/database"
	"resonance/database/repository"
	"resonance/models"
	"resonance/services/storage"
	"resonance/utils"
)

type ProductService interface {
	ListProducts(ctx context.Context, includeInactive bool) ([]models.Product, error)
	GetProduct(ctx context.Context, id string, includeInactive bool) (*models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type BlogService interface {
	ListBlogs(ctx context.Context, includeDrafts bool) ([]models.Blog, error)
	// GetBlog resolves either an id or a slug.
	GetBlog(ctx context.Context, idOrSlug string, includeDrafts bool) (*models.Blog, error)
	CreateBlog(ctx context.Context, in models.BlogInput) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, in models.BlogInput) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

type EventService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, in models.EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// DefaultContentService implements the catalog, blog and event services.
type DefaultContentService struct {
	Products repository.ProductRepository
	Blogs    repository.BlogRepository
	Events   repository.EventRepository
	Media    storage.MediaStore
	Now      func() time.Time
}

func (s *DefaultContentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultContentService) media() storage.MediaStore {
	if s.Media == nil {
		return storage.InlineStore{}
	}
	return s.Media
}

// notFound turns a missing document into a 404 and leaves other errors untouched.
func notFound(err error, kind, id string) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFound("%s %s not found", kind, id)
	}
	return err
}
