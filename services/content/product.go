package content

import (
	"context"
	"strings"

	"resonance/models"
	"resonance/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func normalizeProduct(p *models.Product) {
	p.Images = utils.NormalizeMediaList(p.Images)
}

func (s *DefaultContentService) ListProducts(ctx context.Context, includeInactive bool) ([]models.Product, error) {
	products, err := s.Products.List(ctx, !includeInactive)
	if err != nil {
		utils.GetLogger().Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	for i := range products {
		normalizeProduct(&products[i])
	}
	return products, nil
}

func (s *DefaultContentService) GetProduct(ctx context.Context, id string, includeInactive bool) (*models.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	if !p.IsActive && !includeInactive {
		return nil, utils.NotFound("product %s not found", id)
	}
	normalizeProduct(p)
	return p, nil
}

// applyProduct copies the set fields of in onto p and validates the result.
func (s *DefaultContentService) applyProduct(ctx context.Context, p *models.Product, in models.ProductInput) error {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Images != nil {
		images, err := s.media().StoreAll(ctx, in.Images)
		if err != nil {
			utils.GetLogger().Error("Failed to store product images", zap.String("productID", p.ID), zap.Error(err))
			return err
		}
		p.Images = images
	}

	switch {
	case p.Name == "":
		return utils.BadRequest("product name is required")
	case p.Price < 0:
		return utils.BadRequest("price must not be negative")
	case p.Stock < 0:
		return utils.BadRequest("stock must not be negative")
	}
	return nil
}

func (s *DefaultContentService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if in.Price == nil {
		return nil, utils.BadRequest("price is required")
	}
	now := s.now()
	p := &models.Product{ID: uuid.New().String(), Images: []string{}, IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := s.applyProduct(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.Products.Create(ctx, p); err != nil {
		utils.GetLogger().Error("Failed to create product", zap.Error(err))
		return nil, err
	}
	utils.GetLogger().Info("Product created", zap.String("productID", p.ID))
	return p, nil
}

func (s *DefaultContentService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	if err := s.applyProduct(ctx, p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	if err := s.Products.Replace(ctx, p); err != nil {
		return nil, notFound(err, "product", id)
	}
	normalizeProduct(p)
	return p, nil
}

func (s *DefaultContentService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		return notFound(err, "product", id)
	}
	utils.GetLogger().Info("Product deleted", zap.String("productID", id))
	return nil
}
