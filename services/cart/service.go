package cart

import (
	"context"
	"errors"

	"resonance/database"
	"resonance/models"
	"resonance/utils"
)

// ProductLookup resolves catalog entries for cart lines.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// Service opens per-request cart stores and adds catalog products to them.
type Service struct {
	Persister Persister
	Tokens    TokenValidator
	Products  ProductLookup
}

// Open returns the cart of the token's owner.
func (s *Service) Open(ctx context.Context, token string) (*Store, error) {
	st := NewStore(s.Persister, s.Tokens)
	if err := st.Hydrate(ctx, token); err != nil {
		return nil, err
	}
	return st, nil
}

// AddProduct adds qty of an active product at its catalog price.
func (s *Service) AddProduct(ctx context.Context, st *Store, productID string, qty int) error {
	p, err := s.Products.GetByID(ctx, productID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && !p.IsActive) {
		return utils.NotFound("product %s not found", productID)
	}
	if err != nil {
		return err
	}
	if qty < 0 {
		return utils.BadRequest("quantity cannot be negative")
	}

	item := models.CartItem{ID: p.ID, Name: p.Name, Price: p.Price}
	if len(p.Images) > 0 {
		item.ImageURL = utils.NormalizeMedia(p.Images[0])
	}
	return st.AddItem(ctx, item, qty)
}

// ClearFor drops the persisted cart of a user.
func (s *Service) ClearFor(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.Persister.Delete(ctx, storageKey(userID))
}
