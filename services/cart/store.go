package cart

import (
	"context"
	"errors"
	"sync"

	"resonance/models"
	"resonance/utils"

	"go.uber.org/zap"
)

// StoreName prefixes the persisted cart of every owner.
const StoreName = "cart-storage"

var ErrNoSession = errors.New("cart requires a signed-in customer")

// TokenValidator verifies a bearer token. *utils.TokenManager satisfies it.
type TokenValidator interface {
	ParseToken(token string) (*utils.Claims, error)
}

// Persister keeps cart lines between requests.
type Persister interface {
	Load(ctx context.Context, key string) ([]models.CartItem, error)
	Save(ctx context.Context, key string, items []models.CartItem) error
	Delete(ctx context.Context, key string) error
}

func storageKey(owner string) string {
	return StoreName + ":" + owner
}

// Store holds the cart of one owner. It starts empty and unowned; Hydrate
// binds it to the owner of a valid token and loads the persisted lines.
type Store struct {
	mu        sync.Mutex
	persister Persister
	tokens    TokenValidator
	owner     string
	items     []models.CartItem
}

func NewStore(p Persister, tokens TokenValidator) *Store {
	return &Store{persister: p, tokens: tokens}
}

// Hydrate validates token and loads its owner's cart. A missing or invalid
// token leaves the store empty and unowned.
func (s *Store) Hydrate(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.owner = ""
	s.items = nil
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil || claims.UserID == "" {
		utils.GetLogger().Debug("Cart hydrated without a valid token", zap.Error(err))
		return nil
	}

	items, err := s.persister.Load(ctx, storageKey(claims.UserID))
	if err != nil {
		return err
	}
	s.owner = claims.UserID
	s.items = items
	return nil
}

// Owner is the user the cart belongs to, empty when unowned.
func (s *Store) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Logout empties the cart and forgets the persisted copy.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := s.owner
	s.owner = ""
	s.items = nil
	if owner == "" {
		return nil
	}
	return s.persister.Delete(ctx, storageKey(owner))
}

// AddItem merges qty (default 1) of item into the cart.
func (s *Store) AddItem(ctx context.Context, item models.CartItem, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	return s.mutate(ctx, "add", func() {
		for i := range s.items {
			if s.items[i].ID == item.ID {
				s.items[i].Quantity += qty
				return
			}
		}
		item.Quantity = qty
		s.items = append(s.items, item)
	})
}

func (s *Store) Increment(ctx context.Context, id string) error {
	return s.mutate(ctx, "increment", func() {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity++
				return
			}
		}
	})
}

// Decrement lowers the quantity of a line and removes it at zero.
func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.mutate(ctx, "decrement", func() {
		for i := range s.items {
			if s.items[i].ID != id {
				continue
			}
			s.items[i].Quantity--
			if s.items[i].Quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			}
			return
		}
	})
}

func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove", func() {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear", func() { s.items = nil })
}

// mutate applies fn and persists the result. Unowned carts drop the change.
func (s *Store) mutate(ctx context.Context, op string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owner == "" {
		utils.GetLogger().Warn("Cart change dropped without a valid token", zap.String("op", op))
		return ErrNoSession
	}
	fn()
	if len(s.items) == 0 {
		return s.persister.Delete(ctx, storageKey(s.owner))
	}
	return s.persister.Save(ctx, storageKey(s.owner), s.items)
}

// Items returns a copy of the cart lines.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}
