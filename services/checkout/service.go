package checkout

import (
	"context"
	"errors"
	"strings"

	"resonance/database"
	"resonance/database/repository"
	"resonance/metrics"
	"resonance/models"
	"resonance/services/notification"
	"resonance/utils"

	"go.uber.org/zap"
)

// ProductCatalog re-prices submitted cart lines.
type ProductCatalog interface {
	GetMany(ctx context.Context, ids []string) (map[string]models.Product, error)
}

// CartClearer drops a customer's saved cart once an order is recorded.
type CartClearer interface {
	ClearFor(ctx context.Context, userID string) error
}

// Customer identifies the paying account.
type Customer struct {
	ID    string
	Email string
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, customer Customer, req models.CheckoutRequest) (*models.CheckoutResponse, error)
	VerifyCheckout(ctx context.Context, userID, sessionID string) (*models.VerifyCheckoutResponse, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

type DefaultCheckoutService struct {
	Orders     repository.OrderRepository
	Products   ProductCatalog
	Provider   PaymentProvider
	Carts      CartClearer
	Dispatcher notification.Dispatcher
	Pricing    Pricing
	SuccessURL string
	CancelURL  string
}

// priceItems merges duplicate lines and replaces client prices and names
// with catalog values. Unknown or inactive products are rejected.
func (s *DefaultCheckoutService) priceItems(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	if len(items) == 0 {
		return nil, utils.BadRequest("cart is empty")
	}

	merged := make([]models.CartItem, 0, len(items))
	index := map[string]int{}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, utils.BadRequest("every item needs an id")
		}
		if it.Quantity < 1 {
			return nil, utils.BadRequest("quantity of %s must be at least 1", it.ID)
		}
		if i, ok := index[it.ID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ID] = len(merged)
		merged = append(merged, it)
		ids = append(ids, it.ID)
	}

	catalog, err := s.Products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, it := range merged {
		p, ok := catalog[it.ID]
		if !ok || !p.IsActive {
			return nil, utils.BadRequest("product %s is not available", it.ID)
		}
		merged[i].Name = p.Name
		merged[i].Price = p.Price
		if len(p.Images) > 0 {
			merged[i].ImageURL = utils.NormalizeMedia(p.Images[0])
		}
	}
	return merged, nil
}

// CreateCheckout opens a payment session for the submitted cart. A non-zero
// totalAmount must match the server-side total.
func (s *DefaultCheckoutService) CreateCheckout(ctx context.Context, customer Customer, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	logger := utils.GetLogger()

	items, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	charges := ComputeCharges(Subtotal(items), s.Pricing)
	if req.TotalAmount != 0 && req.TotalAmount != charges.Total {
		return nil, utils.BadRequest("cart total has changed, please review your cart")
	}

	lines := make([]LineItem, 0, len(items)+2)
	for _, it := range items {
		lines = append(lines, LineItem{
			Kind: KindProduct, ProductID: it.ID, Name: it.Name,
			UnitAmount: it.Price, Quantity: int64(it.Quantity), ImageURL: it.ImageURL,
		})
	}
	if charges.Shipping > 0 {
		lines = append(lines, LineItem{Kind: KindShipping, Name: "Shipping", UnitAmount: charges.Shipping, Quantity: 1})
	}
	if charges.Tax > 0 {
		lines = append(lines, LineItem{Kind: KindTax, Name: "Tax", UnitAmount: charges.Tax, Quantity: 1})
	}

	sess, err := s.Provider.CreateSession(ctx, SessionRequest{
		UserID:     customer.ID,
		Email:      customer.Email,
		Currency:   s.Pricing.Currency,
		SuccessURL: s.SuccessURL,
		CancelURL:  s.CancelURL,
		Lines:      lines,
	})
	if err != nil {
		logger.Error("Failed to create payment session", zap.String("userID", customer.ID), zap.Error(err))
		return nil, err
	}
	metrics.IncCheckoutSession()
	logger.Info("Payment session created", zap.String("userID", customer.ID), zap.String("sessionID", sess.ID), zap.Int64("total", charges.Total))

	return &models.CheckoutResponse{SessionID: sess.ID, URL: sess.URL, Charges: charges}, nil
}

func verifyResponse(o *models.Order) *models.VerifyCheckoutResponse {
	return &models.VerifyCheckoutResponse{OrderID: o.ID, Amount: o.Amount, Currency: o.Currency, Status: string(o.Status)}
}

// VerifyCheckout records the order of a paid session exactly once. Repeated
// calls with the same session return the same order.
func (s *DefaultCheckoutService) VerifyCheckout(ctx context.Context, userID, sessionID string) (*models.VerifyCheckoutResponse, error) {
	logger := utils.GetLogger()
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, utils.BadRequest("sessionId is required")
	}

	existing, err := s.Orders.GetByPaymentRef(ctx, sessionID)
	switch {
	case err == nil:
		if userID != "" && existing.UserID != userID {
			return nil, utils.NotFound("checkout session %s not found", sessionID)
		}
		return verifyResponse(existing), nil
	case !errors.Is(err, database.ErrNotFound):
		logger.Error("Failed to look up order by payment reference", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}

	sess, err := s.Provider.RetrieveSession(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, utils.NotFound("checkout session %s not found", sessionID)
	}
	if err != nil {
		logger.Error("Failed to retrieve payment session", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	if userID != "" && sess.UserID != "" && sess.UserID != userID {
		return nil, utils.NotFound("checkout session %s not found", sessionID)
	}
	if !sess.Paid {
		return nil, utils.PaymentFailed("payment has not been completed", nil)
	}

	order := orderFromSession(sess, s.Provider.Name())
	if order.UserID == "" {
		order.UserID = userID
	}

	if err := s.Orders.Insert(ctx, order); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// A concurrent verification recorded it first.
			winner, getErr := s.Orders.GetByPaymentRef(ctx, sessionID)
			if getErr != nil {
				return nil, getErr
			}
			return verifyResponse(winner), nil
		}
		logger.Error("Failed to record order", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	metrics.IncOrderRecorded()
	logger.Info("Order recorded", zap.String("orderID", order.ID), zap.String("sessionID", sessionID), zap.Int64("amount", order.Amount))

	if s.Carts != nil {
		if err := s.Carts.ClearFor(ctx, order.UserID); err != nil {
			logger.Warn("Failed to clear cart after order", zap.String("userID", order.UserID), zap.Error(err))
		}
	}
	if s.Dispatcher != nil && order.Email != "" {
		if err := s.Dispatcher.Dispatch(ctx, notification.OrderConfirmedMessage(*order)); err != nil {
			logger.Warn("Failed to dispatch order confirmation", zap.String("orderID", order.ID), zap.Error(err))
		}
	}
	return verifyResponse(order), nil
}

// orderFromSession builds an order from provider data only.
func orderFromSession(sess *Session, provider string) *models.Order {
	o := &models.Order{
		UserID:          sess.UserID,
		Email:           sess.Email,
		Items:           []models.OrderItem{},
		Amount:          sess.AmountTotal,
		Currency:        sess.Currency,
		Status:          models.OrderPaid,
		PaymentProvider: provider,
		PaymentRef:      sess.ID,
	}
	for _, l := range sess.Lines {
		switch l.Kind {
		case KindShipping:
			o.Shipping += l.UnitAmount * l.Quantity
		case KindTax:
			o.Tax += l.UnitAmount * l.Quantity
		default:
			o.Items = append(o.Items, models.OrderItem{
				ProductID: l.ProductID,
				Name:      l.Name,
				Price:     l.UnitAmount,
				Quantity:  int(l.Quantity),
				ImageURL:  l.ImageURL,
			})
			o.Subtotal += l.UnitAmount * l.Quantity
		}
	}
	return o
}

func (s *DefaultCheckoutService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// GetOrder returns one of the customer's own orders.
func (s *DefaultCheckoutService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && o.UserID != userID) {
		return nil, utils.NotFound("order %s not found", orderID)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DefaultCheckoutService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.Orders.ListAll(ctx)
}

// UpdateOrderStatus moves an order along its allowed transitions.
func (s *DefaultCheckoutService) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	current, err := s.Orders.GetByID(ctx, orderID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("order %s not found", orderID)
	}
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, utils.Conflict("order %s cannot move from %s to %s", orderID, current.Status, next)
	}

	updated, err := s.Orders.UpdateStatus(ctx, orderID, current.Status, next)
	if errors.Is(err, database.ErrConflict) {
		return nil, utils.Conflict("order %s was changed concurrently, reload and retry", orderID)
	}
	if err != nil {
		utils.GetLogger().Error("Failed to update order status", zap.String("orderID", orderID), zap.Error(err))
		return nil, err
	}
	return updated, nil
}
