package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resonance/database"
	"resonance/handlers"
	"resonance/models"
	"resonance/services/booking"
	"resonance/services/cart"
	"resonance/services/checkout"
	"resonance/services/enquiry"
	"resonance/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSlots struct{ lastShowAll bool }

func (f *fakeSlots) ListSlots(_ context.Context, _ string, showAll bool) ([]models.Slot, error) {
	f.lastShowAll = showAll
	return []models.Slot{}, nil
}
func (f *fakeSlots) CalendarFor(context.Context, string, int, int) (*booking.CalendarView, error) {
	return &booking.CalendarView{}, nil
}
func (f *fakeSlots) CreateSlot(context.Context, models.CreateSlotRequest) (*models.Slot, error) {
	return &models.Slot{ID: "s1"}, nil
}
func (f *fakeSlots) CreateSlots(context.Context, models.CreateSlotsRequest) ([]models.Slot, error) {
	return nil, nil
}
func (f *fakeSlots) DeleteSlot(context.Context, string) error { return nil }

type takenBooking struct{}

func (takenBooking) Submit(context.Context, models.EnquiryRequest, string) (*models.Enquiry, error) {
	return nil, utils.Conflict("slot no longer available")
}

type noEnquiries struct{ enquiry.EnquiryService }

type catalog map[string]models.Product

func (c catalog) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := c[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

type unpaidCheckout struct{ checkout.CheckoutService }

func (unpaidCheckout) VerifyCheckout(context.Context, string, string) (*models.VerifyCheckoutResponse, error) {
	return nil, utils.PaymentFailed("payment has not been completed", nil)
}

type fakeStats struct{}

func (fakeStats) Dashboard(context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{Products: 3}, nil
}

type fakeUsers struct {
	tokens  *utils.TokenManager
	revoked *utils.RevocationStore
}

func (f *fakeUsers) Register(context.Context, models.RegisterRequest) (*models.User, error) {
	return nil, nil
}
func (f *fakeUsers) VerifyEmail(context.Context, models.OTPVerifyRequest) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeUsers) ResendVerification(context.Context, string) error { return nil }
func (f *fakeUsers) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Password != "bowls2026" {
		return nil, utils.Unauthorized("invalid email or password")
	}
	token, err := f.tokens.GenerateToken("user-1", utils.RoleCustomer, false)
	return &models.AuthResponse{Token: token, User: models.User{ID: "user-1", Email: req.Email}}, err
}
func (f *fakeUsers) SendLoginOTP(context.Context, string) error { return nil }
func (f *fakeUsers) VerifyLoginOTP(context.Context, models.OTPVerifyRequest) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeUsers) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return f.revoked.Revoke(ctx, token, time.Until(expiresAt))
}
func (f *fakeUsers) GetProfile(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, Email: "asha@example.com"}, nil
}
func (f *fakeUsers) UpdateProfile(context.Context, string, models.ProfileUpdate) (*models.User, error) {
	return nil, nil
}

type harness struct {
	router *gin.Engine
	tokens *utils.TokenManager
	slots  *fakeSlots
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zap.NewNop())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	revoked := utils.NewRevocationStore(client)
	carts := &cart.Service{
		Persister: cart.NewRedisPersister(client, time.Hour),
		Tokens:    tokens,
		Products: catalog{
			"bowl": {ID: "bowl", Name: "Quartz Bowl", Price: 3000, IsActive: true, Images: []string{"aGk="}},
		},
	}
	pricing := checkout.Pricing{FreeShippingThreshold: 5000, ShippingFee: 200, TaxRate: 0.18, Currency: "inr"}
	users := &fakeUsers{tokens: tokens, revoked: revoked}
	slots := &fakeSlots{}

	hb := &handlers.HandlerBundle{
		Slots:     &handlers.SlotHandler{Slots: slots},
		Enquiries: &handlers.EnquiryHandler{Booking: takenBooking{}, Enquiries: noEnquiries{}},
		Cart:      &handlers.CartHandler{Carts: carts, Pricing: pricing},
		Payments:  &handlers.PaymentHandler{Checkout: unpaidCheckout{}, Users: users},
		Content:   &handlers.ContentHandler{},
		Auth:      &handlers.AuthHandler{Users: users, Carts: carts, TokenTTL: time.Hour},
		Admin:     &handlers.AdminHandler{TokenTTL: time.Hour},
		Stats:     &handlers.StatsHandler{Stats: fakeStats{}},
		Health: &handlers.HealthHandler{Status: func() utils.HealthStatus {
			return utils.HealthStatus{Mongo: true, Redis: []bool{true}}
		}},
	}
	r := gin.New()
	RegisterRoutes(r, hb, Options{Tokens: tokens, Revocations: revoked, CORSOrigins: "*", MaxRequestsPerMin: 1000})
	return &harness{router: r, tokens: tokens, slots: slots}
}

func (h *harness) token(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := h.tokens.GenerateToken(userID, role, role == utils.RoleAdmin)
	require.NoError(t, err)
	return tok
}

func (h *harness) do(method, path, token string, body any) (*httptest.ResponseRecorder, utils.Envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	var env utils.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func cartOf(t *testing.T, env utils.Envelope) models.CartView {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var v models.CartView
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = h.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutesAreGuarded(t *testing.T) {
	h := newHarness(t)

	w, env := h.do(http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.CodeUnauthorized, env.Code)

	w, env = h.do(http.MethodGet, "/api/admin/stats", h.token(t, "user-1", utils.RoleCustomer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, utils.CodeForbidden, env.Code)

	w, env = h.do(http.MethodGet, "/api/admin/stats", h.token(t, "admin-1", utils.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), env.Data.(map[string]any)["products"])

	w, _ = h.do(http.MethodPost, "/api/slots", h.token(t, "user-1", utils.RoleCustomer), models.CreateSlotRequest{SessionType: "discovery", Date: "2026-04-07", Time: "09:00"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShowAllSlotsIsAdminOnly(t *testing.T) {
	h := newHarness(t)

	h.do(http.MethodGet, "/api/slots?sessionType=discovery&showAll=true", "", nil)
	assert.False(t, h.slots.lastShowAll)

	h.do(http.MethodGet, "/api/slots?sessionType=discovery&showAll=true", h.token(t, "admin-1", utils.RoleAdmin), nil)
	assert.True(t, h.slots.lastShowAll)
}

func TestEnquiryConflictEnvelope(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(http.MethodPost, "/api/enquiries", "", models.EnquiryRequest{
		SessionType: "discovery", FullName: "Asha Rao", Email: "asha@example.com", Phone: "1", Date: "2026-04-07", Time: "09:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "slot no longer available", env.Message)

	w, _ = h.do(http.MethodPost, "/api/enquiries", "", map[string]string{"fullName": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartFlow(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, "user-1", utils.RoleCustomer)

	w, _ := h.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := h.do(http.MethodPost, "/api/cart/items", tok, models.AddCartItemRequest{ProductID: "bowl", Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)
	v := cartOf(t, env)
	assert.Equal(t, 2, v.TotalQuantity)
	assert.Equal(t, models.Charges{Subtotal: 6000, Shipping: 0, Tax: 1080, Total: 7080}, v.Charges)
	assert.Equal(t, "data:image/jpeg;base64,aGk=", v.Items[0].ImageURL)

	_, env = h.do(http.MethodPost, "/api/cart/items/bowl/decrement", tok, nil)
	v = cartOf(t, env)
	assert.Equal(t, models.Charges{Subtotal: 3000, Shipping: 200, Tax: 540, Total: 3740}, v.Charges)

	// The cart survives between requests.
	_, env = h.do(http.MethodGet, "/api/cart", tok, nil)
	assert.Equal(t, 1, cartOf(t, env).TotalQuantity)

	w, _ = h.do(http.MethodPost, "/api/cart/items", tok, models.AddCartItemRequest{ProductID: "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = h.do(http.MethodDelete, "/api/cart/items/bowl", tok, nil)
	v = cartOf(t, env)
	assert.Empty(t, v.Items)
	assert.Equal(t, int64(0), v.Charges.Total)
}

func TestVerifyCheckoutUnpaid(t *testing.T) {
	h := newHarness(t)
	w, env := h.do(http.MethodPost, "/api/payment/verify-checkout", h.token(t, "user-1", utils.RoleCustomer), models.VerifyCheckoutRequest{SessionID: "cs_test"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, utils.CodeUnpaid, env.Code)
}

func TestLoginSetsCookieAndLogoutRevokes(t *testing.T) {
	h := newHarness(t)

	w, env := h.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "asha@example.com", Password: "bowls2026"})
	require.Equal(t, http.StatusOK, w.Code)
	token := env.Data.(map[string]any)["token"].(string)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, token, cookie.Value)

	h.do(http.MethodPost, "/api/cart/items", token, models.AddCartItemRequest{ProductID: "bowl"})

	w, _ = h.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = h.do(http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A fresh session starts with an empty cart.
	_, env = h.do(http.MethodGet, "/api/cart", h.token(t, "user-1", utils.RoleCustomer), nil)
	assert.Empty(t, cartOf(t, env).Items)
}

func TestCORSWildcard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	preflight := func(production bool) http.Header {
		r := gin.New()
		r.Use(cors.New(corsConfig("*", production)))
		r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		req.Header.Set("Origin", "https://evil.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Header()
	}

	dev := preflight(false)
	assert.Equal(t, "https://evil.example", dev.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", dev.Get("Access-Control-Allow-Credentials"))

	prod := preflight(true)
	assert.Equal(t, "*", prod.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, prod.Get("Access-Control-Allow-Credentials"))

	listed := corsConfig("https://shop.example, https://admin.example", true)
	assert.True(t, listed.AllowCredentials)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, listed.AllowOrigins)
}
