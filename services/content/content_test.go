package content

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"resonance/database"
	"resonance/models"
	"resonance/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	utils.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

type memProducts struct{ items map[string]models.Product }

func (r *memProducts) Create(_ context.Context, p *models.Product) error {
	r.items[p.ID] = *p
	return nil
}
func (r *memProducts) Replace(_ context.Context, p *models.Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return database.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}
func (r *memProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}
func (r *memProducts) GetMany(_ context.Context, ids []string) (map[string]models.Product, error) {
	out := map[string]models.Product{}
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
func (r *memProducts) List(_ context.Context, activeOnly bool) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range r.items {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
func (r *memProducts) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }
func (r *memProducts) EnsureIndexes(context.Context) error  { return nil }

type memBlogs struct{ items []models.Blog }

func (r *memBlogs) Create(_ context.Context, b *models.Blog) error {
	for _, existing := range r.items {
		if existing.Slug == b.Slug {
			return database.ErrDuplicate
		}
	}
	r.items = append(r.items, *b)
	return nil
}
func (r *memBlogs) Replace(_ context.Context, b *models.Blog) error {
	for i := range r.items {
		if r.items[i].ID == b.ID {
			r.items[i] = *b
			return nil
		}
	}
	return database.ErrNotFound
}
func (r *memBlogs) GetByID(_ context.Context, idOrSlug string) (*models.Blog, error) {
	for _, b := range r.items {
		if b.ID == idOrSlug || b.Slug == idOrSlug {
			return &b, nil
		}
	}
	return nil, database.ErrNotFound
}
func (r *memBlogs) List(_ context.Context, publishedOnly bool) ([]models.Blog, error) {
	out := []models.Blog{}
	for _, b := range r.items {
		if !publishedOnly || b.Published {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *memBlogs) Delete(_ context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}
func (r *memBlogs) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }
func (r *memBlogs) EnsureIndexes(context.Context) error  { return nil }

type memEvents struct{ items map[string]models.Event }

func (r *memEvents) Create(_ context.Context, e *models.Event) error {
	r.items[e.ID] = *e
	return nil
}
func (r *memEvents) Replace(_ context.Context, e *models.Event) error {
	if _, ok := r.items[e.ID]; !ok {
		return database.ErrNotFound
	}
	r.items[e.ID] = *e
	return nil
}
func (r *memEvents) GetByID(_ context.Context, id string) (*models.Event, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &e, nil
}
func (r *memEvents) List(context.Context) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range r.items {
		out = append(out, e)
	}
	return out, nil
}
func (r *memEvents) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
func (r *memEvents) Count(context.Context) (int64, error) { return int64(len(r.items)), nil }
func (r *memEvents) EnsureIndexes(context.Context) error  { return nil }

func newService() *DefaultContentService {
	return &DefaultContentService{
		Products: &memProducts{items: map[string]models.Product{}},
		Blogs:    &memBlogs{},
		Events:   &memEvents{items: map[string]models.Event{}},
		Now:      func() time.Time { return time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
}

func ptr[T any](v T) *T { return &v }

func TestProductLifecycle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, models.ProductInput{Name: ptr("Bowl")})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.CreateProduct(ctx, models.ProductInput{Name: ptr(" "), Price: ptr(int64(100))})
	requireStatus(t, err, http.StatusBadRequest)

	p, err := svc.CreateProduct(ctx, models.ProductInput{
		Name:   ptr("Frosted Quartz Bowl"),
		Price:  ptr(int64(12000)),
		Images: []string{"aGk=", "", "https://cdn.example/b.jpg"},
	})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, []string{"data:image/jpeg;base64,aGk=", "https://cdn.example/b.jpg"}, p.Images)

	updated, err := svc.UpdateProduct(ctx, p.ID, models.ProductInput{IsActive: ptr(false), Stock: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Frosted Quartz Bowl", updated.Name)
	assert.Equal(t, 3, updated.Stock)

	// Inactive products are hidden from the public catalog.
	_, err = svc.GetProduct(ctx, p.ID, false)
	requireStatus(t, err, http.StatusNotFound)
	public, err := svc.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, public)
	all, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.UpdateProduct(ctx, p.ID, models.ProductInput{Price: ptr(int64(-1))})
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	requireStatus(t, svc.DeleteProduct(ctx, p.ID), http.StatusNotFound)
}

func TestProductImagesNormalizedOnRead(t *testing.T) {
	svc := newService()
	svc.Products.(*memProducts).items["legacy"] = models.Product{ID: "legacy", Name: "Old", IsActive: true, Images: []string{"aGk="}}

	p, err := svc.GetProduct(context.Background(), "legacy", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"data:image/jpeg;base64,aGk="}, p.Images)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sound-healing-101", Slugify("  Sound Healing: 101! "))
	assert.Equal(t, "crystal-bowls-for-beginners", Slugify("Crystal bowls -- for beginners"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestBlogSlugsAndDrafts(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first, err := svc.CreateBlog(ctx, models.BlogInput{Title: ptr("Sound Healing"), Content: ptr("body"), Published: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "sound-healing", first.Slug)

	second, err := svc.CreateBlog(ctx, models.BlogInput{Title: ptr("Sound healing"), Content: ptr("draft")})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "sound-healing-")

	got, err := svc.GetBlog(ctx, "sound-healing", false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svc.GetBlog(ctx, second.ID, false)
	requireStatus(t, err, http.StatusNotFound)
	_, err = svc.GetBlog(ctx, second.ID, true)
	require.NoError(t, err)

	published, err := svc.ListBlogs(ctx, false)
	require.NoError(t, err)
	assert.Len(t, published, 1)

	updated, err := svc.UpdateBlog(ctx, first.ID, models.BlogInput{Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "sound-healing", updated.Slug)

	_, err = svc.CreateBlog(ctx, models.BlogInput{Title: ptr("No body")})
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, svc.DeleteBlog(ctx, "sound-healing"))
	requireStatus(t, svc.DeleteBlog(ctx, first.ID), http.StatusNotFound)
}

func TestEventValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	start := time.Date(2026, time.May, 2, 18, 0, 0, 0, time.UTC)

	_, err := svc.CreateEvent(ctx, models.EventInput{Title: ptr("Full Moon Bath")})
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.CreateEvent(ctx, models.EventInput{Title: ptr("Full Moon Bath"), StartsAt: &start, EndsAt: ptr(start.Add(-time.Hour))})
	requireStatus(t, err, http.StatusBadRequest)

	e, err := svc.CreateEvent(ctx, models.EventInput{
		Title: ptr("Full Moon Bath"), StartsAt: &start, EndsAt: ptr(start.Add(2 * time.Hour)),
		Image: ptr("aGk="), Video: ptr(" https://video.example/v.mp4 "), Capacity: ptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,aGk=", e.Image)
	assert.Equal(t, "https://video.example/v.mp4", e.Video)

	updated, err := svc.UpdateEvent(ctx, e.ID, models.EventInput{Location: ptr("Pune")})
	require.NoError(t, err)
	assert.Equal(t, "Pune", updated.Location)

	_, err = svc.GetEvent(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
	require.NoError(t, svc.DeleteEvent(ctx, e.ID))
}
