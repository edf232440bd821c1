package enquiry

import (
	"context"
	"net/http"
	"sync"
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
	m.Run()
}

type memRepo struct {
	mu    sync.Mutex
	items map[string]models.Enquiry
}

func (m *memRepo) Create(_ context.Context, e *models.Enquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[e.ID] = *e
	return nil
}

func (m *memRepo) Replace(ctx context.Context, e *models.Enquiry) error { return m.Create(ctx, e) }

func (m *memRepo) GetByID(_ context.Context, id string) (*models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &e, nil
}

func (m *memRepo) FindPending(context.Context, string, models.SessionType) (*models.Enquiry, error) {
	return nil, database.ErrNotFound
}

func (m *memRepo) List(_ context.Context, f models.EnquiryFilter) ([]models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Enquiry{}
	for _, e := range m.items {
		if (f.Status == "" || e.Status == f.Status) && (f.SessionType == "" || e.SessionType == f.SessionType) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id string, st models.EnquiryStatus) (*models.Enquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	e.Status = st
	m.items[id] = e
	return &e, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) EnsureIndexes(context.Context) error { return nil }

func seeded() (*DefaultEnquiryService, *memRepo) {
	repo := &memRepo{items: map[string]models.Enquiry{
		"e1": {ID: "e1", Status: models.EnquiryPending, SessionType: models.SessionDiscovery,
			Comment:   `{"hasCrystalBowls":"Yes","experienceLevel":"Not specified","intentions":"Not specified","additionalInfo":"Not specified"}`,
			CreatedAt: time.Now()},
		"e2": {ID: "e2", Status: models.EnquiryContacted, SessionType: models.SessionPrivate, Comment: "Focus: sleep"},
	}}
	return NewEnquiryService(repo), repo
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Status
}

func TestStatusReachableFromAnyState(t *testing.T) {
	svc, _ := seeded()
	ctx := context.Background()
	states := []string{"contacted", "completed", "pending", "completed", "contacted", "pending"}
	for _, st := range states {
		e, err := svc.UpdateStatus(ctx, "e1", st)
		require.NoError(t, err, st)
		assert.Equal(t, models.EnquiryStatus(st), e.Status)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	svc, _ := seeded()
	_, err := svc.UpdateStatus(context.Background(), "e1", "archived")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	_, err = svc.UpdateStatus(context.Background(), "missing", "pending")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestDeleteRemovesFromListing(t *testing.T) {
	svc, _ := seeded()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "e1"))
	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "e2", all[0].ID)

	_, err = svc.Get(ctx, "e1")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.Equal(t, http.StatusNotFound, statusOf(t, svc.Delete(ctx, "e1")))
}

func TestListFilters(t *testing.T) {
	svc, _ := seeded()
	got, err := svc.List(context.Background(), "Contacted", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)

	_, err = svc.List(context.Background(), "", "group")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestGetDecodesDiscoveryAnswers(t *testing.T) {
	svc, _ := seeded()
	view, err := svc.Get(context.Background(), "e1")
	require.NoError(t, err)
	require.NotNil(t, view.Answers)
	assert.Equal(t, "Yes", view.Answers.HasCrystalBowls)

	private, err := svc.Get(context.Background(), "e2")
	require.NoError(t, err)
	assert.Nil(t, private.Answers)
}
