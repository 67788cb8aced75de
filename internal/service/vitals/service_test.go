package vitals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
)

type fakeVitalsRepo struct {
	records map[uuid.UUID]*model.Vitals
}

func newFakeVitalsRepo() *fakeVitalsRepo {
	return &fakeVitalsRepo{records: make(map[uuid.UUID]*model.Vitals)}
}

func (f *fakeVitalsRepo) Create(_ context.Context, v *model.Vitals) error {
	f.records[v.ID] = v
	return nil
}

func (f *fakeVitalsRepo) Get(_ context.Context, id, userID uuid.UUID) (*model.Vitals, error) {
	v, ok := f.records[id]
	if !ok || v.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVitalsRepo) List(_ context.Context, userID uuid.UUID, _ *model.VitalsFilter) ([]*model.Vitals, error) {
	var out []*model.Vitals
	for _, v := range f.records {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVitalsRepo) ListSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*model.Vitals, error) {
	var out []*model.Vitals
	for _, v := range f.records {
		if v.UserID == userID && !v.Date.Before(since) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVitalsRepo) Update(_ context.Context, v *model.Vitals) error {
	if _, ok := f.records[v.ID]; !ok {
		return repository.ErrNotFound
	}
	f.records[v.ID] = v
	return nil
}

func (f *fakeVitalsRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	v, ok := f.records[id]
	if !ok || v.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCreateComputesBMI(t *testing.T) {
	svc := NewService(newFakeVitalsRepo())
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.VitalsRequest{
		Weight: floatPtr(70),
		Height: floatPtr(175),
	})
	require.NoError(t, err)
	require.NotNil(t, created.BMI)
	assert.Equal(t, 22.9, *created.BMI)
}

func TestCreateSkipsBMIWithoutHeight(t *testing.T) {
	svc := NewService(newFakeVitalsRepo())

	created, err := svc.Create(context.Background(), uuid.New(), &model.VitalsRequest{
		Weight: floatPtr(70),
	})
	require.NoError(t, err)
	assert.Nil(t, created.BMI)
}

func TestUpdateRecomputesBMI(t *testing.T) {
	repo := newFakeVitalsRepo()
	svc := NewService(repo)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.VitalsRequest{
		Weight: floatPtr(70),
		Height: floatPtr(175),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, userID, &model.VitalsRequest{
		Weight: floatPtr(80),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.BMI)
	assert.Equal(t, 26.1, *updated.BMI)
}

func TestGetScopedToOwner(t *testing.T) {
	repo := newFakeVitalsRepo()
	svc := NewService(repo)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.VitalsRequest{
		HeartRate: intPtr(72),
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), created.ID, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStatsAverages(t *testing.T) {
	repo := newFakeVitalsRepo()
	svc := NewService(repo)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, &model.VitalsRequest{
		Systolic:   intPtr(120),
		Diastolic:  intPtr(80),
		BloodSugar: floatPtr(95),
		Weight:     floatPtr(70),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, &model.VitalsRequest{
		Systolic:   intPtr(130),
		Diastolic:  intPtr(85),
		BloodSugar: floatPtr(105),
		Weight:     floatPtr(71),
	})
	require.NoError(t, err)
	// reading without BP must not skew the pressure average
	_, err = svc.Create(ctx, userID, &model.VitalsRequest{
		BloodSugar: floatPtr(100),
	})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, userID, 30)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRecords)
	require.NotNil(t, stats.Averages.Systolic)
	assert.Equal(t, 125, *stats.Averages.Systolic)
	assert.Equal(t, 83, *stats.Averages.Diastolic)
	require.NotNil(t, stats.Averages.BloodSugar)
	assert.Equal(t, 100.0, *stats.Averages.BloodSugar)
	require.NotNil(t, stats.Averages.Weight)
	assert.Equal(t, 70.5, *stats.Averages.Weight)
}

func TestStatsEmptyWindow(t *testing.T) {
	svc := NewService(newFakeVitalsRepo())

	stats, err := svc.Stats(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRecords)
	assert.Nil(t, stats.Averages.Systolic)
	assert.Nil(t, stats.Averages.BloodSugar)
	assert.Nil(t, stats.Averages.Weight)
}

func TestDelete(t *testing.T) {
	repo := newFakeVitalsRepo()
	svc := NewService(repo)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, &model.VitalsRequest{
		HeartRate: intPtr(70),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	require.NoError(t, svc.Delete(context.Background(), created.ID, userID))
	_, err = svc.Get(context.Background(), created.ID, userID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
