package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
	"github.com/healthmate/healthmate-api/pkg/storage"
)

type fakeRepo struct {
	reports   map[uuid.UUID]*model.Report
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: make(map[uuid.UUID]*model.Report)}
}

func (f *fakeRepo) Create(_ context.Context, report *model.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.reports[report.ID] = report
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id, userID uuid.UUID) (*model.Report, error) {
	report, ok := f.reports[id]
	if !ok || report.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return report, nil
}

func (f *fakeRepo) List(_ context.Context, userID uuid.UUID) ([]*model.Report, error) {
	var out []*model.Report
	for _, r := range f.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, report *model.Report) error {
	f.reports[report.ID] = report
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id, _ uuid.UUID) error {
	delete(f.reports, id)
	return nil
}

func (f *fakeRepo) MarkAnalyzed(_ context.Context, id uuid.UUID) error {
	if r, ok := f.reports[id]; ok {
		r.Analyzed = true
	}
	return nil
}

type fakeStore struct {
	uploadErr error
	destroyed []string
}

func (f *fakeStore) Upload(_ context.Context, filename string, r io.Reader) (*storage.Object, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	io.Copy(io.Discard, r)
	return &storage.Object{
		URL:      "https://cdn.example.com/" + filename,
		PublicID: "healthmate/reports/" + filename,
	}, nil
}

func (f *fakeStore) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func (f *fakeStore) Fetch(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func pdfUpload(meta model.UploadReportRequest) *Upload {
	return &Upload{
		Filename:    "cbc.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		File:        bytes.NewReader([]byte("pdf-bytes")),
		Meta:        meta,
	}
}

func TestUpload(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeStore{})
	userID := uuid.New()

	created, err := svc.Upload(context.Background(), userID, pdfUpload(model.UploadReportRequest{
		Title:      "CBC Report",
		ReportType: model.ReportTypeBloodTest,
	}))
	require.NoError(t, err)

	assert.Equal(t, "CBC Report", created.Title)
	assert.Equal(t, model.ReportTypeBloodTest, created.ReportType)
	assert.Equal(t, model.FileTypePDF, created.FileType)
	assert.Equal(t, "https://cdn.example.com/cbc.pdf", created.FileURL)
	assert.False(t, created.Analyzed)
	assert.Len(t, repo.reports, 1)
}

func TestUploadDefaults(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeStore{})

	created, err := svc.Upload(context.Background(), uuid.New(), pdfUpload(model.UploadReportRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "Medical Report", created.Title)
	assert.Equal(t, model.ReportTypeOther, created.ReportType)
	assert.False(t, created.ReportDate.IsZero())
}

func TestUploadRejectsBadContentType(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(newFakeRepo(), store)

	upload := pdfUpload(model.UploadReportRequest{})
	upload.ContentType = "text/html"

	_, err := svc.Upload(context.Background(), uuid.New(), upload)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.Empty(t, store.destroyed)
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeStore{})

	upload := pdfUpload(model.UploadReportRequest{})
	upload.Size = MaxFileSize + 1

	_, err := svc.Upload(context.Background(), uuid.New(), upload)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestUploadCleansUpOnCreateFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("db down")
	store := &fakeStore{}
	svc := NewService(repo, store)

	_, err := svc.Upload(context.Background(), uuid.New(), pdfUpload(model.UploadReportRequest{}))
	require.Error(t, err)
	assert.Equal(t, []string{"healthmate/reports/cbc.pdf"}, store.destroyed)
}

func TestUpdateMergesFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeStore{})
	userID := uuid.New()

	created, err := svc.Upload(context.Background(), userID, pdfUpload(model.UploadReportRequest{
		Title: "Original",
	}))
	require.NoError(t, err)

	newTitle := "Renamed"
	hospital := "City Hospital"
	updated, err := svc.Update(context.Background(), created.ID, userID, &model.UpdateReportRequest{
		Title:        &newTitle,
		HospitalName: &hospital,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.HospitalName)
	assert.Equal(t, "City Hospital", *updated.HospitalName)
	assert.Equal(t, created.ReportType, updated.ReportType)
}

func TestDeleteCascadesToStorage(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := NewService(repo, store)
	userID := uuid.New()

	created, err := svc.Upload(context.Background(), userID, pdfUpload(model.UploadReportRequest{}))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, userID))
	assert.Equal(t, []string{created.FilePublicID}, store.destroyed)
	assert.Empty(t, repo.reports)
}

func TestGetScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeStore{})
	userID := uuid.New()

	created, err := svc.Upload(context.Background(), userID, pdfUpload(model.UploadReportRequest{}))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
