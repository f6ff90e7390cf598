package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"primefire/internal/model"
)

type fakeJobRepo struct {
	jobs map[uuid.UUID]*model.Job
}

func newFakeJobRepo(jobs ...*model.Job) *fakeJobRepo {
	f := &fakeJobRepo{jobs: make(map[uuid.UUID]*model.Job)}
	for _, j := range jobs {
		if j.ID == uuid.Nil {
			j.ID = uuid.New()
		}
		f.jobs[j.ID] = j
	}
	return f
}

func (f *fakeJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobRepo) List(_ context.Context, status string, _, _ int) ([]model.Job, int64, error) {
	var out []model.Job
	for _, j := range f.jobs {
		if status == "" || j.Status == status {
			out = append(out, *j)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *model.Job) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.jobs, id)
	return nil
}

type fakeCurriculumRepo struct {
	curriculums map[uuid.UUID]*model.Curriculum
}

func newFakeCurriculumRepo() *fakeCurriculumRepo {
	return &fakeCurriculumRepo{curriculums: make(map[uuid.UUID]*model.Curriculum)}
}

func (f *fakeCurriculumRepo) Create(_ context.Context, c *model.Curriculum) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.curriculums[c.ID] = c
	return nil
}

func (f *fakeCurriculumRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Curriculum, error) {
	if c, ok := f.curriculums[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCurriculumRepo) List(_ context.Context, _, _ int) ([]model.Curriculum, int64, error) {
	out := make([]model.Curriculum, 0, len(f.curriculums))
	for _, c := range f.curriculums {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCurriculumRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]model.Curriculum, error) {
	var out []model.Curriculum
	for _, c := range f.curriculums {
		if c.JobID != nil && *c.JobID == jobID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCurriculumRepo) ListByStatus(_ context.Context, status string) ([]model.Curriculum, error) {
	var out []model.Curriculum
	for _, c := range f.curriculums {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCurriculumRepo) Update(_ context.Context, c *model.Curriculum) error {
	f.curriculums[c.ID] = c
	return nil
}

func (f *fakeCurriculumRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.curriculums, id)
	return nil
}

func TestCreateFromUploadStoresFile(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeCurriculumRepo()
	svc := NewCurriculumService(repo, newFakeJobRepo(), dir)

	res, err := svc.CreateFromUpload(context.Background(), CreateCurriculumRequest{
		CandidateName: "Ada Vega",
	}, "Ada Vega CV.pdf", "application/pdf", strings.NewReader("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.Equal(t, "Ada Vega CV.pdf", res.FileName)
	assert.True(t, res.HasFile)
	assert.Equal(t, model.CurriculumStatusReceived, res.Status)

	stored := repo.curriculums[res.ID]
	require.NotNil(t, stored)
	assert.True(t, strings.HasPrefix(stored.FilePath, filepath.Join(dir, "curriculums")))
	assert.True(t, strings.HasSuffix(stored.FilePath, ".pdf"))
	assert.NotContains(t, stored.FilePath, "Ada", "stored name is randomized")

	content, err := os.ReadFile(stored.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(content))
}

func TestCreateFromUploadRejectsBadExtension(t *testing.T) {
	dir := t.TempDir()
	svc := NewCurriculumService(newFakeCurriculumRepo(), newFakeJobRepo(), dir)

	_, err := svc.CreateFromUpload(context.Background(), CreateCurriculumRequest{
		CandidateName: "Mallory",
	}, "payload.exe", "application/octet-stream", strings.NewReader("MZ"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "nothing written for rejected uploads")
}

func TestCreateCurriculumChecksJob(t *testing.T) {
	svc := NewCurriculumService(newFakeCurriculumRepo(), newFakeJobRepo(), t.TempDir())

	missing := uuid.NewString()
	_, err := svc.CreateCurriculum(context.Background(), CreateCurriculumRequest{
		CandidateName: "Ada",
		JobID:         &missing,
	})
	assert.ErrorContains(t, err, "job not found")
}

func TestDeleteCurriculumRemovesFile(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeCurriculumRepo()
	svc := NewCurriculumService(repo, newFakeJobRepo(), dir)

	res, err := svc.CreateFromUpload(context.Background(), CreateCurriculumRequest{
		CandidateName: "Ada",
	}, "cv.txt", "text/plain", strings.NewReader("plain text cv"))
	require.NoError(t, err)

	path := repo.curriculums[res.ID].FilePath
	require.FileExists(t, path)

	require.NoError(t, svc.DeleteCurriculum(context.Background(), res.ID.String()))
	assert.NoFileExists(t, path)
	assert.Empty(t, repo.curriculums)
}

func TestDeleteCurriculumToleratesMissingFile(t *testing.T) {
	dir := t.TempDir()
	repo := newFakeCurriculumRepo()
	svc := NewCurriculumService(repo, newFakeJobRepo(), dir)

	res, err := svc.CreateFromUpload(context.Background(), CreateCurriculumRequest{
		CandidateName: "Ada",
	}, "cv.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(repo.curriculums[res.ID].FilePath))
	assert.NoError(t, svc.DeleteCurriculum(context.Background(), res.ID.String()))
}

func TestGetCurriculumsByStatusValidatesStatus(t *testing.T) {
	svc := NewCurriculumService(newFakeCurriculumRepo(), newFakeJobRepo(), t.TempDir())

	_, err := svc.GetCurriculumsByStatus(context.Background(), "bogus")
	assert.ErrorContains(t, err, "status must be one of")
}
