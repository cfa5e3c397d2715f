package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/models"
	"github.com/conectaext/conecta-backend/services"
	"github.com/conectaext/conecta-backend/storage"
)

type uploadFixture struct {
	db      database.Database
	router  *chi.Mux
	creator *models.User
	admin   *models.User
	project *models.Project
}

// newUploadFixture wires the project handler against an in-memory database
// and an unreachable object store. Requests that fail validation never touch
// the store, which is exactly the surface these tests exercise.
func newUploadFixture(t *testing.T) uploadFixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gormDB.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Project{},
		&models.Keyword{},
		&models.ImpactIndicator{},
	))
	db := database.New(gormDB)

	creator := &models.User{Name: "Ana Lima", Email: "ana@example.edu", Role: models.RoleTeacher}
	require.NoError(t, db.UserRepo().Add(creator))
	admin := &models.User{Name: "Rui Prado", Email: "rui@example.edu", Role: models.RoleAdmin}
	require.NoError(t, db.UserRepo().Add(admin))
	course := &models.Course{Name: "Nursing"}
	require.NoError(t, db.CourseRepo().Add(course))

	proposalURL := "http://localhost:9000/conecta-proposals/existing.pdf"
	imgURL := "http://localhost:9000/conecta-projects/existing.jpg"
	project := &models.Project{
		Name:                "Community Garden",
		Description:         "Urban gardening outreach",
		ExpectedResults:     "Two functioning gardens",
		StartDate:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration:            6,
		NumberVacancies:     10,
		Audience:            models.AudienceCommunity,
		Status:              models.StatusApproved,
		ProposalDocumentURL: &proposalURL,
		ImgURL:              &imgURL,
		CourseID:            course.ID,
		CreatorID:           creator.ID,
	}
	require.NoError(t, db.ProjectRepo().Add(project))

	files, err := storage.New(storage.Config{
		Endpoint:  "localhost",
		Port:      9000,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	handler := newProjectHandler(services.NewProjectService(db.ProjectRepo(), db.CourseRepo()), files)
	router := chi.NewRouter()
	router.Post("/projects/{projectID}/proposal", handler.uploadProposal())
	router.Post("/projects/{projectID}/image", handler.uploadImage())

	return uploadFixture{db: db, router: router, creator: creator, admin: admin, project: project}
}

func multipartBody(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("file contents"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func (f uploadFixture) upload(t *testing.T, path string, caller *models.User, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, filename)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(ctxWithCaller(req.Context(), &auth.Claims{
		UserID: caller.ID,
		Email:  caller.Email,
		Role:   caller.Role,
	}))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f uploadFixture) reload(t *testing.T) *models.Project {
	t.Helper()

	project, err := f.db.ProjectRepo().FindByID(f.project.ID)
	require.NoError(t, err)
	require.NotNil(t, project)
	return project
}

func TestUploadProposalRejectsNonPDF(t *testing.T) {
	f := newUploadFixture(t)

	rec := f.upload(t, "/projects/"+f.project.ID.String()+"/proposal", f.creator, "notes.txt")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "only PDF files are accepted", body.Message)

	stored := f.reload(t)
	require.NotNil(t, stored.ProposalDocumentURL)
	assert.Equal(t, *f.project.ProposalDocumentURL, *stored.ProposalDocumentURL,
		"a rejected upload must leave the existing proposal URL untouched")
}

func TestUploadProposalForbidsAdmin(t *testing.T) {
	f := newUploadFixture(t)

	rec := f.upload(t, "/projects/"+f.project.ID.String()+"/proposal", f.admin, "proposal.pdf")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	stored := f.reload(t)
	require.NotNil(t, stored.ProposalDocumentURL)
	assert.Equal(t, *f.project.ProposalDocumentURL, *stored.ProposalDocumentURL)
}

func TestUploadProposalMissingFile(t *testing.T) {
	f := newUploadFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/projects/"+f.project.ID.String()+"/proposal", nil)
	req = req.WithContext(ctxWithCaller(req.Context(), &auth.Claims{
		UserID: f.creator.ID,
		Email:  f.creator.Email,
		Role:   f.creator.Role,
	}))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no file sent", body.Message)
}

func TestUploadProposalUnknownProject(t *testing.T) {
	f := newUploadFixture(t)

	rec := f.upload(t, "/projects/"+uuid.NewString()+"/proposal", f.creator, "proposal.pdf")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadImageRejectsUnsupportedType(t *testing.T) {
	f := newUploadFixture(t)

	for _, filename := range []string{"photo.bmp", "photo.pdf", "photo"} {
		rec := f.upload(t, "/projects/"+f.project.ID.String()+"/image", f.creator, filename)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "expected %q to be rejected", filename)
	}

	stored := f.reload(t)
	require.NotNil(t, stored.ImgURL)
	assert.Equal(t, *f.project.ImgURL, *stored.ImgURL,
		"rejected uploads must leave the existing image URL untouched")
}

func TestImageExtensionAllowList(t *testing.T) {
	for _, filename := range []string{"photo.jpg", "photo.JPEG", "banner.png", "anim.GIF"} {
		assert.True(t, imageExtensions[fileExtension(filename)], "expected %q to be accepted", filename)
	}
	for _, filename := range []string{"doc.pdf", "photo.bmp", "archive.zip", "photo"} {
		assert.False(t, imageExtensions[fileExtension(filename)], "expected %q to be rejected", filename)
	}
}
