package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"talentlens-backend/config"
	v1 "talentlens-backend/internal/delivery/http/v1"
	"talentlens-backend/internal/domain"
	"talentlens-backend/pkg/apperror"
	"talentlens-backend/pkg/extractor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCandidateUC struct {
	mock.Mock
}

func (m *MockCandidateUC) Submit(ctx context.Context, in domain.SubmitInput) (domain.CandidateProfile, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateUC) List(q domain.ListQuery) domain.CandidatePage {
	return m.Called(q).Get(0).(domain.CandidatePage)
}

func (m *MockCandidateUC) Get(ctx context.Context, id string) (domain.CandidateProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateUC) Sync(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(uc domain.CandidateUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return v1.NewRouter(v1.RouterDeps{
		CandidateUC: uc,
		Config:      &config.Config{FrontendURL: "http://localhost:3000"},
	})
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestSubmitEndpoint(t *testing.T) {
	t.Run("Should return the extracted profile", func(t *testing.T) {
		uc := new(MockCandidateUC)
		uc.On("Submit", mock.Anything, mock.MatchedBy(func(in domain.SubmitInput) bool {
			return in.LinkedinURL == "https://www.linkedin.com/in/jdoe" && in.CV == nil
		})).Return(domain.Normalize(domain.RawCandidate{ID: "cand-1", FullName: "Jane Doe"}), nil)

		body, contentType := multipartBody(t, map[string]string{"linkedinUrl": "https://www.linkedin.com/in/jdoe"})
		req := httptest.NewRequest(http.MethodPost, "/v1/candidates/search", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		newTestRouter(uc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.True(t, env.Success)

		var profile domain.CandidateProfile
		require.NoError(t, json.Unmarshal(env.Data, &profile))
		assert.Equal(t, "cand-1", profile.ID)
		uc.AssertExpectations(t)
	})

	t.Run("Should render validation failures as 400", func(t *testing.T) {
		uc := new(MockCandidateUC)
		uc.On("Submit", mock.Anything, mock.Anything).
			Return(domain.CandidateProfile{}, apperror.BadRequest("Please provide either a LinkedIn URL or upload a CV."))

		body, contentType := multipartBody(t, map[string]string{})
		req := httptest.NewRequest(http.MethodPost, "/v1/candidates/search", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		newTestRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "LinkedIn URL or upload a CV")
	})

	t.Run("Should pass the backend's status and message through", func(t *testing.T) {
		uc := new(MockCandidateUC)
		uc.On("Submit", mock.Anything, mock.Anything).
			Return(domain.CandidateProfile{}, &extractor.APIError{Status: http.StatusInternalServerError, Message: "extraction failed"})

		body, contentType := multipartBody(t, map[string]string{"linkedinUrl": "https://www.linkedin.com/in/jdoe"})
		req := httptest.NewRequest(http.MethodPost, "/v1/candidates/search", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		newTestRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "extraction failed")
	})
}

func TestListEndpoint(t *testing.T) {
	uc := new(MockCandidateUC)
	uc.On("List", domain.ListQuery{Query: "jane", Status: "new", Page: 2, PageSize: 5}).
		Return(domain.CandidatePage{Items: []domain.CandidateProfile{}, Total: 0, Page: 2, PageSize: 5})

	req := httptest.NewRequest(http.MethodGet, "/v1/candidates?q=jane&status=new&page=2&pageSize=5", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestGetEndpoint(t *testing.T) {
	t.Run("Should return the profile", func(t *testing.T) {
		uc := new(MockCandidateUC)
		uc.On("Get", mock.Anything, "cand-1").
			Return(domain.Normalize(domain.RawCandidate{ID: "cand-1", FullName: "Jane"}), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/candidates/cand-1", nil)
		rec := httptest.NewRecorder()

		newTestRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Jane")
	})

	t.Run("Should render not-found as 404", func(t *testing.T) {
		uc := new(MockCandidateUC)
		uc.On("Get", mock.Anything, "missing").
			Return(domain.CandidateProfile{}, apperror.NotFound("Candidate not found"))

		req := httptest.NewRequest(http.MethodGet, "/v1/candidates/missing", nil)
		rec := httptest.NewRecorder()

		newTestRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSyncEndpoint(t *testing.T) {
	uc := new(MockCandidateUC)
	uc.On("Sync", mock.Anything).Return(7, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/candidates/sync", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":7`)
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec := httptest.NewRecorder()

	newTestRouter(new(MockCandidateUC)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "System operational")
}
