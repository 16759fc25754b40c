package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peerly/internal/metrics"
	"peerly/internal/models"
	"peerly/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	created []models.Recognition
}

func (s *stubStore) CoreValueOrg(context.Context, uint) (uint, error) { return 1, nil }

func (s *stubStore) UserOrg(_ context.Context, id uint) (uint, error) {
	if id == 0 {
		return 0, services.ErrNotFound
	}
	return 1, nil
}

func (s *stubStore) CreateRecognition(_ context.Context, rec *models.Recognition) error {
	rec.ID = uint(len(s.created) + 1)
	s.created = append(s.created, *rec)
	return nil
}

func (s *stubStore) GetRecognition(_ context.Context, id, _ uint) (*models.Recognition, error) {
	for _, rec := range s.created {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *stubStore) ListRecognitions(context.Context, uint, services.RecognitionFilter) ([]models.Recognition, error) {
	return s.created, nil
}

func (s *stubStore) GrantHi5(context.Context, uint, *models.RecognitionHi5) (services.GrantResult, error) {
	return services.GrantResult{Outcome: services.GrantQuotaExhausted}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, _ := test.NewNullLogger()
	resolver := services.NewTokenResolver("router-test-secret", "peerly")
	token, err := resolver.Issue(services.Identity{UserID: 7, OrgID: 1}, time.Hour)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, Deps{
		AppName:  "peerly",
		Store:    &stubStore{},
		Resolver: resolver,
		Log:      log,
	})
	return r, token
}

func TestPing(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRecognitionRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/recognitions", nil),
		httptest.NewRequest(http.MethodGet, "/recognitions/1", nil),
		httptest.NewRequest(http.MethodPost, "/recognitions", nil),
		httptest.NewRequest(http.MethodPost, "/recognitions/1/hi5", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, req.URL.Path)
	}
}

func TestRecognitionRoutes(t *testing.T) {
	r, token := newTestRouter(t)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/vnd.peerly.v1")
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodGet, "/recognitions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "v1", w.Header().Get("X-API-Version"))

	w = send(http.MethodPost, "/recognitions", `{"core_value_id": 3, "text": "Great job", "given_for": 42}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(http.MethodGet, "/recognitions/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodGet, "/recognitions", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(http.MethodPost, "/recognitions/1/hi5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User hi5 balance is Empty")
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	r := gin.New()
	RegisterRoutes(r, Deps{
		AppName:  "peerly",
		Store:    &stubStore{},
		Resolver: services.NewTokenResolver("router-test-secret", "peerly"),
		Metrics:  metrics.New("peerly"),
		Log:      log,
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `peerly_http_requests_total{method="GET",route="/ping",status="200"} 1`)
}
