package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/brand-insights/internal/schemas"
	"github.com/jonathan/brand-insights/internal/server/ratelimit"
	"github.com/jonathan/brand-insights/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/dataset"

func testRoster() types.Roster {
	return types.NewRoster(
		types.Brand{Name: "iloom", Category: "desk"},
		[]types.Brand{{Name: "hanssem"}, {Name: "ikea"}, {Name: "livart"}, {Name: "desker"}},
	)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func copyFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, doc := range schemas.Documents {
		content, err := os.ReadFile(filepath.Join(fixtureDir, doc.FileName()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, doc.FileName()), content, 0o644))
	}
	return dir
}

func newTestServer(t *testing.T, dir string, rl *ratelimit.Config) *Server {
	t.Helper()
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	s, err := New(Config{
		Port:      0,
		DataDir:   dir,
		Roster:    testRoster(),
		RateLimit: rl,
	}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, fixtureDir, nil)

	w := get(t, s, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestDatasetEndpoint(t *testing.T) {
	s := newTestServer(t, fixtureDir, nil)

	w := get(t, s, "/api/v1/dataset")
	require.Equal(t, http.StatusOK, w.Code)

	info := decode[DatasetInfo](t, w)
	assert.Equal(t, s.Engine().Version(), info.Version)
	assert.Equal(t, info.Version, w.Header().Get("X-Dataset-Version"))
	assert.Equal(t, "iloom", info.Roster.Focal.Name)
	assert.Len(t, info.Documents, 7)
	assert.Empty(t, info.ReloadError)
}

func TestInsightEndpoints(t *testing.T) {
	s := newTestServer(t, fixtureDir, nil)

	tests := []struct {
		path  string
		check func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{"/api/v1/metrics", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Len(t, decode[types.MetricsTable](t, w).Rows, 5)
		}},
		{"/api/v1/overview", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Equal(t, "iloom", decode[types.OverviewInsights](t, w).Brand)
		}},
		{"/api/v1/paths", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Equal(t, "ikea", decode[types.PathExamples](t, w).PrimaryLeakDestination)
		}},
		{"/api/v1/action-plan", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Len(t, decode[types.ActionPlan](t, w).Items, 3)
		}},
		{"/api/v1/seasonality", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Equal(t, "iloom", decode[types.SeasonalityInsights](t, w).Brand)
		}},
		{"/api/v1/strategy", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Len(t, decode[types.StrategySummary](t, w).Items, 4)
		}},
		{"/api/v1/report", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Len(t, decode[types.Report](t, w).Profiles, 5)
		}},
		{"/api/v1/brands/hanssem/profile", func(t *testing.T, w *httptest.ResponseRecorder) {
			p := decode[types.BrandProfile](t, w)
			assert.Equal(t, "hanssem", p.Brand)
			require.NotNil(t, p.PositioningTier)
			assert.Equal(t, types.TierLeader, *p.PositioningTier)
		}},
		{"/api/v1/brands/ikea/seasonality", func(t *testing.T, w *httptest.ResponseRecorder) {
			assert.Equal(t, "ikea", decode[types.SeasonalityInsights](t, w).Brand)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, s, tt.path)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			tt.check(t, w)
		})
	}
}

func TestUnknownBrandIs404(t *testing.T) {
	s := newTestServer(t, fixtureDir, nil)

	for _, path := range []string{"/api/v1/brands/muji/profile", "/api/v1/brands/muji/seasonality"} {
		w := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "unknown brand: muji", decode[map[string]string](t, w)["error"])
	}
}

func TestCORSPreflight(t *testing.T) {
	s, err := New(Config{
		DataDir:     fixtureDir,
		Roster:      testRoster(),
		CORSOrigins: []string{"https://dashboard.example.com"},
		RateLimit:   &ratelimit.Config{Enabled: false},
	}, quietLogger())
	require.NoError(t, err)
	defer s.Close()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/overview", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitedEndpoint(t *testing.T) {
	s := newTestServer(t, fixtureDir, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})

	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/overview").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/overview").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, s, "/api/v1/overview").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code)
}

func TestNew_FailsOnBrokenDataset(t *testing.T) {
	dir := copyFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai-sov.json"), []byte(`{"brands": {}}`), 0o644))

	_, err := New(Config{DataDir: dir, Roster: testRoster(), RateLimit: &ratelimit.Config{Enabled: false}}, quietLogger())

	require.Error(t, err)
	assert.True(t, types.IsSchemaViolation(err))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestReload_KeepsPreviousEngineOnSchemaViolation(t *testing.T) {
	dir := copyFixture(t)
	s := newTestServer(t, dir, nil)
	before := s.Engine()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "trend.json"), []byte(`{"monthly": "nope"}`), 0o644))
	err := s.Reload()

	require.Error(t, err)
	var sv *types.SchemaViolation
	assert.True(t, errors.As(err, &sv))
	assert.Same(t, before, s.Engine())
	assert.Equal(t, http.StatusOK, get(t, s, "/api/v1/overview").Code)

	info := decode[DatasetInfo](t, get(t, s, "/api/v1/dataset"))
	assert.Equal(t, before.Version(), info.Version)
	assert.NotEmpty(t, info.ReloadError)
}

func TestReload_SwapsEngineOnChange(t *testing.T) {
	dir := copyFixture(t)
	s := newTestServer(t, dir, nil)
	before := s.Engine()

	require.NoError(t, s.Reload())
	assert.Equal(t, before.Version(), s.Engine().Version(), "same bytes give the same version")

	content, err := os.ReadFile(filepath.Join(dir, "strategy-matrix.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strategy-matrix.json"), append(content, '\n'), 0o644))

	require.NoError(t, s.Reload())
	assert.NotEqual(t, before.Version(), s.Engine().Version())
	assert.NotSame(t, before, s.Engine())
	assert.Nil(t, s.LastError())
}
