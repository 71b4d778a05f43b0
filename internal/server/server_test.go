package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hacknox/teamlens/internal/config"
	"github.com/hacknox/teamlens/internal/database"
	"github.com/hacknox/teamlens/internal/monitoring"
	"github.com/hacknox/teamlens/internal/pipeline"
)

func newTestServer(t *testing.T) (*Server, *database.Repository, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := config.New()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.OutputDir = filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))

	// Point every source at a missing file so an on-demand run is an empty
	// but valid pass.
	missing := filepath.Join(dir, "missing")
	cfg.Sources = config.Sources{
		CommitsJSON: missing, IssuesJSON: missing, PRsJSON: missing,
		ReviewsJSON: missing, TranscriptJSON: missing,
		CommitsCSV: missing, PRsCSV: missing, ReviewsCSV: missing,
		TranscriptText: missing,
	}

	db, err := database.NewDB(cfg.DataDir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := database.NewRepository(db)

	logger := monitoring.NewLogger(slog.LevelError)
	metrics := monitoring.NewMetrics()
	runner := pipeline.NewRunner(cfg, repo, logger, metrics, nil)

	return New(cfg, repo, runner, logger, metrics), repo, cfg
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	w := doRequest(srv.Router(), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	w := doRequest(srv.Router(), http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "teamlens_pipeline_runs_total")
}

func TestMembersEndpoint(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	_, err := repo.InsertFinalBatch([]database.FinalRow{
		{Name: "alice", MergedScore: 74, FinalBehavior: "Mentor", GitScore: 70, MeetingScore: 80},
		{Name: "bob", MergedScore: 36, FinalBehavior: "Observer", GitScore: 60},
	})
	require.NoError(t, err)

	w := doRequest(srv.Router(), http.MethodGet, "/api/v1/members")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Members []database.FinalRow `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Members, 2)
	assert.Equal(t, "alice", body.Members[0].Name, "ordered by merged score descending")
}

func TestGitAndMeetingEndpoints(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	_, err := repo.InsertGitBatch([]database.GitRow{
		{Name: "alice", GitScore: 52.5, GitBehavior: "Coordinator"},
	})
	require.NoError(t, err)
	_, err = repo.InsertMeetingBatch([]database.MeetingRow{
		{Name: "alice", InvolvementScore: 80, BehaviorType: "Mentor",
			ImportantTopics: `[]`, MeetingTopics: `[]`},
	})
	require.NoError(t, err)

	router := srv.Router()

	w := doRequest(router, http.MethodGet, "/api/v1/git")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Coordinator")

	w = doRequest(router, http.MethodGet, "/api/v1/meeting")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mentor")
}

func TestRolesEndpoint(t *testing.T) {
	srv, _, cfg := newTestServer(t)

	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.OutputDir, "actor_roles.json"),
		[]byte(`{"alice": {"role": "Mentor", "avg_impact": 6.5, "events": 8}}`), 0o644))

	w := doRequest(srv.Router(), http.MethodGet, "/api/v1/roles")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mentor")
}

func TestRolesEndpointMissingArtifact(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doRequest(srv.Router(), http.MethodGet, "/api/v1/roles")
	assert.NotEqual(t, http.StatusOK, w.Code, "no artifact means an error response")
}

func TestRunEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doRequest(srv.Router(), http.MethodPost, "/api/v1/run")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body["version"])
	assert.Equal(t, 0, body["events"])
}

func TestRateLimit(t *testing.T) {
	srv, _, cfg := newTestServer(t)
	cfg.RatePerMinute = 60
	cfg.RateBurst = 2
	router := srv.Router()

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		codes = append(codes, doRequest(router, http.MethodGet, "/api/v1/members").Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2], "burst of 2 exhausted")

	limited := doRequest(router, http.MethodGet, "/api/v1/members")
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
}

func TestRateLimitSkipsHealth(t *testing.T) {
	srv, _, cfg := newTestServer(t)
	cfg.RatePerMinute = 60
	cfg.RateBurst = 1
	router := srv.Router()

	doRequest(router, http.MethodGet, "/api/v1/members")
	doRequest(router, http.MethodGet, "/api/v1/members")

	w := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code, "health is outside the rate-limited group")
}

func TestCORSHeaders(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
