package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashforge/internal/llm"
	"dashforge/internal/task"
	"dashforge/internal/workflow"
)

type fixedGenerator struct {
	dashboard map[string]any
}

func (g fixedGenerator) Generate(_ context.Context, _ string, _ bool) (map[string]any, error) {
	return g.dashboard, nil
}

type noopRepairer struct{}

func (noopRepairer) Repair(_ context.Context, dashboard map[string]any, _ []string) (map[string]any, error) {
	return dashboard, nil
}

func newTestServer(t *testing.T) (*Server, *task.Store) {
	t.Helper()

	store := task.NewStore()
	gen := fixedGenerator{dashboard: map[string]any{"title": "CPU", "panels": []any{}}}
	controllers := map[string]*workflow.Controller{
		"gemini": workflow.NewController(gen, noopRepairer{}, 3),
	}
	svc := workflow.NewService(store, controllers, "gemini", nil)
	models := []llm.ModelInfo{
		{ID: "gemini", Name: "gemini-2.0-flash", Default: true},
		{ID: "openai", Name: "gpt-4o"},
	}
	return NewServer(svc, store, models), store
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestGenerateAcceptsRequest(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	routes := srv.Routes()

	rec, body := doJSON(t, routes, http.MethodPost, "/api/dashboards/generate", `{"text":"show cpu usage"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "pending", body["status"])

	id, ok := body["task_id"].(string)
	require.True(t, ok)

	require.Eventually(t, func() bool {
		got, err := store.Get(id)
		return err == nil && got.Status == task.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestGenerateRejectsEmptyText(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/api/dashboards/generate", `{"text":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text is required", body["error"])
}

func TestGenerateRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/api/dashboards/generate",
		`{"text":"show cpu usage","provider":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown provider", body["error"])
}

func TestGenerateRejectsNegativeBudget(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, _ := doJSON(t, srv.Routes(), http.MethodPost, "/api/dashboards/generate",
		`{"text":"show cpu usage","max_repairs":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, _ := doJSON(t, srv.Routes(), http.MethodPost, "/api/dashboards/generate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskStatusByID(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	created := store.Create()

	rec, body := doJSON(t, srv.Routes(), http.MethodGet, "/api/tasks/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, body["task_id"])
	assert.Equal(t, "pending", body["status"])
}

func TestTaskUnknownID(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, body := doJSON(t, srv.Routes(), http.MethodGet, "/api/tasks/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task not found", body["error"])
}

func TestFeedbackCompletesAwaitingTask(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	created := store.Create()
	status := task.StatusAwaitingHuman
	_, err := store.Update(created.ID, task.Update{Status: &status})
	require.NoError(t, err)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/api/tasks/"+created.ID+"/feedback",
		`{"dashboard":{"title":"Fixed","panels":[]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", body["status"])
}

func TestFeedbackConflictsOutsideEscalation(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	created := store.Create()

	rec, _ := doJSON(t, srv.Routes(), http.MethodPost, "/api/tasks/"+created.ID+"/feedback",
		`{"dashboard":{"title":"Fixed","panels":[]}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFeedbackUnknownTask(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, _ := doJSON(t, srv.Routes(), http.MethodPost, "/api/tasks/nope/feedback",
		`{"dashboard":{"title":"Fixed","panels":[]}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackRequiresDashboard(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t)
	created := store.Create()
	status := task.StatusAwaitingHuman
	_, err := store.Update(created.ID, task.Update{Status: &status})
	require.NoError(t, err)

	rec, body := doJSON(t, srv.Routes(), http.MethodPost, "/api/tasks/"+created.ID+"/feedback", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "dashboard is required", body["error"])
}

func TestModelsListing(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, body := doJSON(t, srv.Routes(), http.MethodGet, "/api/models", "")
	require.Equal(t, http.StatusOK, rec.Code)

	models, ok := body["models"].([]any)
	require.True(t, ok)
	require.Len(t, models, 2)
	first, ok := models[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gemini", first["id"])
	assert.Equal(t, true, first["default"])
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	rec, body := doJSON(t, srv.Routes(), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
