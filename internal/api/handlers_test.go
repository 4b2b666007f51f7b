package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"dashboard-go/internal/api"
	"dashboard-go/internal/service"
	"dashboard-go/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newServer(t *testing.T) (http.Handler, *state.AppState) {
	t.Helper()
	st := state.New()
	t.Cleanup(func() { st.Close() })

	h := api.NewHandler(service.NewChartService(st, 100), st, zerolog.Nop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, st
}

func do(t *testing.T, srv http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"status": "ok", "connected": false}, decode(t, rec))
}

func TestRenderers(t *testing.T) {
	srv, _ := newServer(t)

	rec := do(t, srv, http.MethodGet, "/api/renderers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, decode(t, rec)["renderers"], "line-graph")

	rec = do(t, srv, http.MethodGet, "/api/renderers/line-graph/params", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.NotEmpty(t, body["params"])

	rec = do(t, srv, http.MethodGet, "/api/renderers/sparkline/params", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConformEndpoint(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodPost, "/api/params/conform", map[string]any{
		"params": []map[string]any{
			{"name": "count", "type": "natural", "default": 1},
		},
		"model": map[string]any{"count": "abc"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, map[string]any{"count": 1.0}, body["model"])
	require.Equal(t, true, body["modified"])
	require.Equal(t, false, body["valid"])
	require.Equal(t, []any{"count"}, body["invalid"])

	rec = do(t, srv, http.MethodPost, "/api/params/conform", map[string]any{
		"params": []map[string]any{{"name": "x", "type": "sometimes"}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/params/conform", bytes.NewBufferString("{")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMultiEndpoint(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodPost, "/api/params/multi", map[string]any{
		"params": []map[string]any{{"name": "gpus", "type": "some", "optional": true}},
		"model":  map[string]any{"gpus": []string{"gm200"}},
		"name":   "gpus",
		"add":    []string{"gm204"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{"gm200", "gm204"}, decode(t, rec)["value"])
}

func TestLineChartEndpoint(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodPost, "/api/charts/line", map[string]any{
		"rows": []map[string]any{
			{"x": 1, "y": 1, "label": "A"},
			{"x": 2, "y": 4, "label": "A"},
			{"x": 1, "y": 2, "label": "B"},
		},
		"params": map[string]any{"post": "geomean"},
		"hidden": []string{"A"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, []any{1.0, 2.0}, body["axis"])

	datasets := body["datasets"].([]any)
	a := datasets[0].(map[string]any)
	b := datasets[1].(map[string]any)
	require.Equal(t, true, a["hidden"])
	require.Nil(t, b["points"].([]any)[1])
	require.Equal(t, "-50%", a["points"].([]any)[0].(map[string]any)["display"])
	require.Regexp(t, `^#[0-9a-f]{6}$`, b["color"])

	rec = do(t, srv, http.MethodPost, "/api/charts/line", map[string]any{
		"rows": []map[string]any{{"x": 1, "label": "A"}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBarAndPieEndpoints(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodPost, "/api/charts/bar", map[string]any{
		"rows": []map[string]any{{"x": "vulkan", "y": 3, "label": "gm204"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{"vulkan"}, decode(t, rec)["chart"].(map[string]any)["categories"])

	rec = do(t, srv, http.MethodPost, "/api/charts/pie", map[string]any{
		"rows": []map[string]any{{"name": "pass", "value": 90}, {"name": "fail", "value": 10}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{90.0, 10.0}, decode(t, rec)["chart"].(map[string]any)["values"])
}

func TestColorEndpoint(t *testing.T) {
	srv, _ := newServer(t)
	rec := do(t, srv, http.MethodGet, "/api/colors/gm200", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"label": "gm200", "color": "#08750b"}, decode(t, rec))
}

func TestDatabaseFlow(t *testing.T) {
	srv, st := newServer(t)

	rec := do(t, srv, http.MethodGet, "/api/db/tables", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	path := filepath.Join(t.TempDir(), "results.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE perf (x INTEGER, y REAL, label TEXT);
		INSERT INTO perf VALUES (1, 1, 'A'), (2, 4, 'A'), (1, 2, 'B');
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rec = do(t, srv, http.MethodPost, "/api/db/connect", map[string]any{"driver": "oracle"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/db/connect", map[string]any{"driver": "sqlite", "path": path})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"status": "connected", "driver": "sqlite", "tables": 1.0}, decode(t, rec))
	require.NotNil(t, st.GetSource())

	rec = do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, map[string]any{
		"status":     "ok",
		"connected":  true,
		"connection": map[string]any{"driver": "sqlite", "target": path},
	}, decode(t, rec))

	rec = do(t, srv, http.MethodGet, "/api/db/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{"perf"}, decode(t, rec)["tables"])

	rec = do(t, srv, http.MethodGet, "/api/db/tables/perf/line?geomean=true&label=A", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Len(t, body["datasets"], 1)
	redirect, err := url.ParseQuery(body["redirect"].(string))
	require.NoError(t, err)
	require.Equal(t, "geomean", redirect.Get("post"))
	require.False(t, redirect.Has("geomean"))
	require.Equal(t, "A", redirect.Get("label"))

	rec = do(t, srv, http.MethodGet, "/api/db/tables/perf/line?post=none&toggle=B", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Equal(t, true, body["datasets"].([]any)[1].(map[string]any)["hidden"])
	redirect, err = url.ParseQuery(body["redirect"].(string))
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, redirect["hide"])
	require.False(t, redirect.Has("toggle"))

	rec = do(t, srv, http.MethodGet, "/api/db/tables/perf/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)
	require.Equal(t, true, profile["chartable"])
	require.Equal(t, 3.0, profile["total_rows"])
	require.Len(t, profile["labels"], 2)

	rec = do(t, srv, http.MethodGet, "/api/db/tables/nope/line", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
