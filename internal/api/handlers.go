package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dashboard-go/internal/models"
	"dashboard-go/internal/palette"
	"dashboard-go/internal/params"
	"dashboard-go/internal/series"
	"dashboard-go/internal/service"
	"dashboard-go/internal/source"
	"dashboard-go/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MaxBodySize caps JSON request bodies.
const MaxBodySize = 10 << 20

type Handler struct {
	Charts *service.ChartService
	State  *state.AppState
	Logger zerolog.Logger
}

func NewHandler(charts *service.ChartService, st *state.AppState, logger zerolog.Logger) *Handler {
	return &Handler{
		Charts: charts,
		State:  st,
		Logger: logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	// Parameters
	r.Get("/api/renderers", h.ListRenderers)
	r.Get("/api/renderers/{renderer}/params", h.GetRendererParams)
	r.Post("/api/params/conform", h.ConformParams)
	r.Post("/api/params/multi", h.EditMulti)

	// Charts
	r.Post("/api/charts/line", h.LineChart)
	r.Post("/api/charts/bar", h.BarChart)
	r.Post("/api/charts/pie", h.PieChart)
	r.Get("/api/colors/{label}", h.GetColor)

	// DB Routes
	r.Post("/api/db/connect", h.ConnectDB)
	r.Get("/api/db/tables", h.ListTables)
	r.Get("/api/db/tables/{table}/line", h.TableLineChart)
	r.Get("/api/db/tables/{table}/profile", h.ProfileTable)
}

// ============================================================================
// Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var schemaErr *params.SchemaError
	switch {
	case errors.Is(err, params.ErrUnknownRenderer), errors.Is(err, source.ErrUnknownTable):
		return http.StatusNotFound
	case errors.As(err, &schemaErr),
		errors.Is(err, params.ErrNotMulti),
		errors.Is(err, series.ErrMalformedObservation),
		errors.Is(err, source.ErrUnknownDriver):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoSource):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		h.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	http.Error(w, err.Error(), status)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	conn := h.State.GetConnection()
	writeJSON(w, models.HealthResponse{Status: "ok", Connected: conn != nil, Connection: conn})
}

// ============================================================================
// Parameters
// ============================================================================

// ListRenderers returns the renderer names with preset schemas
func (h *Handler) ListRenderers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.RenderersResponse{Renderers: params.Renderers()})
}

// GetRendererParams returns the preset schema of one renderer
func (h *Handler) GetRendererParams(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "renderer")
	schema, err := params.RendererSchema(name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, models.SchemaResponse{Renderer: name, Params: schema})
}

// ConformParams repairs a model against a schema
func (h *Handler) ConformParams(w http.ResponseWriter, r *http.Request) {
	var req models.ConformRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Charts.Conform(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, resp)
}

// EditMulti adds to or removes from a multi parameter
func (h *Handler) EditMulti(w http.ResponseWriter, r *http.Request) {
	var req models.MultiEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Charts.EditMulti(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, resp)
}

// ============================================================================
// Charts
// ============================================================================

func (h *Handler) LineChart(w http.ResponseWriter, r *http.Request) {
	var req models.LineChartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Charts.Line(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) BarChart(w http.ResponseWriter, r *http.Request) {
	var req models.BarChartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Charts.Bar(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) PieChart(w http.ResponseWriter, r *http.Request) {
	var req models.PieChartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Charts.Pie(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, resp)
}

// GetColor returns the stable color of a dataset label
func (h *Handler) GetColor(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")
	writeJSON(w, models.ColorResponse{Label: label, Color: palette.ColorForLabel(label)})
}

// ============================================================================
// Database
// ============================================================================

// ConnectDB opens a row source and makes it the active one
func (h *Handler) ConnectDB(w http.ResponseWriter, r *http.Request) {
	var config models.ConnectRequest
	if !decodeJSON(w, r, &config) {
		return
	}

	ds, err := source.Open(r.Context(), config)
	if err != nil {
		h.fail(w, r, fmt.Errorf("failed to connect: %w", err))
		return
	}
	tables, err := ds.ListTables(r.Context())
	if err != nil {
		ds.Close()
		h.fail(w, r, err)
		return
	}

	if err := h.State.SetSource(ds, config); err != nil {
		h.Logger.Warn().Err(err).Msg("closing previous source")
	}
	h.Logger.Info().Str("driver", ds.Driver()).Int("tables", len(tables)).Msg("row source connected")

	writeJSON(w, models.ConnectResponse{Status: "connected", Driver: ds.Driver(), Tables: len(tables)})
}

// ListTables returns tables from the connected source
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	ds := h.State.GetSource()
	if ds == nil {
		h.fail(w, r, service.ErrNoSource)
		return
	}

	tables, err := ds.ListTables(r.Context())
	if err != nil {
		h.fail(w, r, fmt.Errorf("listing tables: %w", err))
		return
	}
	if tables == nil {
		tables = []string{}
	}
	writeJSON(w, models.TablesResponse{Tables: tables})
}

// TableLineChart charts a table of the connected source, parameters taken
// from the query string
func (h *Handler) TableLineChart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Charts.TableLine(r.Context(), chi.URLParam(r, "table"), r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, resp)
}

// ProfileTable reports column coverage and series labels of a table
func (h *Handler) ProfileTable(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Charts.ProfileTable(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, profile)
}
