package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sales-insights-go/internal/advisor"
	"sales-insights-go/internal/dataset"
	"sales-insights-go/internal/enrich"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/store"
	"sales-insights-go/internal/trend"
	"sales-insights-go/internal/types"
)

const maxUploadBytes = 64 << 20

// InsightsProvider is what the router needs from the AI advisor.
type InsightsProvider interface {
	Insights(ctx context.Context, opps []types.OpportunityRecord) (string, error)
}

type server struct {
	st  *store.Store
	adv InsightsProvider
}

func NewRouter(st *store.Store, adv InsightsProvider) http.Handler {
	s := &server{st: st, adv: adv}

	mux := chi.NewRouter()
	mux.Use(requestLog)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/upload", s.handleUpload)
	mux.Get("/options", s.handleOptions)
	mux.Get("/dashboard", s.handleDashboard)
	mux.Get("/overview", s.handleOverview)
	mux.Get("/ai/insights", s.handleAIInsights)

	return mux
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.New().WithRequest(r).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request handled")
	})
}

// handleUpload ingests a workbook and replaces the snapshot. An ingestion
// failure resets all derived state; nothing partial survives.
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := logger.New().WithRequest(r).WithField("handler", "upload")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.WithError(err).Warn("missing or unreadable multipart file")
		writeError(w, http.StatusBadRequest, "missing multipart field \"file\"")
		return
	}
	defer file.Close()

	tables, err := dataset.LoadReader(file)
	if err != nil {
		s.st.Reset()
		uploadsTotal.WithLabelValues("error").Inc()
		log.WithError(err).Warn("ingestion failed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.st.Replace(header.Filename, tables)
	uploadsTotal.WithLabelValues("ok").Inc()
	datasetRows.WithLabelValues("opportunities").Set(float64(len(tables.Opportunities)))
	datasetRows.WithLabelValues("activities").Set(float64(len(tables.Activities)))
	datasetRows.WithLabelValues("details").Set(float64(len(tables.Details)))
	log.WithField("file_name", header.Filename).Info("workbook ingested")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fileName":      header.Filename,
		"opportunities": len(tables.Opportunities),
		"activities":    len(tables.Activities),
		"details":       len(tables.Details),
	})
}

type optionsResponse struct {
	Mode           insights.Mode `json:"mode"`
	Options        []string      `json:"options"`
	ManagerOptions []string      `json:"managerOptions,omitempty"`
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(r.URL.Query().Get("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be \"manager\" or \"employee\"")
		return
	}
	tables, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.buildOptions(tables, mode, r.URL.Query().Get("manager")))
}

func (s *server) buildOptions(tables types.Tables, mode insights.Mode, managerFilter string) optionsResponse {
	resp := optionsResponse{Mode: mode}
	if mode == insights.ModeManager {
		resp.Options = insights.ManagerOptions(tables.Activities)
		return resp
	}
	enriched := enrich.Enrich(tables.Activities, enrich.BuildLookup(tables.Opportunities))
	resp.Options = insights.EmployeeOptions(enriched, tables.Details, managerFilter)
	resp.ManagerOptions = insights.ManagerFilterOptions(tables.Activities)
	return resp
}

type dashboardResponse struct {
	Mode           insights.Mode                  `json:"mode"`
	Name           string                         `json:"name"`
	Options        []string                       `json:"options"`
	ManagerOptions []string                       `json:"managerOptions,omitempty"`
	Metrics        types.MetricSet                `json:"metrics"`
	ActivityLog    []types.EnrichedActivityRecord `json:"activityLog"`
	HoursEvolution []trend.MonthlyHours           `json:"hoursEvolution"`
	TopOppsByHours []insights.OppHours            `json:"topOppsByHours"`
}

// handleDashboard computes the full selection view: enrichment first, then
// filtering and metrics, then the trend over the filtered detail subset.
// With no explicit name the first available option is selected, matching
// how the selector behaves.
func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode, ok := parseMode(q.Get("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be \"manager\" or \"employee\"")
		return
	}
	tables, ok := s.snapshot(w)
	if !ok {
		return
	}

	opts := s.buildOptions(tables, mode, q.Get("manager"))
	name := q.Get("name")
	if name == "" && len(opts.Options) > 0 {
		name = opts.Options[0]
	}

	resp := dashboardResponse{
		Mode:           mode,
		Name:           name,
		Options:        opts.Options,
		ManagerOptions: opts.ManagerOptions,
		ActivityLog:    []types.EnrichedActivityRecord{},
		HoursEvolution: []trend.MonthlyHours{},
		TopOppsByHours: []insights.OppHours{},
	}
	if name == "" {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	enriched := enrich.Enrich(tables.Activities, enrich.BuildLookup(tables.Opportunities))
	filtered := insights.Filter(enriched, mode, name)
	details := insights.DetailsForSelection(tables.Details, enriched, mode, name)

	resp.Metrics = insights.ComputeMetrics(filtered)
	if log := insights.DedupLog(filtered); log != nil {
		resp.ActivityLog = log
	}
	if series := trend.MonthlySeries(details); series != nil {
		resp.HoursEvolution = series
	}
	if top := insights.TopOppsByHours(details, tables.Activities, tables.Opportunities); top != nil {
		resp.TopOppsByHours = top
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleOverview(w http.ResponseWriter, r *http.Request) {
	tables, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"opportunityCount": len(tables.Opportunities),
		"owners":           insights.OwnerOppCounts(tables.Opportunities, 15),
		"regions":          insights.RegionTotals(tables.Opportunities),
		"statuses":         insights.StatusCounts(tables.Opportunities),
	})
}

func (s *server) handleAIInsights(w http.ResponseWriter, r *http.Request) {
	tables, ok := s.snapshot(w)
	if !ok {
		return
	}
	text, err := s.adv.Insights(r.Context(), tables.Opportunities)
	if err != nil {
		aiRequestsTotal.WithLabelValues("error").Inc()
		status := http.StatusBadGateway
		if !errors.Is(err, advisor.ErrUnavailable) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err.Error())
		return
	}
	aiRequestsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"insights": text})
}

// snapshot fetches the current tables, answering 409 when nothing has been
// uploaded yet.
func (s *server) snapshot(w http.ResponseWriter) (types.Tables, bool) {
	_, tables, loaded := s.st.Snapshot()
	if !loaded {
		writeError(w, http.StatusConflict, "no workbook loaded: POST a spreadsheet to /upload first")
		return types.Tables{}, false
	}
	return tables, true
}

func parseMode(raw string) (insights.Mode, bool) {
	switch insights.Mode(raw) {
	case insights.ModeManager, insights.ModeEmployee:
		return insights.Mode(raw), true
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
