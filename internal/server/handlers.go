package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/brand-insights/internal/insights"
	"github.com/jonathan/brand-insights/internal/schemas"
	"github.com/jonathan/brand-insights/internal/types"
)

// DatasetInfo describes the dataset currently being served.
type DatasetInfo struct {
	Version     string       `json:"version"`
	Roster      types.Roster `json:"roster"`
	Documents   []string     `json:"documents"`
	ReloadError string       `json:"reload_error,omitempty"`
}

// current returns the serving engine and stamps its version on the response.
// It writes a 503 and returns nil when nothing has been loaded.
func (s *Server) current(w http.ResponseWriter, r *http.Request) *insights.Engine {
	eng := s.engine.Load()
	if eng == nil {
		s.errorResponse(w, r, ErrNotReady)
		return nil
	}
	w.Header().Set("X-Dataset-Version", eng.Version())
	return eng
}

// brandParam returns the {brand} path parameter, or "" when the route has none.
// Unknown brands are answered with 404.
func (s *Server) brandParam(w http.ResponseWriter, r *http.Request, eng *insights.Engine) (string, bool) {
	brand := chi.URLParam(r, "brand")
	if brand == "" {
		return "", true
	}
	if !eng.Dataset().Roster.Has(brand) {
		s.errorResponse(w, r, &ErrUnknownBrand{Brand: brand})
		return "", false
	}
	return brand, true
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.engine.Load() == nil {
		status = "loading"
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	eng := s.current(w, r)
	if eng == nil {
		return
	}
	docs := make([]string, 0, len(schemas.Documents))
	for _, d := range schemas.Documents {
		docs = append(docs, d.FileName())
	}
	info := DatasetInfo{
		Version:   eng.Version(),
		Roster:    eng.Dataset().Roster,
		Documents: docs,
	}
	if err := s.LastError(); err != nil {
		info.ReloadError = err.Error()
	}
	s.jsonResponse(w, r, http.StatusOK, info)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if eng := s.current(w, r); eng != nil {
		s.jsonResponse(w, r, http.StatusOK, eng.BrandMetrics())
	}
}

func (s *Server) handleBrandProfile(w http.ResponseWriter, r *http.Request) {
	eng := s.current(w, r)
	if eng == nil {
		return
	}
	brand, ok := s.brandParam(w, r, eng)
	if !ok {
		return
	}
	profile, err := eng.BrandProfile(brand)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, profile)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if eng := s.current(w, r); eng != nil {
		s.jsonResponse(w, r, http.StatusOK, eng.Overview())
	}
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	if eng := s.current(w, r); eng != nil {
		s.jsonResponse(w, r, http.StatusOK, eng.PathExamples())
	}
}

func (s *Server) handleActionPlan(w http.ResponseWriter, r *http.Request) {
	if eng := s.current(w, r); eng != nil {
		s.jsonResponse(w, r, http.StatusOK, eng.ActionPlan())
	}
}

// handleSeasonality serves both /seasonality (focal brand) and /brands/{brand}/seasonality.
func (s *Server) handleSeasonality(w http.ResponseWriter, r *http.Request) {
	eng := s.current(w, r)
	if eng == nil {
		return
	}
	brand, ok := s.brandParam(w, r, eng)
	if !ok {
		return
	}
	insight, err := eng.Seasonality(brand)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, insight)
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	if eng := s.current(w, r); eng != nil {
		s.jsonResponse(w, r, http.StatusOK, eng.StrategySummary())
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	eng := s.current(w, r)
	if eng == nil {
		return
	}
	report, err := eng.Report(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, report)
}
