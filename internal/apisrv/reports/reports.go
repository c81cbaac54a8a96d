package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/atelier/atelier-manager/internal/analytics"
	"github.com/atelier/atelier-manager/internal/entity"
)

// defaultPreset is the window callers fall back to when the requested
// preset token is not recognized.
const defaultPreset = "30d"

// Server exposes the accounting dashboard queries as JSON endpoints.
type Server struct {
	svc *analytics.Service
}

// New creates a new reports server over the analytics facade.
func New(svc *analytics.Service) *Server {
	return &Server{svc: svc}
}

// Routes mounts the dashboard query endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/revenue", s.getRevenueAnalytics)
	r.Get("/financial", s.getFinancialSummary)
	r.Get("/customers", s.getCustomerRevenue)
	return r
}

func (s *Server) getRevenueAnalytics(w http.ResponseWriter, r *http.Request) {
	rng, compare, err := s.window(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	res, err := s.svc.GetRevenueAnalytics(r.Context(), rng, compare, granularityFromQuery(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, res)
}

func (s *Server) getFinancialSummary(w http.ResponseWriter, r *http.Request) {
	rng, compare, err := s.window(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	res, err := s.svc.GetFinancialSummary(r.Context(), rng, compare)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, res)
}

func (s *Server) getCustomerRevenue(w http.ResponseWriter, r *http.Request) {
	rng, compare, err := s.window(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	res, err := s.svc.GetCustomerRevenue(r.Context(), rng, compare)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, res)
}

// window resolves the reporting window from query parameters. Explicit
// from/to bounds (YYYY-MM-DD, half-open) win over the preset; an unknown
// preset falls back to the default window rather than failing the
// dashboard. compare=true derives the immediately preceding period.
func (s *Server) window(r *http.Request) (entity.DateRange, *entity.DateRange, error) {
	q := r.URL.Query()

	var rng entity.DateRange
	if from, to := q.Get("from"), q.Get("to"); from != "" || to != "" {
		fromT, err := time.Parse("2006-01-02", from)
		if err != nil {
			return entity.DateRange{}, nil, errors.Join(analytics.ErrInvalidRange, err)
		}
		toT, err := time.Parse("2006-01-02", to)
		if err != nil {
			return entity.DateRange{}, nil, errors.Join(analytics.ErrInvalidRange, err)
		}
		rng, err = analytics.NewDateRange(fromT, toT)
		if err != nil {
			return entity.DateRange{}, nil, err
		}
	} else {
		preset := q.Get("preset")
		if preset == "" {
			preset = defaultPreset
		}
		var err error
		rng, err = s.svc.GetDateRangeFromPreset(preset)
		if errors.Is(err, analytics.ErrInvalidPreset) {
			slog.Default().InfoContext(r.Context(), "unknown preset, falling back",
				slog.String("preset", preset),
			)
			rng, err = s.svc.GetDateRangeFromPreset(defaultPreset)
		}
		if err != nil {
			return entity.DateRange{}, nil, err
		}
	}

	var compare *entity.DateRange
	if q.Get("compare") == "true" {
		p := s.svc.GetComparisonPeriod(rng).Previous
		compare = &p
	}
	return rng, compare, nil
}

func granularityFromQuery(r *http.Request) entity.Granularity {
	switch r.URL.Query().Get("granularity") {
	case "weekly":
		return entity.GranularityWeekly
	case "monthly":
		return entity.GranularityMonthly
	default:
		return entity.GranularityDaily
	}
}

type errResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", slog.String("err", err.Error()))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, analytics.ErrInvalidRange), errors.Is(err, analytics.ErrInvalidPreset):
		status = http.StatusBadRequest
	case errors.Is(err, analytics.ErrDataSourceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}
	slog.Default().ErrorContext(r.Context(), "reports query failed",
		slog.String("path", r.URL.Path),
		slog.String("err", err.Error()),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errResponse{Status: http.StatusText(status), Error: err.Error()})
}
