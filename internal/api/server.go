// Package api exposes the freight service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/export"
	"github.com/sells-group/freight-cli/internal/metrics"
	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/orchestrator"
)

const maxBodyBytes = 1 << 20

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest          = "bad_request"
	CodeInvalidQuery        = "invalid_query"
	CodeOrchestrationFailed = "orchestration_failed"
	CodeCanceled            = "canceled"
	CodeInternal            = "internal_error"
)

// Service is the caller-facing API the handlers drive. *freight.Service
// implements it.
type Service interface {
	ExtractFacilities(ctx context.Context, q model.FacilityQuery) ([]model.Facility, error)
	FetchSeaRates(ctx context.Context, q model.SeaRateQuery) ([]model.SeaRate, error)
	FetchAirRates(ctx context.Context, q model.AirRateQuery) ([]model.AirRate, error)
	AnalyzeLocalCharges(ctx context.Context, q model.LocalChargesQuery) ([]model.LocalCharge, error)
	VerifyFacility(ctx context.Context, f model.Facility) model.Verification
	VerifyAirRate(ctx context.Context, a model.AirRate) model.Verification
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse wraps a result set.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// Server holds the HTTP handlers.
type Server struct {
	svc Service
}

// NewServer creates a Server.
func NewServer(svc Service) *Server {
	return &Server{svc: svc}
}

// Router builds the chi router with CORS and request metrics.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware())

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/facilities", s.ExtractFacilities)
		r.Post("/facilities/verify", s.VerifyFacility)
		r.Post("/sea-rates", s.FetchSeaRates)
		r.Post("/air-rates", s.FetchAirRates)
		r.Post("/air-rates/verify", s.VerifyAirRate)
		r.Post("/local-charges", s.AnalyzeLocalCharges)
	})

	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExtractFacilities handles POST /v1/facilities. ?format=xlsx|geojson
// returns a file instead of JSON.
func (s *Server) ExtractFacilities(w http.ResponseWriter, r *http.Request) {
	var q model.FacilityQuery
	if !decode(w, r, &q) {
		return
	}
	format, ok := outputFormat(w, r)
	if !ok {
		return
	}

	items, err := s.svc.ExtractFacilities(r.Context(), q)
	if err != nil {
		handleError(w, r, err)
		return
	}

	switch format {
	case export.FormatXLSX:
		writeXLSX(w, "facilities.xlsx", export.FacilitiesTable(items))
	case export.FormatGeoJSON:
		w.Header().Set("Content-Type", "application/geo+json")
		if err := export.WriteGeoJSON(w, items); err != nil {
			zap.L().Error("api: write geojson", zap.Error(err))
		}
	default:
		writeJSON(w, http.StatusOK, ListResponse[model.Facility]{Items: items, Count: len(items)})
	}
}

// FetchSeaRates handles POST /v1/sea-rates.
func (s *Server) FetchSeaRates(w http.ResponseWriter, r *http.Request) {
	var q model.SeaRateQuery
	if !decode(w, r, &q) {
		return
	}
	format, ok := outputFormat(w, r)
	if !ok {
		return
	}

	items, err := s.svc.FetchSeaRates(r.Context(), q)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if format == export.FormatXLSX {
		writeXLSX(w, "sea-rates.xlsx", export.SeaRatesTable(items))
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[model.SeaRate]{Items: items, Count: len(items)})
}

// FetchAirRates handles POST /v1/air-rates.
func (s *Server) FetchAirRates(w http.ResponseWriter, r *http.Request) {
	var q model.AirRateQuery
	if !decode(w, r, &q) {
		return
	}
	format, ok := outputFormat(w, r)
	if !ok {
		return
	}

	items, err := s.svc.FetchAirRates(r.Context(), q)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if format == export.FormatXLSX {
		writeXLSX(w, "air-rates.xlsx", export.AirRatesTable(items))
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[model.AirRate]{Items: items, Count: len(items)})
}

// AnalyzeLocalCharges handles POST /v1/local-charges.
func (s *Server) AnalyzeLocalCharges(w http.ResponseWriter, r *http.Request) {
	var q model.LocalChargesQuery
	if !decode(w, r, &q) {
		return
	}
	format, ok := outputFormat(w, r)
	if !ok {
		return
	}

	items, err := s.svc.AnalyzeLocalCharges(r.Context(), q)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if format == export.FormatXLSX {
		mode, _ := model.ParseTransportType(string(q.TransportMode))
		writeXLSX(w, "local-charges.xlsx", export.LocalChargesTable(items, mode))
		return
	}
	writeJSON(w, http.StatusOK, ListResponse[model.LocalCharge]{Items: items, Count: len(items)})
}

// VerifyFacility handles POST /v1/facilities/verify. The body is the
// facility to verify; the response is the verification update.
func (s *Server) VerifyFacility(w http.ResponseWriter, r *http.Request) {
	var f model.Facility
	if !decode(w, r, &f) {
		return
	}
	if f.Name == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusOK, s.svc.VerifyFacility(r.Context(), f))
}

// VerifyAirRate handles POST /v1/air-rates/verify.
func (s *Server) VerifyAirRate(w http.ResponseWriter, r *http.Request) {
	var a model.AirRate
	if !decode(w, r, &a) {
		return
	}
	if a.DestinationAirport == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "destination_airport is required")
		return
	}
	writeJSON(w, http.StatusOK, s.svc.VerifyAirRate(r.Context(), a))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func outputFormat(w http.ResponseWriter, r *http.Request) (export.Format, bool) {
	f, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return "", false
	}
	if f == export.FormatGeoJSON && r.URL.Path != "/v1/facilities" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "geojson is only available for facilities")
		return "", false
	}
	return f, true
}

// handleError maps service errors onto status codes. Only validation
// messages are passed through; everything else gets a fixed message.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := zap.L().With(zap.String("path", r.URL.Path), zap.String("request_id", middleware.GetReqID(r.Context())))

	var oe *orchestrator.OrchestrationError
	switch {
	case errors.Is(err, model.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, CodeInvalidQuery, err.Error())
	case errors.As(err, &oe):
		log.Warn("api: orchestration failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, CodeOrchestrationFailed, oe.UserMessage())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Info("api: request canceled", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, CodeCanceled, "request canceled")
	default:
		log.Error("api: internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}

func writeXLSX(w http.ResponseWriter, filename string, t export.Table) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteXLSX(w, t); err != nil {
		zap.L().Error("api: write xlsx", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
