// Package http exposes the lookup capabilities over a small JSON API plus
// the health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/geo"
	"github.com/couchcryptid/geodata-service/internal/provider"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ReadinessFunc adapts a function to ReadinessChecker.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) CheckReadiness(ctx context.Context) error { return f(ctx) }

// Server exposes the v1 lookup API and operational endpoints.
type Server struct {
	httpServer *http.Server
	registry   *provider.Registry
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, registry *provider.Registry, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		registry: registry,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/geocode", s.handleGeocode)
	mux.HandleFunc("GET /v1/reverse", s.handleReverse)
	mux.HandleFunc("GET /v1/weather", s.handleWeather)
	mux.HandleFunc("GET /v1/elevation", s.handleElevation)
	mux.HandleFunc("GET /v1/map", s.handleMap)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, s.logger, badRequest("missing q parameter"))
		return
	}
	geocoder, err := provider.ActiveGeocoder(s.registry)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	addr, err := geocoder.Geocode(r.Context(), query)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

func (s *Server) handleReverse(w http.ResponseWriter, r *http.Request) {
	coord, err := parseCoordinate(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	geocoder, err := provider.ActiveGeocoder(s.registry)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	addr, err := geocoder.ReverseGeocode(r.Context(), coord)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	coord, err := parseCoordinate(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	var at time.Time
	if v := r.URL.Query().Get("at"); v != "" {
		at, err = time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, s.logger, badRequest("at must be RFC 3339"))
			return
		}
	}

	units := r.URL.Query().Get("units")
	if units != "" && units != "metric" && units != "imperial" {
		writeError(w, s.logger, badRequest("units must be metric or imperial"))
		return
	}

	weather, err := provider.ActiveWeather(s.registry)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	cond, err := weather.Conditions(r.Context(), coord, at)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if units == "imperial" {
		cond = toImperial(cond)
	}
	writeJSON(w, http.StatusOK, cond)
}

func (s *Server) handleElevation(w http.ResponseWriter, r *http.Request) {
	coord, err := parseCoordinate(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	elevation, err := provider.ActiveElevation(s.registry)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	value, err := elevation.Elevation(r.Context(), coord)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"elevation": value})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	coord, err := parseCoordinate(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	zoom := parseIntDefault(r, "zoom", 12)
	width := parseIntDefault(r, "width", 640)
	height := parseIntDefault(r, "height", 480)

	staticMap, err := provider.ActiveStaticMap(s.registry)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	u, err := staticMap.StaticMapURL(coord, zoom, width, height)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

// toImperial converts a conditions snapshot for presentation. The input is
// a value copy, so the cached SI record is never touched.
func toImperial(cond domain.Conditions) domain.Conditions {
	convert := func(p *float64, f func(float64) float64) *float64 {
		if p == nil {
			return nil
		}
		return domain.Float64(f(*p))
	}

	cond.Temperature = convert(cond.Temperature, geo.CToF)
	cond.Dewpoint = convert(cond.Dewpoint, geo.CToF)
	cond.Pressure = convert(cond.Pressure, geo.HpaToInHg)
	cond.Rain = convert(cond.Rain, geo.MmToIn)
	cond.Snow = convert(cond.Snow, geo.MmToIn)
	cond.Visibility = convert(cond.Visibility, geo.MToMi)
	cond.Wind.Speed = geo.MsToMph(cond.Wind.Speed)
	cond.Wind.Gust = convert(cond.Wind.Gust, geo.MsToMph)
	if cond.Distance != 0 {
		cond.Distance = geo.MToMi(cond.Distance)
	}
	return cond
}

type requestError struct{ msg string }

func (e requestError) Error() string { return e.msg }

func badRequest(msg string) error { return requestError{msg: msg} }

func parseCoordinate(r *http.Request) (domain.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return domain.Coordinate{}, badRequest("lat must be a number")
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return domain.Coordinate{}, badRequest("lon must be a number")
	}
	coord := domain.Coordinate{Latitude: lat, Longitude: lon}
	if err := coord.Validate(); err != nil {
		return domain.Coordinate{}, badRequest(err.Error())
	}
	return coord, nil
}

func parseIntDefault(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	var reqErr requestError
	var upstream *domain.UpstreamError

	switch {
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoResults), errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrMissingCredentials):
		status = http.StatusServiceUnavailable
	case errors.As(err, &upstream), errors.Is(err, domain.ErrMalformedResponse):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
