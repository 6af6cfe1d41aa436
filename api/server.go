// Package api provides the HTTP API server for vendortally
// Clients upload the two exports and receive the aggregated report
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"vendortally/decision/aggregate"
	"vendortally/decision/inventory"
	"vendortally/decision/report"
	"vendortally/decision/table"
	"vendortally/pkg/platform"
)

// Form field names of the two uploads
const (
	FieldOrders    = "orders"
	FieldInventory = "inventory"
)

// Server is the HTTP API server
type Server struct {
	httpServer *http.Server
	config     *Config
	version    string
	newEngine  func() *aggregate.Engine
}

// Config holds server configuration
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	APIKey         string

	InventoryColumns inventory.Columns
	OrderColumns     aggregate.OrderColumns
}

// DefaultConfig returns server configuration with environment overrides
func DefaultConfig() *Config {
	return &Config{
		Port:             platform.GetEnvInt("VENDORTALLY_PORT", 8080),
		ReadTimeout:      platform.GetEnvDuration("VENDORTALLY_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:     platform.GetEnvDuration("VENDORTALLY_WRITE_TIMEOUT", 60*time.Second),
		MaxRequestSize:   platform.GetEnvInt64("VENDORTALLY_MAX_REQUEST_SIZE", 32*1024*1024), // 32MB
		APIKey:           platform.GetEnv("VENDORTALLY_API_KEY", ""),
		InventoryColumns: inventory.DefaultColumns(),
		OrderColumns:     aggregate.DefaultOrderColumns(),
	}
}

// NewServer creates a new API server
func NewServer(config *Config, version string) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	return &Server{
		config:  config,
		version: version,
		newEngine: func() *aggregate.Engine {
			return aggregate.NewEngine().WithColumns(config.InventoryColumns, config.OrderColumns)
		},
	}
}

// Handler builds the routed handler
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(platform.APIKeyMiddleware(s.config.APIKey))
		r.Post("/report", s.handleReport)
	})

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	log.Info().Int("port", s.config.Port).Str("version", s.version).Msg("Starting vendortally API server")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts server with graceful shutdown handling
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		log.Info().Msg("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"version": s.version,
	})
}

// =============================================================================
// REPORT ENDPOINT
// =============================================================================

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	if err := r.ParseMultipartForm(s.config.MaxRequestSize); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
		return
	}

	inventorySrc, err := uploadSource(r.MultipartForm, FieldInventory)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	ordersSrc, err := uploadSource(r.MultipartForm, FieldOrders)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if inventorySrc == nil || ordersSrc == nil {
		s.jsonError(w, http.StatusBadRequest, table.ErrMissingInput.Error())
		return
	}

	result, err := s.newEngine().Run(r.Context(), inventorySrc, ordersSrc)
	if err != nil {
		s.jsonError(w, statusFor(err), err.Error())
		return
	}

	requested := r.URL.Query().Get("format")
	if requested == "" {
		s.jsonResponse(w, http.StatusOK, report.Build(result))
		return
	}

	format, err := report.ParseFormat(requested)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch format {
	case report.FormatJSON:
		s.jsonResponse(w, http.StatusOK, report.Build(result))
	case report.FormatMarkdown:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		report.RenderMarkdown(w, result)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		report.RenderTable(w, result)
	}
}

// uploadSource returns nil when the field was not uploaded
func uploadSource(form *multipart.Form, field string) (table.Source, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s upload: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	return table.NewBytesSource(files[0].Filename, data), nil
}

func statusFor(err error) int {
	var missing *table.MissingColumnsError
	if errors.As(err, &missing) || errors.Is(err, inventory.ErrLeadingBlank) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
