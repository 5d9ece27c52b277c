// Package server exposes the parser, entity validation and renderers over
// HTTP with echo.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-entityforms/internal/logging"
	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
	"github.com/goliatone/go-entityforms/pkg/validation"
)

const (
	maxBodyBytes    = 1 << 20
	bodyLimit       = "1M"
	shutdownTimeout = 5 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithParser replaces the default parser.
func WithParser(parser *tsiface.Parser) Option {
	return func(s *Server) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithRegistry sets the renderers served by POST /v1/entities/render/:renderer.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultMode sets the parser mode used when a request omits "mode".
func WithDefaultMode(mode tsiface.Mode) Option {
	return func(s *Server) {
		s.defaultMode = mode
	}
}

// Server wires the HTTP routes onto an echo engine.
type Server struct {
	engine      *echo.Echo
	parser      *tsiface.Parser
	registry    *render.Registry
	logger      *slog.Logger
	defaultMode tsiface.Mode
}

// New builds a Server with its routes registered.
func New(options ...Option) *Server {
	s := &Server{
		parser:      tsiface.New(),
		registry:    render.NewRegistry(),
		logger:      logging.Discard(),
		defaultMode: tsiface.ModeBasic,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	e.Use(middleware.BodyLimit(bodyLimit))

	e.GET("/healthz", s.health)
	v1 := e.Group("/v1")
	v1.POST("/fields/parse", s.parseFields)
	v1.POST("/entities/validate", s.validateEntity)
	v1.POST("/entities/render/:renderer", s.renderEntity)
	v1.POST("/records/validate", s.validateRecord)

	s.engine = e
	return s
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- s.engine.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := s.engine.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.logger.Debug("request",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"duration", time.Since(start),
		)
		return nil
	}
}

type parseRequest struct {
	Source string `json:"source"`
	Mode   string `json:"mode"`
}

type parseResponse struct {
	Fields []model.FieldDescriptor `json:"fields"`
}

type errorResponse struct {
	Error  string        `json:"error"`
	Issues []model.Issue `json:"issues,omitempty"`
}

type validateResponse struct {
	Valid  bool          `json:"valid"`
	Issues []model.Issue `json:"issues,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) parseFields(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	mode := s.defaultMode
	if req.Mode != "" {
		parsed, err := tsiface.ParseMode(req.Mode)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		mode = parsed
	}

	fields, err := s.parser.Generate(mode, req.Source)
	switch {
	case errors.Is(err, tsiface.ErrInvalidFormat),
		errors.Is(err, tsiface.ErrEmptySource),
		errors.Is(err, tsiface.ErrNoFields):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, parseResponse{Fields: fields})
}

func (s *Server) validateEntity(c echo.Context) error {
	entity, err := readEntity(c)
	if err != nil {
		return err
	}

	var verr *model.ValidationError
	if err := entity.Validate(); errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, validateResponse{Valid: false, Issues: verr.Issues})
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: true})
}

func (s *Server) renderEntity(c echo.Context) error {
	entity, err := readEntity(c)
	if err != nil {
		return err
	}

	opts := render.RenderOptions{
		Theme:      c.QueryParam("theme"),
		Variant:    c.QueryParam("variant"),
		DatabaseID: c.QueryParam("databaseId"),
	}
	out, contentType, err := s.registry.Render(c.Request().Context(), c.Param("renderer"), entity, opts)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.Is(err, render.ErrUnknownRenderer):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.As(err, &verr):
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Issues: verr.Issues})
		default:
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
	}
	return c.Blob(http.StatusOK, contentType, out)
}

type recordRequest struct {
	Entity model.Entity   `json:"entity"`
	Record map[string]any `json:"record"`
}

func (s *Server) validateRecord(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Entity.Validate(); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Issues: verr.Issues})
		}
		return err
	}

	result := validation.ValidateRecord(req.Entity, req.Record)
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, result)
}

// readEntity decodes a JSON or YAML entity definition from the request body.
func readEntity(c echo.Context) (model.Entity, error) {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return model.Entity{}, echo.NewHTTPError(http.StatusBadRequest, "read request body")
	}
	entity, err := entityfile.Parse(data, "request body")
	if err != nil {
		return model.Entity{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return entity, nil
}
