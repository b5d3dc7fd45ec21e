package server

import (
	"time"

	"github.com/jacobtread/xmlbuilder/pkg/render"
)

// Config holds configuration for the document server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// Render is the rendering configuration applied to every document.
	// Default: render.DefaultConfig().
	Render *render.Config

	// ContentType is the Content-Type header for rendered documents.
	// Default: "application/xml; charset=utf-8".
	ContentType string

	// Server lifecycle

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is the maximum time to read request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// ReadTimeout is the maximum time to read the full request.
	// Default: 30 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to write the response.
	// Default: 30 seconds.
	WriteTimeout time.Duration

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 2 minutes.
	IdleTimeout time.Duration

	// Observability

	// EnableMetrics mounts the Prometheus middleware and a /metrics endpoint.
	// Default: false.
	EnableMetrics bool

	// EnableTracing mounts the OpenTelemetry tracing middleware.
	// Default: false.
	EnableTracing bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	renderConfig := render.DefaultConfig()
	return &Config{
		Address:           ":8080",
		Render:            &renderConfig,
		ContentType:       "application/xml; charset=utf-8",
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// fillDefaults fills in defaults for any unset fields.
func (c *Config) fillDefaults() {
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.Render == nil {
		c.Render = defaults.Render
	}
	if c.ContentType == "" {
		c.ContentType = defaults.ContentType
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaults.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaults.IdleTimeout
	}
}
