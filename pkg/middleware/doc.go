// Package middleware provides HTTP middleware for document servers.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry distributed tracing middleware
//
// # Prometheus Metrics
//
// The Prometheus middleware collects metrics about document serving:
//   - xmlbuilder_renders_total: Requests by path and status
//   - xmlbuilder_render_duration_seconds: Render duration histogram
//   - xmlbuilder_render_errors_total: 5xx responses by path
//   - xmlbuilder_response_bytes: Response size histogram
//   - xmlbuilder_preview_clients: Connected live-preview clients
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus())
//	r.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry Tracing
//
// The Tracing middleware creates a span per request and injects the span
// context into the request context, so database drivers and HTTP clients
// inherit the trace:
//
//	r.Use(middleware.Tracing(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
package middleware
