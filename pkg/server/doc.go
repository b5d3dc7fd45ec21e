// Package server serves rendered documents over HTTP.
//
// A Server maps URL paths to document sources. Each request invokes the
// source, renders the returned tree with the server's rendering
// configuration, and writes the result:
//
//	srv := server.New(nil)
//	srv.Handle("/docs/people", func(r *http.Request) *xmldoc.Element {
//	    return buildPeople()
//	})
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// Prometheus metrics and OpenTelemetry tracing are opt-in via Config.
package server
