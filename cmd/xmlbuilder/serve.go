package main

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacobtread/xmlbuilder/pkg/server"
	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

func serveCmd() *cobra.Command {
	var (
		flags   renderFlags
		address string
		metrics bool
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve <docfile>...",
		Short: "Serve rendered documents over HTTP",
		Long: `Serve one or more document descriptions over HTTP.

Each file is mounted at /<basename without extension>.xml and
re-read on every request, so edits show up immediately.

Examples:
  xmlbuilder serve people.json catalog.json
  xmlbuilder serve people.json --address :3000 --metrics`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderConfig := flags.config()
			srv := server.New(&server.Config{
				Address:       address,
				Render:        &renderConfig,
				EnableMetrics: metrics,
				EnableTracing: tracing,
			})

			for _, path := range args {
				// Fail fast on descriptions that are broken at startup.
				if _, err := loadDocument(path); err != nil {
					return err
				}

				docPath := path
				route := "/" + strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".xml"
				srv.Handle(route, func(*http.Request) *xmldoc.Element {
					root, err := loadDocument(docPath)
					if err != nil {
						return nil
					}
					return root
				})
				info("%s -> %s", path, route)
			}

			return srv.Start()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&address, "address", "a", ":8080", "Address to listen on")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics at /metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Enable OpenTelemetry tracing")

	return cmd
}
