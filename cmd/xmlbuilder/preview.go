package main

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jacobtread/xmlbuilder/internal/dev"
	"github.com/jacobtread/xmlbuilder/pkg/middleware"
	"github.com/jacobtread/xmlbuilder/pkg/render"
	"github.com/jacobtread/xmlbuilder/pkg/server"
)

func previewCmd() *cobra.Command {
	var (
		flags   renderFlags
		address string
	)

	cmd := &cobra.Command{
		Use:   "preview <docfile>",
		Short: "Preview a document with live reload",
		Long: `Serve a document description with live reload.

Open the printed URL in a browser. Edits to the description file
refresh the page automatically; broken edits show an error overlay
until fixed.

Examples:
  xmlbuilder preview people.json
  xmlbuilder preview people.json --address :3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(args[0], address, flags.config())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&address, "address", "a", ":8080", "Address to listen on")

	return cmd
}

func runPreview(path, address string, renderConfig render.Config) error {
	if _, err := loadDocument(path); err != nil {
		return err
	}

	reload := dev.NewReloadServer()
	defer reload.Close()
	reload.OnClientChange(middleware.RecordPreviewClient)

	watcher := dev.NewWatcher(dev.WatcherConfig{Files: []string{path}})
	watcher.OnChange(func(c dev.Change) {
		if c.Removed {
			reload.NotifyError(fmt.Sprintf("%s was removed", c.Path))
			return
		}
		if _, err := loadDocument(c.Path); err != nil {
			reload.NotifyError(err.Error())
			return
		}
		reload.ClearError()
		reload.NotifyReload(c.Path)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Start(ctx)

	renderer := render.NewRenderer(renderConfig)
	srv := server.New(&server.Config{Address: address})
	srv.HandleFunc("/_preview/reload", reload.HandleWebSocket)
	srv.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		root, err := loadDocument(path)
		if err != nil {
			fmt.Fprintf(w, previewPage, dev.PreviewClientScript,
				"<pre>"+html.EscapeString(err.Error())+"</pre>")
			return
		}
		out, err := renderer.RenderToString(root)
		if err != nil {
			fmt.Fprintf(w, previewPage, dev.PreviewClientScript,
				"<pre>"+html.EscapeString(err.Error())+"</pre>")
			return
		}
		fmt.Fprintf(w, previewPage, dev.PreviewClientScript,
			"<pre>"+html.EscapeString(out)+"</pre>")
	})

	info("Previewing %s at http://localhost%s/", path, address)
	return srv.Start()
}

const previewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>xmlbuilder preview</title>
%s
<style>
body { font-family: monospace; margin: 20px; }
pre { background: #f6f6f6; padding: 16px; border-radius: 6px; overflow: auto; }
</style>
</head>
<body>
%s
</body>
</html>
`
