package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacobtread/xmlbuilder/internal/docfile"
	"github.com/jacobtread/xmlbuilder/pkg/render"
	"github.com/jacobtread/xmlbuilder/pkg/xmldoc"
)

// renderFlags holds the rendering options shared by the render, serve,
// preview, and publish commands.
type renderFlags struct {
	pretty      bool
	indent      string
	singleLine  bool
	selfClosing bool
	charRefs    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.pretty, "pretty", true, "Pretty-print with newlines and indentation")
	cmd.Flags().StringVar(&f.indent, "indent", "  ", "Indent unit for pretty-printing")
	cmd.Flags().BoolVar(&f.singleLine, "single-line-text", false, "Render text-only elements on one line")
	cmd.Flags().BoolVar(&f.selfClosing, "self-closing", true, "Render empty elements as self-closing tags")
	cmd.Flags().BoolVar(&f.charRefs, "char-refs", false, "Escape with numeric character references")
}

func (f *renderFlags) config() render.Config {
	return render.Config{
		Pretty:                 f.pretty,
		Indent:                 f.indent,
		SingleLineTextElements: f.singleLine,
		SelfClosingTags:        f.selfClosing,
		CharacterReference:     f.charRefs,
	}
}

// loadDocument loads a description file and builds its tree.
func loadDocument(path string) (*xmldoc.Element, error) {
	doc, err := docfile.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

func renderCmd() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <docfile>",
		Short: "Render a document description",
		Long: `Render a JSON document description to XML.

Writes to stdout unless --output is given.

Examples:
  xmlbuilder render people.json
  xmlbuilder render people.json --output people.xml
  xmlbuilder render people.json --pretty=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			out, err := render.NewRenderer(flags.config()).RenderToString(root)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(out)
				return nil
			}
			if err := os.WriteFile(output, []byte(out+"\n"), 0o644); err != nil {
				return err
			}
			success("Wrote %s (%d bytes)", output, len(out))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
