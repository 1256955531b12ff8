package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/creditline/internal/model"
	"github.com/ppiankov/creditline/internal/pipeline"
)

var (
	subject     string
	baseURI     string
	format      string
	sourceDepth int
	locale      string
	catalogPath string
	outPath     string
	noCache     bool
	maxDepth    int
	showURLs    bool
	watch       bool
)

// creditCmd represents the credit command
var creditCmd = &cobra.Command{
	Use:   "credit [file|-]",
	Short: "Print the credit line of a document",
	Long: `Credit loads RDF metadata from an HTML (RDFa) or N-Triples document and
prints its credit line. With no file, or "-", the document is read from
standard input.

By default the credited work is the one the document names with dc:source.
Use --subject to credit a specific URI instead.

Example:
  creditline credit photo.html
  creditline credit photo.nt --format html --source-depth 2
  creditline credit page.html --subject http://example.com/photo --locale sv
  curl -s https://example.com/photo | creditline credit - --format markdown
  creditline credit photo.html --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCredit,
}

func init() {
	rootCmd.AddCommand(creditCmd)

	creditCmd.Flags().StringVar(&subject, "subject", "", "URI of the work to credit (default: <> dc:source)")
	creditCmd.Flags().StringVar(&baseURI, "base", "", "base URI for relative references (default: file URL)")
	creditCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the credit line to a file instead of stdout")
	creditCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render whenever the file changes")
	addRenderFlags(creditCmd)
}

// addRenderFlags registers the flags shared by credit and batch
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, html, markdown, terminal, json)")
	cmd.Flags().IntVar(&sourceDepth, "source-depth", 1, "levels of sources to list (0 for none)")
	cmd.Flags().StringVar(&locale, "locale", "", "built-in message catalog, e.g. sv or de")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "message catalog file (.yaml or .toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the credit cache")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 64, "maximum source levels to extract (0 for unlimited)")
	cmd.Flags().BoolVar(&showURLs, "show-urls", false, "print link targets in terminal output")
}

// applyFlags overrides cfg with the flags set on the command line
func applyFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("subject") {
		cfg.Extract.Subject = subject
	}
	if flags.Changed("base") {
		cfg.Extract.BaseURI = baseURI
	}
	if flags.Changed("max-depth") {
		cfg.Extract.MaxDepth = maxDepth
	}
	if flags.Changed("format") {
		cfg.Render.Format = format
	}
	if flags.Changed("source-depth") {
		cfg.Render.SourceDepth = sourceDepth
	}
	if flags.Changed("locale") {
		cfg.Render.Locale = locale
	}
	if flags.Changed("catalog") {
		cfg.Render.Catalog = catalogPath
	}
	if flags.Changed("show-urls") {
		cfg.Render.ShowURLs = showURLs
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
}

func runCredit(cmd *cobra.Command, args []string) error {
	path := pipeline.StdinPath
	if len(args) == 1 {
		path = args[0]
	}
	if watch && path == pipeline.StdinPath {
		return errors.New("--watch needs a file, not stdin")
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	render := func() error {
		res, err := p.Process(ctx, path)
		if err != nil {
			return err
		}
		logger.Debug("credit rendered",
			"path", res.Path,
			"loader", res.Loader,
			"cached", res.Cached,
			"duration", res.Duration)
		return writeOutput(cmd.OutOrStdout(), outPath, res.Output)
	}

	if err := render(); err != nil {
		if !watch {
			return err
		}
		logger.Error("render failed", "err", err)
	}
	if !watch {
		return nil
	}

	logger.Info("watching for changes", "path", path)
	return watchFile(ctx, path, logger, func() {
		if err := render(); err != nil {
			logger.Error("render failed", "err", err)
		}
	})
}

// writeOutput prints s to w, or writes it to path when one is given
func writeOutput(w io.Writer, path, s string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s+"\n"), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
