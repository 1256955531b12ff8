package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ppiankov/creditline/internal/pipeline"
	"github.com/ppiankov/creditline/internal/worker"
)

// ManifestName is the file batch writes next to the rendered credits
const ManifestName = "manifest.json"

var (
	concurrency int
	outputDir   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <pattern|@list>...",
	Short: "Render credit lines for many documents in parallel",
	Long: `Batch renders the credit line of every document matched by the given
glob patterns (doublestar syntax, e.g. "site/**/*.html") or listed in
@list files (one path per line, # comments allowed).

Without --output-dir each credit line is printed as "path: line". With
--output-dir one file per document is written, plus a manifest.json
describing the run.

Example:
  creditline batch 'photos/**/*.html'
  creditline batch @pages.txt --concurrency 8 --output-dir ./credits --format html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write one file per document and a manifest here")
	addRenderFlags(batchCmd)
}

// batchManifest describes one batch run
type batchManifest struct {
	RunID    string          `json:"run_id"`
	Started  time.Time       `json:"started"`
	Duration string          `json:"duration"`
	Format   string          `json:"format"`
	Total    int             `json:"total"`
	Failed   int             `json:"failed"`
	Entries  []manifestEntry `json:"entries"`
}

type manifestEntry struct {
	Path   string `json:"path"`
	Output string `json:"output,omitempty"`
	Loader string `json:"loader,omitempty"`
	Cached bool   `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	paths, err := worker.ExpandPatterns(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	manifest := &batchManifest{
		RunID:   uuid.New().String(),
		Started: time.Now().UTC(),
		Format:  cfg.Render.Format,
		Total:   len(paths),
	}
	logger.Info("batch started",
		"run", manifest.RunID,
		"documents", len(paths),
		"workers", cfg.Concurrency.Workers)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.ProcessPaths(ctx, paths)

	out := cmd.OutOrStdout()
	for i, r := range results {
		entry := manifestEntry{Path: r.Path}
		if r.Result != nil {
			entry.Loader = r.Result.Loader
			entry.Cached = r.Result.Cached
		}

		if r.Error != nil {
			manifest.Failed++
			entry.Error = r.Error.Error()
			manifest.Entries = append(manifest.Entries, entry)
			logger.Warn("document failed", "path", r.Path, "err", r.Error)
			continue
		}

		if outputDir == "" {
			if _, err := fmt.Fprintf(out, "%s: %s\n", r.Path, r.Result.Output); err != nil {
				return err
			}
		} else {
			name := outputName(i, r.Path, p.Renderer().Extension())
			if err := writeOutput(out, filepath.Join(outputDir, name), r.Result.Output); err != nil {
				return err
			}
			entry.Output = name
		}
		manifest.Entries = append(manifest.Entries, entry)
	}
	manifest.Duration = time.Since(manifest.Started).Round(time.Millisecond).String()

	if outputDir != "" {
		if err := writeManifest(filepath.Join(outputDir, ManifestName), manifest); err != nil {
			return err
		}
	}

	logger.Info("batch complete",
		"run", manifest.RunID,
		"total", manifest.Total,
		"failed", manifest.Failed,
		"duration", manifest.Duration)

	if err := ctx.Err(); err != nil {
		return err
	}
	if manifest.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", manifest.Failed, manifest.Total)
	}
	return nil
}

func writeManifest(path string, m *batchManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// maxNameRunes caps the document part of output file names
const maxNameRunes = 100

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// outputName builds a unique file name for the i-th document. The index
// prefix keeps documents with the same base name apart.
func outputName(i int, path, ext string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = filenameReplacer.Replace(base)
	if utf8.RuneCountInString(base) > maxNameRunes {
		base = string([]rune(base)[:maxNameRunes])
	}
	return fmt.Sprintf("%03d-%s%s", i+1, base, ext)
}
