// Package pipeline wires reading, loading, extraction, caching and
// rendering into a single Process call per document.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ppiankov/creditline/internal/cache"
	"github.com/ppiankov/creditline/internal/credit"
	"github.com/ppiankov/creditline/internal/graph"
	"github.com/ppiankov/creditline/internal/i18n"
	"github.com/ppiankov/creditline/internal/loader"
	"github.com/ppiankov/creditline/internal/model"
)

// ErrNoCredit is returned when a document carries no attribution
var ErrNoCredit = errors.New("no credit found")

// Pipeline orchestrates reading, extraction and rendering
type Pipeline struct {
	reader    *Reader
	loaders   *loader.Registry
	extractor *credit.Extractor
	cache     cache.Cache
	renderer  *Renderer
	logger    *log.Logger
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	translator, err := loadTranslator(cfg.Render)
	if err != nil {
		return nil, err
	}

	var c cache.Cache = cache.NopCache{}
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		reader:  NewReader(cfg.Input.MaxBytes),
		loaders: loader.NewRegistry(),
		extractor: credit.NewExtractor(
			credit.WithMaxDepth(cfg.Extract.MaxDepth),
			credit.WithCycleGuard(cfg.Extract.CycleGuard),
		),
		cache:    c,
		renderer: NewRenderer(cfg.Render.Format, cfg.Render.SourceDepth, translator, cfg.Render.ShowURLs),
		logger:   logger,
		config:   cfg,
	}, nil
}

func loadTranslator(cfg model.RenderConfig) (credit.Translator, error) {
	switch {
	case cfg.Catalog != "":
		cat, err := i18n.Load(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return cat, nil
	case cfg.Locale != "" && cfg.Locale != "en":
		cat, err := i18n.Builtin(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return cat, nil
	}
	return nil, nil
}

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Result is the outcome of processing one document
type Result struct {
	Path     string
	Loader   string
	Credit   *credit.Credit
	Output   string
	Cached   bool
	Duration time.Duration
}

// Process reads path ("-" for stdin) and renders its credit. When the
// document has no attribution the result is returned with ErrNoCredit.
func (p *Pipeline) Process(ctx context.Context, path string) (*Result, error) {
	in, err := p.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.ProcessInput(ctx, in)
}

// ProcessBytes processes a document already in memory
func (p *Pipeline) ProcessBytes(ctx context.Context, path string, data []byte) (*Result, error) {
	return p.ProcessInput(ctx, NewInput(path, data, ""))
}

// ProcessInput extracts and renders the credit of in
func (p *Pipeline) ProcessInput(ctx context.Context, in *Input) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := p.config.Extract.BaseURI
	if base == "" {
		base = in.BaseURI
	}

	key := cache.CacheKey(
		in.Digest,
		in.Path,
		base,
		p.config.Extract.Subject,
		strconv.Itoa(p.config.Extract.MaxDepth),
		strconv.FormatBool(p.config.Extract.CycleGuard),
	)

	res := &Result{Path: in.Path}

	c, loaderName, hit := cache.GetCredit(p.cache, key)
	if hit {
		p.logger.Debug("cache hit", "path", in.Path)
		res.Cached = true
	} else {
		l := p.loaders.FindLoader(in.Path, in.ContentType)
		loaderName = l.Name()

		g, err := l.Load(bytes.NewReader(in.Data), base)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", in.Path, err)
		}
		p.logger.Debug("loaded graph", "path", in.Path, "loader", loaderName, "triples", g.Len())

		c = p.extract(g)

		if err := cache.PutCredit(p.cache, key, c, loaderName, 0); err != nil {
			p.logger.Warn("failed to cache credit", "path", in.Path, "err", err)
		}
	}
	res.Loader = loaderName
	res.Credit = c

	if c == nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("%s: %w", in.Path, ErrNoCredit)
	}

	out, err := p.renderer.Render(c)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", in.Path, err)
	}
	res.Output = out
	res.Duration = time.Since(start)

	return res, nil
}

// extract locates the credit: the configured subject, else the work the
// document names with dc:source, else the document itself.
func (p *Pipeline) extract(g *graph.Store) *credit.Credit {
	if s := p.config.Extract.Subject; s != "" {
		return p.extractor.ExtractURI(g, s)
	}
	if c := p.extractor.Extract(g, nil); c != nil {
		return c
	}
	return p.extractor.Extract(g, g.Sym(""))
}
