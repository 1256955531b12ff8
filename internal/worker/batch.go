package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ppiankov/creditline/internal/pipeline"
)

// ErrNoMatch is returned when a pattern matches no files
var ErrNoMatch = errors.New("pattern matched no files")

// Processor defines the interface for processing one document
type Processor interface {
	Process(ctx context.Context, path string) (*pipeline.Result, error)
}

// CreditJob processes one document
type CreditJob struct {
	Index     int
	Path      string
	Processor Processor
}

// Execute executes the credit job
func (j *CreditJob) Execute(ctx context.Context) Result {
	res, err := j.Processor.Process(ctx, j.Path)
	return &CreditResult{
		Index:  j.Index,
		Path:   j.Path,
		Result: res,
		Error:  err,
	}
}

// CreditResult is the outcome of a CreditJob. Result may be set even when
// Error is, for documents without credit.
type CreditResult struct {
	Index  int
	Path   string
	Result *pipeline.Result
	Error  error
}

// GetError returns the error from the credit result
func (r *CreditResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes paths concurrently. Results are returned in input
// order; paths not reached before ctx is cancelled carry ctx.Err().
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CreditResult {
	if len(paths) == 0 {
		return []*CreditResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		job := &CreditJob{
			Index:     i,
			Path:      path,
			Processor: b.processor,
		}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	ordered := make([]*CreditResult, len(paths))
	for _, result := range results {
		cr := result.(*CreditResult)
		ordered[cr.Index] = cr
	}
	for i, cr := range ordered {
		if cr == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			ordered[i] = &CreditResult{Index: i, Path: paths[i], Error: err}
		}
	}

	return ordered
}

// ExpandPatterns resolves doublestar glob patterns and @list files into a
// de-duplicated list of paths, in argument order.
func ExpandPatterns(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if list, ok := strings.CutPrefix(pattern, "@"); ok {
			listed, err := ReadPathsFromFile(list)
			if err != nil {
				return nil, err
			}
			for _, p := range listed {
				add(p)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}

// ReadPathsFromFile reads paths from a file (one per line). Relative paths
// are taken relative to the list file.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	dir := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(dir, line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
