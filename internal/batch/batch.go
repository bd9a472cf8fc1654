// Package batch renders a directory tree of posts in parallel.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roboco-io/postmd/internal/document"
	"github.com/roboco-io/postmd/internal/ir"
	"github.com/roboco-io/postmd/internal/parser"
	"github.com/roboco-io/postmd/internal/render"
)

// DefaultPattern selects markdown posts at any depth.
const DefaultPattern = "**/*.md"

// Options configures a build.
type Options struct {
	SourceDir     string
	Pattern       string // doublestar glob relative to SourceDir
	OutputDir     string
	Renderer      render.Renderer
	Parser        parser.Options
	Concurrency   int // 0 uses runtime.NumCPU()
	IncludeDrafts bool
	Logger        *zap.Logger
}

// Validate checks the options and fills in defaults.
func (o *Options) Validate() error {
	if o.SourceDir == "" {
		return errors.New("source directory is required")
	}
	info, err := os.Stat(o.SourceDir)
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", o.SourceDir)
	}
	if o.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if o.Renderer == nil {
		return errors.New("renderer is required")
	}
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(o.Pattern) {
		return fmt.Errorf("invalid pattern: %s", o.Pattern)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}

// FileResult is the outcome of building one source file.
type FileResult struct {
	Source   string // slash-separated, relative to SourceDir
	Output   string // written file, empty when skipped or failed
	Blocks   int
	Skipped  bool // draft excluded from the build
	Err      error
	Metadata ir.Metadata
}

// Result collects the file results of a build in discovery order.
type Result struct {
	OutputDir string
	Files     []FileResult
	Elapsed   time.Duration
}

// Failed returns the number of files that could not be built.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Skipped returns the number of drafts left out.
func (r *Result) Skipped() int {
	n := 0
	for _, f := range r.Files {
		if f.Skipped {
			n++
		}
	}
	return n
}

// Built returns the number of files written.
func (r *Result) Built() int {
	return len(r.Files) - r.Failed() - r.Skipped()
}

// Discover lists the source files matching the pattern, sorted.
func Discover(opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(opts.SourceDir), opts.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to match %s: %w", opts.Pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Build renders every matching file. Each file is parsed independently;
// a failure is recorded on its FileResult and does not stop the others.
func Build(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build cancelled: %w", err)
	}
	start := time.Now()

	files, err := Discover(opts)
	if err != nil {
		return nil, err
	}

	log := opts.Logger.With(zap.String("renderer", opts.Renderer.Name()))
	log.Debug("discovered sources",
		zap.String("dir", opts.SourceDir),
		zap.String("pattern", opts.Pattern),
		zap.Int("files", len(files)))

	result := &Result{
		OutputDir: opts.OutputDir,
		Files:     make([]FileResult, len(files)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.Files[i] = BuildFile(opts, rel)
			logFileResult(log, result.Files[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("build cancelled: %w", err)
	}

	result.Elapsed = time.Since(start)
	log.Info("build complete",
		zap.Int("built", result.Built()),
		zap.Int("skipped", result.Skipped()),
		zap.Int("failed", result.Failed()),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

// BuildFile loads, renders, and writes a single source file.
// opts must already be validated.
func BuildFile(opts Options, rel string) FileResult {
	res := FileResult{Source: rel}

	doc, err := document.Load(filepath.Join(opts.SourceDir, filepath.FromSlash(rel)), opts.Parser)
	if err != nil {
		res.Err = err
		return res
	}
	res.Metadata = doc.Metadata
	res.Blocks = len(doc.Content)

	if doc.Metadata.Draft && !opts.IncludeDrafts {
		res.Skipped = true
		return res
	}

	var buf bytes.Buffer
	if err := opts.Renderer.Render(&buf, doc); err != nil {
		res.Err = fmt.Errorf("%s: %w", rel, err)
		return res
	}

	out := OutputPath(opts, rel)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		res.Err = fmt.Errorf("failed to create output directory: %w", err)
		return res
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		res.Err = fmt.Errorf("failed to write %s: %w", out, err)
		return res
	}
	res.Output = out
	return res
}

// OutputPath maps a source path to its output file.
func OutputPath(opts Options, rel string) string {
	base := strings.TrimSuffix(rel, path.Ext(rel))
	return filepath.Join(opts.OutputDir, filepath.FromSlash(base)+opts.Renderer.Extension())
}

func logFileResult(log *zap.Logger, res FileResult) {
	switch {
	case res.Err != nil:
		log.Warn("build failed", zap.String("source", res.Source), zap.Error(res.Err))
	case res.Skipped:
		log.Debug("skipped draft", zap.String("source", res.Source))
	default:
		log.Debug("built",
			zap.String("source", res.Source),
			zap.String("output", res.Output),
			zap.Int("blocks", res.Blocks))
	}
}
