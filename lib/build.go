package lib

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of building one file.
type Result struct {
	File       string
	Source     string
	Tokens     []Token
	Skipped    []Token
	Expression *Expression

	// Err is why the file did not build. RecordErr is set when the outcome
	// could not be handed to the Recorder.
	Err       error
	RecordErr error
}

func (r Result) OK() bool {
	return r.Err == nil && r.Expression != nil
}

// Builder drives lexing and parsing over files. Every file gets its own
// Lexer and Parser, so files can be built concurrently.
type Builder struct {
	Log       slog.Logger
	Recorder  Recorder
	Jobs      int
	Extension string
}

// NewBuilder returns a Builder that logs to log, or nowhere if log is nil.
func NewBuilder(log slog.Logger) *Builder {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Builder{
		Log:       log,
		Jobs:      runtime.NumCPU(),
		Extension: ".ph",
	}
}

// BuildSource builds src. name is only used for reporting.
func (b *Builder) BuildSource(name string, src string) Result {
	p := NewParser(src)
	p.Parse()
	result := Result{
		File:    name,
		Source:  src,
		Tokens:  p.Tokens(),
		Skipped: p.Skipped(),
	}
	b.Log.Debugf("%s: %d tokens, %d skipped", name, len(result.Tokens), len(result.Skipped))

	result.Expression, result.Err = p.ParseExpression()
	if result.Err != nil {
		result.Expression = nil
	}
	return result
}

// BuildFile reads and builds one file and hands the outcome to the Recorder,
// if there is one.
func (b *Builder) BuildFile(ctx context.Context, filePath string) Result {
	b.Log.Infof("Building %s", filePath)

	bytes, err := os.ReadFile(filePath)
	var result Result
	if err != nil {
		result = Result{File: filePath, Err: errors.Wrap(err, "reading source")}
	} else {
		result = b.BuildSource(filePath, string(bytes))
	}

	if result.Err != nil {
		b.Log.Debugf("%s failed: %s", filePath, result.Err)
	}

	if b.Recorder != nil {
		if err := b.Recorder.Record(ctx, result); err != nil {
			b.Log.Warningf("Failed to record build of %s: %s", filePath, err)
			result.RecordErr = err
		}
	}
	return result
}

// BuildPaths builds every file named by paths, expanding directories to the
// files in them with the Builder's extension. Results are in input order. A
// failing file does not stop the others; all failures are returned together.
func (b *Builder) BuildPaths(ctx context.Context, paths []string) ([]Result, error) {
	files, err := b.expandPaths(paths)
	if err != nil {
		return nil, err
	}

	jobs := b.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = b.BuildFile(gctx, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "build cancelled")
	}

	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, errors.Wrapf(r.Err, "%s", r.File))
		}
		if r.RecordErr != nil {
			merr = multierror.Append(merr, r.RecordErr)
		}
	}
	return results, merr.ErrorOrNil()
}

func (b *Builder) expandPaths(paths []string) ([]string, error) {
	files := []string{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "finding %s", p)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, errors.Wrapf(err, "reading directory %s", p)
		}
		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != b.Extension {
				continue
			}
			files = append(files, filepath.Join(p, entry.Name()))
			found++
		}
		if found == 0 {
			return nil, errors.Errorf("no %s files in %s", b.Extension, p)
		}
	}
	return files, nil
}
