package driver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"asmfmt/internal/format"
	"asmfmt/internal/source"
	"asmfmt/internal/trace"
)

var (
	// ErrNoInputs is returned when no paths were given.
	ErrNoInputs = errors.New("format: no input files")
	// ErrInPlaceStdin is returned when in-place mode is requested for stdin.
	ErrInPlaceStdin = errors.New("format: cannot edit standard input in place")
)

// FormatOptions configures formatting of a batch of inputs.
type FormatOptions struct {
	Options   format.Options
	Mnemonics format.Mnemonics
	// Extensions selects files when a directory is given. Explicitly named
	// files are formatted regardless of extension.
	Extensions []string
	// InPlace rewrites changed files on disk.
	InPlace bool
	// Check reports whether files would change without writing anything.
	Check bool
	// Jobs bounds the number of files formatted concurrently (<= 0 means 1).
	Jobs     int
	Cache    *Cache
	Progress ProgressSink
}

// FormatResult captures the result of formatting a single input.
type FormatResult struct {
	Path    string
	Changed bool
	Cached  bool
	Err     error
	// Formatted holds the output when neither InPlace nor Check is set.
	Formatted []byte
	Stats     format.Stats
	Elapsed   time.Duration
}

// FormatPaths formats the given files and directories (recursively collecting
// files with a configured extension). Results are in input order. A failure on
// one file is stored in its result and does not stop the others; the returned
// error is only set for missing inputs or cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "format")
	defer span.End("")
	tracer := trace.FromContext(ctx)

	inputs, err := collectInputs(ctx, paths, opts.Extensions, opts.InPlace)
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(inputs)))

	results := make([]FormatResult, len(inputs))
	for _, in := range inputs {
		emit(opts.Progress, Event{File: in.path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 1
	}

	// Результаты пишутся по индексу, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(inputs), 1)))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FormatResult{Path: in.path, Err: err}
				return err
			}
			if in.err != nil {
				results[i] = FormatResult{Path: in.path, Err: in.err}
				emit(opts.Progress, Event{File: in.path, Status: StatusError, Err: in.err})
				return nil
			}
			results[i] = formatFile(gctx, tracer, span.ID(), in.path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FormatReader formats a single stream, typically standard input. The result
// always carries the formatted bytes unless Check is set.
func FormatReader(ctx context.Context, name string, r io.Reader, opts FormatOptions) (FormatResult, error) {
	if opts.InPlace {
		return FormatResult{}, ErrInPlaceStdin
	}
	if err := ctx.Err(); err != nil {
		return FormatResult{}, err
	}
	if name == "" {
		name = source.StdinName
	}
	_, span := trace.StartSpan(ctx, trace.ScopeModule, "file:"+name)
	defer span.End("")

	start := time.Now()
	f, err := source.Read(name, r)
	if err != nil {
		return FormatResult{Path: name, Err: err}, nil
	}
	annotate(span, f)
	formatted, stats := format.SourceStats(f.Content, opts.Options, opts.Mnemonics)
	res := FormatResult{
		Path:    name,
		Changed: !bytes.Equal(f.Content, formatted),
		Stats:   stats,
	}
	if !opts.Check {
		res.Formatted = f.Restore(formatted)
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func formatFile(ctx context.Context, tracer trace.Tracer, parent uint64, path string, opts FormatOptions) (res FormatResult) {
	start := time.Now()
	res.Path = path
	emit(opts.Progress, Event{File: path, Status: StatusWorking})

	span := trace.Begin(tracer, trace.ScopeModule, "file:"+path, parent)
	defer func() {
		res.Elapsed = time.Since(start)
		status := StatusDone
		detail := ""
		if res.Err != nil {
			status = StatusError
			detail = res.Err.Error()
		}
		span.WithExtra("changed", strconv.FormatBool(res.Changed)).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End(detail)
		emit(opts.Progress, Event{File: path, Status: status, Changed: res.Changed, Err: res.Err, Elapsed: res.Elapsed})
	}()

	f, err := source.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	annotate(span, f)

	if opts.Cache.Known(f.Hash) {
		res.Cached = true
		if !opts.InPlace && !opts.Check {
			res.Formatted = f.Restore(f.Content)
		}
		return res
	}

	formatted, stats := format.SourceStats(f.Content, opts.Options, opts.Mnemonics)
	res.Stats = stats
	res.Changed = !bytes.Equal(f.Content, formatted)

	switch {
	case opts.Check:
	case opts.InPlace:
		if res.Changed {
			// Весь ввод уже прочитан и отформатирован: можно перезаписывать
			if err := os.WriteFile(path, f.Restore(formatted), f.Mode); err != nil {
				res.Err = err
				return res
			}
		}
	default:
		res.Formatted = f.Restore(formatted)
	}

	if !res.Changed || opts.InPlace {
		if err := opts.Cache.Remember(path, source.FromBytes(path, formatted).Hash); err != nil {
			trace.Point(tracer, trace.ScopeModule, "cache:"+path, err.Error())
		}
	}
	return res
}

// annotate notes where the input came from and whether CRLF endings were
// folded into '\n'.
func annotate(span *trace.Span, f *source.File) {
	origin := "disk"
	if f.Virtual() {
		origin = "memory"
	}
	span.WithExtra("origin", origin).
		WithExtra("crlf", strconv.FormatBool(f.HasCRLF()))
}

type input struct {
	path string
	err  error
}

// collectInputs expands paths into the files to format. A file named twice
// on the command line is formatted twice, except in place where two workers
// would rewrite the same file. Files found by walking a directory appear once.
func collectInputs(ctx context.Context, paths, exts []string, inPlace bool) ([]input, error) {
	var inputs []input
	seen := make(map[string]struct{})
	add := func(path string, err error, named bool) {
		if _, ok := seen[path]; ok && (!named || inPlace) {
			return
		}
		seen[path] = struct{}{}
		inputs = append(inputs, input{path: path, err: err})
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			add(p, err, true)
			continue
		}
		if !info.IsDir() {
			add(p, nil, true)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				// Skip hidden directories
				if path != p && len(name) > 1 && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(path, exts) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			add(p, err, true)
			continue
		}
		// Сортируем для детерминированного порядка
		slices.Sort(found)
		for _, path := range found {
			add(path, nil, false)
		}
	}
	return inputs, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
