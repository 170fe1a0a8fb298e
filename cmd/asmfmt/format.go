package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"asmfmt/internal/driver"
	"asmfmt/internal/observ"
	"asmfmt/internal/source"
	"asmfmt/internal/version"
)

type formatFlags struct {
	inPlace bool
	check   bool
	format  string
	jobs    int
	cache   bool
	clear   bool
	ui      uiMode
	quiet   bool
	timings bool
}

func readFormatFlags(cmd *cobra.Command) (formatFlags, error) {
	var ff formatFlags
	var err error
	flags := cmd.Flags()
	if ff.inPlace, err = flags.GetBool("in-place"); err != nil {
		return ff, err
	}
	if ff.check, err = flags.GetBool("check"); err != nil {
		return ff, err
	}
	if ff.format, err = flags.GetString("format"); err != nil {
		return ff, err
	}
	if ff.jobs, err = flags.GetInt("jobs"); err != nil {
		return ff, err
	}
	if ff.cache, err = flags.GetBool("cache"); err != nil {
		return ff, err
	}
	if ff.clear, err = flags.GetBool("clear-cache"); err != nil {
		return ff, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return ff, err
	}
	if ff.ui, err = readUIMode("ui", uiValue); err != nil {
		return ff, err
	}
	if ff.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ff, err
	}
	if ff.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return ff, err
	}

	if ff.inPlace && ff.check {
		return ff, errors.New("--in-place cannot be used with --check")
	}
	switch ff.format {
	case "text", "json":
	default:
		return ff, fmt.Errorf("unsupported output format %q (expected text|json)", ff.format)
	}
	if ff.format == "json" && !ff.inPlace && !ff.check {
		return ff, errors.New("--format=json requires --in-place or --check")
	}
	if ff.jobs < 1 {
		return ff, fmt.Errorf("--jobs must be at least 1, got %d", ff.jobs)
	}
	return ff, nil
}

func runFormat(cmd *cobra.Command, args []string) (err error) {
	ff, err := readFormatFlags(cmd)
	if err != nil {
		return err
	}
	if ff.inPlace && len(args) == 0 {
		return driver.ErrInPlaceStdin
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	finishTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { finishTrace(err != nil) }()

	timer := observ.NewTimer()
	if ff.timings {
		defer func() { fmt.Fprint(cmd.ErrOrStderr(), timer.Summary()) }()
	}

	st, err := loadSettings(cmd, timer)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Options:    st.cfg.FormatOptions(),
		Mnemonics:  st.mnemonics,
		Extensions: st.cfg.SourceExtensions(),
		InPlace:    ff.inPlace,
		Check:      ff.check,
		Jobs:       ff.jobs,
	}
	useCache := ff.cache || st.cfg.Cache
	if useCache || ff.clear {
		fp := driver.Fingerprint(opts.Options, st.mnemonics.Words(), version.Version)
		cache, cacheErr := driver.OpenCache("asmfmt", fp)
		switch {
		case cacheErr != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "asmfmt: cache disabled: %v\n", cacheErr)
		case ff.clear:
			if dropErr := cache.DropAll(); dropErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "asmfmt: clear cache: %v\n", dropErr)
			}
		}
		if cacheErr == nil && useCache {
			opts.Cache = cache
		}
	}

	stop := timer.Track("format")
	var results []driver.FormatResult
	if len(args) == 0 {
		res, readErr := driver.FormatReader(cmd.Context(), source.StdinName, cmd.InOrStdin(), opts)
		if readErr != nil {
			stop("failed")
			return readErr
		}
		results = []driver.FormatResult{res}
	} else if ff.inPlace && shouldUseTUI(ff.ui) {
		results, err = runFormatWithUI(cmd.Context(), args, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	stop(strconv.Itoa(len(results)) + " inputs")
	var work time.Duration
	for _, res := range results {
		work += res.Elapsed
	}
	timer.Add("files", work, "summed over workers")
	if err != nil && len(results) == 0 {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	// пути в сообщениях относительно cwd
	base, wdErr := os.Getwd()
	if wdErr != nil {
		base = ""
	}
	var summary fmtSummary
	switch {
	case ff.format == "json":
		summary = summarize(results)
		if encErr := renderFmtJSON(out, results, ff.check); encErr != nil {
			return encErr
		}
		reportErrors(errOut, results, base)
	case ff.inPlace || ff.check:
		summary = renderFmtText(out, errOut, results, base, ff.check, ff.quiet)
	default:
		summary = renderFmtStdout(out, errOut, results, base)
	}

	if err != nil {
		return err
	}
	if summary.errors > 0 {
		return fmt.Errorf("failed to format %d of %d files", summary.errors, len(results))
	}
	if ff.check && summary.changed > 0 {
		return errors.New("formatting changes required")
	}
	return nil
}

type fmtSummary struct {
	changed int
	errors  int
}

func summarize(results []driver.FormatResult) fmtSummary {
	var s fmtSummary
	for _, res := range results {
		if res.Err != nil {
			s.errors++
		} else if res.Changed {
			s.changed++
		}
	}
	return s
}

func reportErrors(errOut io.Writer, results []driver.FormatResult, base string) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "asmfmt: %s: %v\n", source.DisplayPath(res.Path, base), res.Err)
		}
	}
}

// renderFmtStdout writes every formatted input in order. Inputs that failed
// are reported on stderr; output of the others is still written.
func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult, base string) fmtSummary {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "asmfmt: %s: %v\n", source.DisplayPath(res.Path, base), res.Err)
			continue
		}
		if _, err := out.Write(res.Formatted); err != nil {
			panic(err)
		}
	}
	return summarize(results)
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, base string, check, quiet bool) fmtSummary {
	changedColor := color.New(color.FgGreen)
	for _, res := range results {
		path := source.DisplayPath(res.Path, base)
		if res.Err != nil {
			fmt.Fprintf(errOut, "asmfmt: %s: %v\n", path, res.Err)
			continue
		}
		if !res.Changed || quiet {
			continue
		}
		var printErr error
		if check {
			_, printErr = fmt.Fprintln(out, path)
		} else {
			_, printErr = fmt.Fprintf(out, "%s %s\n", changedColor.Sprint("reformatted"), path)
		}
		if printErr != nil {
			panic(printErr)
		}
	}
	return summarize(results)
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string  `json:"path"`
		Changed  bool    `json:"changed"`
		Cached   bool    `json:"cached,omitempty"`
		Error    string  `json:"error,omitempty"`
		CheckRun bool    `json:"check"`
		Lines    int     `json:"lines"`
		MS       float64 `json:"ms"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:     res.Path,
			Changed:  res.Changed,
			Cached:   res.Cached,
			CheckRun: check,
			Lines:    res.Stats.Output,
			MS:       toMillis(res.Elapsed),
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
