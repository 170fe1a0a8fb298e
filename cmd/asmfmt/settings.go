package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"asmfmt/internal/config"
	"asmfmt/internal/mnemonic"
	"asmfmt/internal/observ"
	"asmfmt/internal/trace"
)

// settings is everything loaded once per invocation and shared by all inputs.
type settings struct {
	cfg       *config.Config
	mnemonics *mnemonic.Set
}

// loadSettings reads the configuration and the mnemonic word lists. Any
// failure here is fatal and happens before a single file is touched.
func loadSettings(cmd *cobra.Command, timer *observ.Timer) (*settings, error) {
	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	explicit := ""
	if f := cmd.Flags().Lookup("config"); f != nil {
		explicit = f.Value.String()
	}

	stop := timer.Track("config")
	span := trace.Begin(tracer, trace.ScopePhase, "config", parent)
	var (
		cfg *config.Config
		err error
	)
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		span.End(err.Error())
		stop("failed")
		if errors.Is(err, config.ErrNotFound) {
			return nil, fmt.Errorf("%w\ncreate one with:\n  asmfmt init", err)
		}
		return nil, err
	}
	span.End(cfg.Path)
	stop(cfg.Path)

	stop = timer.Track("mnemonics")
	span = trace.Begin(tracer, trace.ScopePhase, "mnemonics", parent)
	set, err := cfg.LoadMnemonics()
	if err != nil {
		span.End(err.Error())
		stop("failed")
		return nil, err
	}
	span.WithExtra("architecture", cfg.Architecture).
		WithExtra("assembler", cfg.Assembler).
		WithExtra("words", strconv.Itoa(set.Len())).
		End("")
	stop(fmt.Sprintf("%s+%s, %d words", cfg.Architecture, cfg.Assembler, set.Len()))

	return &settings{cfg: cfg, mnemonics: set}, nil
}
