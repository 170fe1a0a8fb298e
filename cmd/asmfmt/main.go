package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"asmfmt/internal/config"
	"asmfmt/internal/version"
)

// newRootCmd builds the command tree. The root command formats files; the
// subcommands manage configuration and print metadata.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asmfmt [flags] [path...]",
		Short: "Format assembly source files",
		Long: `asmfmt re-indents instructions, normalizes mnemonic case and splits labels
onto their own lines. Without paths it formats standard input to standard
output. Directories are searched recursively for assembly files.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		RunE:          runFormat,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolP("in-place", "i", false, "edit files in place")
	root.Flags().Bool("check", false, "list files whose formatting differs and exit 1 if any")
	root.Flags().String("format", "text", "report format for --in-place and --check (text|json)")
	root.Flags().StringP("config", "c", "", "path to "+config.FileName+" (default: search upwards)")
	root.Flags().Int("jobs", 1, "number of files formatted concurrently")
	root.Flags().Bool("cache", false, "skip files already known to be formatted")
	root.Flags().Bool("clear-cache", false, "forget every file recorded as formatted before running")
	root.Flags().String("ui", "auto", "progress view for --in-place (auto|on|off)")

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 1024, "events kept by the ring tracer")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	root.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return applyColorMode(cmd)
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newMnemonicsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main runs the root command with a context cancelled on interrupt and exits
// with status 1 on any error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "asmfmt: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
