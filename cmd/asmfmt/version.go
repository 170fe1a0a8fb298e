package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"asmfmt/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show asmfmt build metadata",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	outFormat, _ := flags.GetString("format")
	full, _ := flags.GetBool("full")
	withHash, _ := flags.GetBool("hash")
	withDate, _ := flags.GetBool("date")
	withHash = withHash || full
	withDate = withDate || full

	info := version.Current()
	// only what was asked for is printed
	if !withHash {
		info.GitCommit, info.Modified = "", false
	} else if info.GitCommit == "" {
		info.GitCommit = "unknown"
	}
	if !withDate {
		info.BuildDate = ""
	} else if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	if !full {
		info.GoVersion = ""
	}

	switch strings.ToLower(outFormat) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tool string `json:"tool"`
			version.Info
		}{"asmfmt", info})
	case "pretty":
		printVersion(cmd.OutOrStdout(), info)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", outFormat)
	}
}

func printVersion(out io.Writer, info version.Info) {
	fmt.Fprintf(out, "asmfmt %s\n", version.Colored(info.Version))
	if info.GitCommit != "" {
		dirty := ""
		if info.Modified {
			dirty = " (modified)"
		}
		fmt.Fprintf(out, "commit: %s%s\n", info.GitCommit, dirty)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
	}
	if info.GoVersion != "" {
		fmt.Fprintf(out, "go:     %s\n", info.GoVersion)
	}
}
