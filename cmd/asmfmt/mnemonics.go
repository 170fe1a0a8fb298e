package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"asmfmt/internal/mnemonic"
	"asmfmt/internal/observ"
)

func newMnemonicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonics",
		Short: "Print the mnemonic set used by the current configuration",
		Long: `Print the merged architecture and assembler mnemonic set, one word per
line in sorted order. With --available, list the built-in architectures and
assemblers instead.`,
		Args: cobra.NoArgs,
		RunE: runMnemonics,
	}
	cmd.Flags().StringP("config", "c", "", "path to asmfmt.toml (default: search upwards)")
	cmd.Flags().Bool("available", false, "list built-in architectures and assemblers")
	return cmd
}

func runMnemonics(cmd *cobra.Command, _ []string) error {
	available, err := cmd.Flags().GetBool("available")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if available {
		archs, asms, listErr := mnemonic.Available(mnemonic.Builtin())
		if listErr != nil {
			return listErr
		}
		fmt.Fprintf(out, "architectures: %s\n", strings.Join(archs, ", "))
		fmt.Fprintf(out, "assemblers:    %s\n", strings.Join(asms, ", "))
		return nil
	}

	st, err := loadSettings(cmd, observ.NewTimer())
	if err != nil {
		return err
	}
	for _, word := range st.mnemonics.Words() {
		if _, err := fmt.Fprintln(out, word); err != nil {
			return err
		}
	}
	return nil
}
