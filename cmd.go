package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	rootCmd *cobra.Command
)

var (
	strategy *string
	codePage *string
	verbose  *bool
)

func init() {
	rootCmd = NewRootCmd()
}

func Execute() error {
	return rootCmd.Execute()
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexdump [flags] <path>",
		Short: "print a hex dump of a file",
		Long: "hexdump prints every byte of a file as two uppercase hex digits,\n" +
			"16 bytes per row, each row labelled with its offset.",
		Example: "  hexdump ./a.bin\n" +
			"  hexdump --strategy text --code-page IBM437 ./a.bin",
		Args:                  cobra.ExactArgs(1),
		RunE:                  rootCmdRun,
		SilenceErrors:         false,
		SilenceUsage:          false,
		DisableFlagsInUseLine: true,
	}

	// flags
	flags := cmd.Flags()
	strategy = flags.StringP("strategy", "s", StrategyBinary, "how bytes are read: binary or text")
	codePage = flags.StringP("code-page", "c", "IBM437", "single-byte code page paired with 7-bit ASCII by the text strategy")
	verbose = flags.BoolP("verbose", "v", false, "print a summary line to stderr")
	return cmd
}

func rootCmdRun(cmd *cobra.Command, args []string) error {
	// arguments are valid from here on, failures are not usage errors
	cmd.SilenceUsage = true

	rec, err := NewRecoverer(*strategy, *codePage)
	if err != nil {
		return err
	}
	seq, err := rec.Recover(args[0])
	if err != nil {
		return err
	}
	if *verbose {
		cmd.PrintErrf("%s: %s via %s\n", args[0], sizeString(seq.Len()), rec.Name())
	}
	return FormatTo(cmd.OutOrStdout(), seq)
}

// sizeString gives the exact byte count, with a KiB/MiB figure once that
// reads better.
func sizeString(n int) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d bytes", n)
	case n < 1<<20:
		return fmt.Sprintf("%d bytes (%.1f KiB)", n, float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d bytes (%.1f MiB)", n, float64(n)/(1<<20))
	}
}
