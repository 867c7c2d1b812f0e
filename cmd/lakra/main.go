package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wimarka-uic/lakra-sub002/internal/cli"
	"github.com/wimarka-uic/lakra-sub002/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "lakra",
		Short:   "Lakra - machine translation quality annotation",
		Version: version.String(),
		Long: `Lakra manages the annotation workflow for machine translation quality:
annotators mark error spans and score translations, evaluators review the
submitted work, and every review decision lands in an append-only ledger.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.SentenceCmd())
	rootCmd.AddCommand(cli.AnnotateCmd())
	rootCmd.AddCommand(cli.ReviewCmd())
	rootCmd.AddCommand(cli.EvaluateCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.LogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
