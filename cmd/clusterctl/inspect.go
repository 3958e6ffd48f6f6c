package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/clusterlab/internal/inspect"
)

func newInspectCmd() *cobra.Command {
	var opts inspect.Options

	cmd := &cobra.Command{
		Use:     "inspect FILE",
		Short:   "Report missing values per column of a CSV file",
		Example: "  clusterctl inspect cards.csv --skip-rows 1 --encoding gbk",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			rep, err := inspect.Inspect(f, opts)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Missing values (%d rows):\n", rep.Rows)
			return rep.Write(out)
		},
	}
	cmd.Flags().IntVar(&opts.SkipRows, "skip-rows", 0, "records to discard before the header")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "input encoding label, e.g. gbk (default UTF-8)")
	return cmd
}
