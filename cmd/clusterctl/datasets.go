package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	clusterlab "github.com/kailas-cloud/clusterlab/pkg/sdk"
)

func newDatasetsCmd() *cobra.Command {
	var showFeatures bool

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the built-in datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := clusterlab.New()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSAMPLES\tFEATURES\tDESCRIPTION")
			for _, d := range client.Datasets(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", d.Name, d.Samples, len(d.FeatureNames), d.Description)
				if showFeatures {
					fmt.Fprintf(tw, "\t\t\t%s\n", strings.Join(d.FeatureNames, ", "))
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&showFeatures, "features", false, "also print feature names")
	return cmd
}
