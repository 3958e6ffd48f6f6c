package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/clusterlab/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clusterctl",
		Short:         "Run clustering jobs and inspect datasets",
		Version:       version.Version + " (" + version.Commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newDatasetsCmd(), newInspectCmd())
	return root
}
