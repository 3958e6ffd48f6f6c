package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	clusterlab "github.com/kailas-cloud/clusterlab/pkg/sdk"
)

type runFlags struct {
	dataset       string
	upload        string
	algorithm     string
	params        []string
	noStandard    bool
	noMetrics     bool
	maxUploadRows int
}

// runOutput mirrors the HTTP response body.
type runOutput struct {
	Success        bool        `json:"success"`
	Data           [][]float64 `json:"data,omitempty"`
	Labels         []int       `json:"labels"`
	FeatureNames   []string    `json:"feature_names"`
	ClusterCenters [][]float64 `json:"cluster_centers"`
	DBIndex        *float64    `json:"db_index"`
	Silhouette     *float64    `json:"silhouette"`
	RunTime        float64     `json:"run_time"`
}

func newRunCmd() *cobra.Command {
	var f runFlags
	var withData bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster a built-in or uploaded dataset and print the result as JSON",
		Example: `  clusterctl run --dataset iris --param n_clusters=3
  clusterctl run --algorithm gmm --param covariance_type=diag --upload records.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}

			client, err := clusterlab.New(
				clusterlab.WithQualityMetrics(!f.noMetrics),
				clusterlab.WithMaxUploadRows(f.maxUploadRows),
			)
			if err != nil {
				return err
			}

			res, err := client.Cluster(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := runOutput{
				Success:        true,
				Labels:         res.Labels,
				FeatureNames:   res.FeatureNames,
				ClusterCenters: res.ClusterCenters,
				DBIndex:        res.DBIndex,
				Silhouette:     res.Silhouette,
				RunTime:        res.RunTime.Seconds(),
			}
			if withData {
				out.Data = res.Data
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.dataset, "dataset", "d", "", "built-in dataset name (iris, wine)")
	fl.StringVarP(&f.upload, "upload", "u", "", "JSON file with an array of records to cluster")
	fl.StringVarP(&f.algorithm, "algorithm", "a", string(clusterlab.KMeans), "kmeans or gmm")
	fl.StringArrayVarP(&f.params, "param", "p", nil, "algorithm parameter as name=value (repeatable)")
	fl.BoolVar(&f.noStandard, "no-standardize", false, "cluster raw features")
	fl.BoolVar(&f.noMetrics, "no-metrics", false, "skip Davies-Bouldin and silhouette scoring")
	fl.IntVar(&f.maxUploadRows, "max-upload-rows", 100_000, "maximum number of uploaded records")
	fl.BoolVar(&withData, "with-data", false, "include the feature matrix in the output")
	return cmd
}

func (f *runFlags) request() (clusterlab.Request, error) {
	p, err := parseParams(f.params)
	if err != nil {
		return clusterlab.Request{}, err
	}
	req := clusterlab.Request{
		Dataset:     f.dataset,
		Algorithm:   clusterlab.Algorithm(f.algorithm),
		Params:      p,
		Standardize: clusterlab.Bool(!f.noStandard),
	}
	if f.upload != "" {
		raw, err := os.ReadFile(f.upload)
		if err != nil {
			return clusterlab.Request{}, fmt.Errorf("read upload: %w", err)
		}
		req.UploadedData = raw
		if req.Dataset == "" {
			req.Dataset = "uploaded"
		}
	}
	return req, nil
}

// parseParams turns name=value pairs into Params. Integral values become
// ints; everything else stays a string.
func parseParams(pairs []string) (clusterlab.Params, error) {
	p := clusterlab.Params{}
	for _, kv := range pairs {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q, expected name=value", kv)
		}
		value = strings.TrimSpace(value)
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			p[name] = n
		} else {
			p[name] = value
		}
	}
	return p, nil
}
