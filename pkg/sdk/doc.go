// Package clusterlab runs the clusterlab clustering pipeline in-process.
//
// A Client loads a built-in or uploaded dataset, validates algorithm
// parameters, optionally standardizes features, fits k-means or a Gaussian
// mixture, and scores the result.
//
//	client, _ := clusterlab.New()
//	res, err := client.Cluster(ctx, clusterlab.Request{
//	    Dataset:   "iris",
//	    Algorithm: clusterlab.KMeans,
//	    Params:    clusterlab.Params{"n_clusters": 3},
//	})
//	if errors.Is(err, clusterlab.ErrValidation) {
//	    // bad parameters
//	}
//
// Uploaded data is a JSON array of flat objects with numeric values; the key
// order of the first record becomes the feature order:
//
//	raw := []byte(`[{"h":1.7,"w":65},{"h":1.8,"w":80}]`)
//	res, err := client.Cluster(ctx, clusterlab.Request{UploadedData: raw})
package clusterlab
