package algorithm

// Algorithm is the clustering family tag carried by a request.
type Algorithm string

// Supported algorithm tags.
const (
	// KMeans is centroid partitioning.
	KMeans Algorithm = "kmeans"
	// GMM is a Gaussian mixture model.
	GMM Algorithm = "gmm"
)

// IsValid checks if the tag is one of the supported values.
func (a Algorithm) IsValid() bool {
	return a == KMeans || a == GMM
}

// Init is the centroid seeding strategy for k-means.
type Init string

// Centroid seeding strategies.
const (
	InitKMeansPlusPlus Init = "k-means++"
	InitRandom         Init = "random"
)

// IsValid checks if the strategy is supported.
func (i Init) IsValid() bool {
	return i == InitKMeansPlusPlus || i == InitRandom
}

// CovarianceType governs the shape of mixture components.
type CovarianceType string

// Mixture covariance shapes.
const (
	// CovFull gives each component its own general covariance matrix.
	CovFull CovarianceType = "full"
	// CovTied shares one general covariance matrix across components.
	CovTied CovarianceType = "tied"
	// CovDiag gives each component its own diagonal covariance.
	CovDiag CovarianceType = "diag"
	// CovSpherical gives each component a single variance.
	CovSpherical CovarianceType = "spherical"
)

// IsValid checks if the covariance type is supported.
func (c CovarianceType) IsValid() bool {
	switch c {
	case CovFull, CovTied, CovDiag, CovSpherical:
		return true
	}
	return false
}

// Defaults applied to parameters absent from a request.
const (
	DefaultAlgorithm      = KMeans
	DefaultClusters       = 3
	DefaultMaxIter        = 100
	DefaultSeed     int64 = 42
	DefaultInit           = InitKMeansPlusPlus
	DefaultCovariance     = CovFull
)

// Parameter bounds.
const (
	MinClusters = 2
	MaxClusters = 10
	MinMaxIter  = 50
	MaxMaxIter  = 5000
)
