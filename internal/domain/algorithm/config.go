package algorithm

// Config is the tagged algorithm configuration: exactly one of
// KMeansConfig or GMMConfig.
type Config interface {
	Algorithm() Algorithm
	Clusters() int
	isConfig()
}

// KMeansConfig configures centroid partitioning.
type KMeansConfig struct {
	K       int
	Init    Init
	MaxIter int
	Seed    int64
}

// Algorithm returns KMeans.
func (KMeansConfig) Algorithm() Algorithm { return KMeans }

// Clusters returns k.
func (c KMeansConfig) Clusters() int { return c.K }

func (KMeansConfig) isConfig() {}

// GMMConfig configures a Gaussian mixture.
type GMMConfig struct {
	K              int
	CovarianceType CovarianceType
	MaxIter        int
	Seed           int64
}

// Algorithm returns GMM.
func (GMMConfig) Algorithm() Algorithm { return GMM }

// Clusters returns the number of components.
func (c GMMConfig) Clusters() int { return c.K }

func (GMMConfig) isConfig() {}

// DefaultKMeans returns the k-means configuration used when no parameters are given.
func DefaultKMeans() KMeansConfig {
	return KMeansConfig{
		K:       DefaultClusters,
		Init:    DefaultInit,
		MaxIter: DefaultMaxIter,
		Seed:    DefaultSeed,
	}
}

// DefaultGMM returns the mixture configuration used when no parameters are given.
func DefaultGMM() GMMConfig {
	return GMMConfig{
		K:              DefaultClusters,
		CovarianceType: DefaultCovariance,
		MaxIter:        DefaultMaxIter,
		Seed:           DefaultSeed,
	}
}
