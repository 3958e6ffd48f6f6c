package params

import (
	"encoding/json"
	"math"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

// Parameter names recognized by the rule table.
const (
	NClusters      = "n_clusters"
	MaxIter        = "max_iter"
	RandomState    = "random_state"
	Init           = "init"
	CovarianceType = "covariance_type"
)

// Params maps parameter names to raw request values.
type Params map[string]any

// Rule reports whether a parameter value is acceptable.
type Rule func(v any) bool

// namedRule keeps rules in a fixed evaluation order so the first
// failing parameter is deterministic.
type namedRule struct {
	name  string
	check Rule
}

var baseRules = []namedRule{
	{NClusters, intBetween(algorithm.MinClusters, algorithm.MaxClusters)},
	{MaxIter, intBetween(algorithm.MinMaxIter, algorithm.MaxMaxIter)},
	{RandomState, isInt},
}

var rules = map[algorithm.Algorithm][]namedRule{
	algorithm.KMeans: append(append([]namedRule{}, baseRules...),
		namedRule{Init, oneOf(string(algorithm.InitKMeansPlusPlus), string(algorithm.InitRandom))},
	),
	algorithm.GMM: append(append([]namedRule{}, baseRules...),
		namedRule{CovarianceType, oneOf(
			string(algorithm.CovFull), string(algorithm.CovTied),
			string(algorithm.CovDiag), string(algorithm.CovSpherical),
		)},
	),
}

// Validate checks the parameters present in p against the rules for tag.
// Absent parameters are not checked; unknown names are ignored.
// Validation stops at the first failing parameter.
func Validate(tag string, p Params) error {
	ruleSet, ok := rules[algorithm.Algorithm(tag)]
	if !ok {
		return domain.NewValidationError("unsupported algorithm: %s", tag)
	}
	for _, r := range ruleSet {
		v, present := p[r.name]
		if present && !r.check(v) {
			return domain.NewValidationError("invalid value for parameter %s", r.name)
		}
	}
	return nil
}

// Parse validates p and resolves it into a concrete algorithm configuration,
// filling absent parameters with their defaults.
func Parse(tag string, p Params) (algorithm.Config, error) {
	if err := Validate(tag, p); err != nil {
		return nil, err
	}

	switch algorithm.Algorithm(tag) {
	case algorithm.KMeans:
		cfg := algorithm.DefaultKMeans()
		cfg.K = intOr(p, NClusters, cfg.K)
		cfg.MaxIter = intOr(p, MaxIter, cfg.MaxIter)
		cfg.Seed = int64Or(p, RandomState, cfg.Seed)
		if s, ok := p[Init].(string); ok {
			cfg.Init = algorithm.Init(s)
		}
		return cfg, nil
	default:
		cfg := algorithm.DefaultGMM()
		cfg.K = intOr(p, NClusters, cfg.K)
		cfg.MaxIter = intOr(p, MaxIter, cfg.MaxIter)
		cfg.Seed = int64Or(p, RandomState, cfg.Seed)
		if s, ok := p[CovarianceType].(string); ok {
			cfg.CovarianceType = algorithm.CovarianceType(s)
		}
		return cfg, nil
	}
}

func isInt(v any) bool {
	_, ok := toInt64(v)
	return ok
}

func intBetween(lo, hi int64) Rule {
	return func(v any) bool {
		n, ok := toInt64(v)
		return ok && n >= lo && n <= hi
	}
}

func oneOf(allowed ...string) Rule {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

// toInt64 accepts Go integer kinds and integral json.Number values.
// Floats, strings and booleans are not integers.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func intOr(p Params, name string, def int) int {
	if n, ok := toInt64(p[name]); ok {
		return int(n)
	}
	return def
}

func int64Or(p Params, name string, def int64) int64 {
	if n, ok := toInt64(p[name]); ok {
		return n
	}
	return def
}
