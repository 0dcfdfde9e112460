/* options.go
 * Contains the Options struct holding every model tunable and its defaults
 */

package comparators

// Options holds all model parameterization values. Zero values are replaced by the matching
// default during building, so callers can start from DefaultOptions() and override selectively.
type Options struct {
	// PageRank parameters
	Alpha      float64 // Damping factor; measure of randomness in PageRank (default: 0.85)
	Iterations int     // Power iteration count, no convergence check (default: 10000)

	// Elo parameters
	InitialRating float64 // Rating every team starts the season on (default: 1750)

	// Bradley-Terry parameters
	Rounds int // Fixed-point update rounds (default: 1)

	// Warm start: how many prior seasons to fold into the initial state (default: 0, cold start).
	// The look back is an explicit loop, clipped at the first year with no stored summary.
	WarmStartYears int

	// Graph distance sampling bounds. Exhaustive path enumeration is combinatorially infeasible
	// on a full season graph, so the resistance estimate only sees paths within these bounds.
	MaxPaths      int // Paths collected per source before the traversal stops (default: 10000)
	MaxPathLength int // Maximum edges in a sampled path (default: 6)

	// Seed comparator
	SeedStdev float64 // Latent ability spread (default: population stdev of seeds 1..16)

	// Hybrid: the registry names of the wrapped models (default: pagerank, elo, bradleyterry)
	Submodels []string
}

// DefaultOptions returns the default model parameterization values
func DefaultOptions() Options {
	return Options{
		Alpha:          0.85,  // Google is rumored to use alpha=.85
		Iterations:     10000, // ~30x the number of Division I teams, enough for rank order to stabilize
		InitialRating:  1750,
		Rounds:         1,
		WarmStartYears: 0,
		MaxPaths:       10000,
		MaxPathLength:  6,
		SeedStdev:      0, // 0 means "use DefaultSeedStdev()"
		Submodels:      []string{ModelPageRank, ModelElo, ModelBradleyTerry},
	}
}

// withDefaults fills any unset field with its default so model code never sees a zero tunable
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.Alpha <= 0 || o.Alpha >= 1 {
		o.Alpha = defaults.Alpha
	}
	if o.Iterations <= 0 {
		o.Iterations = defaults.Iterations
	}
	if o.InitialRating <= 0 {
		o.InitialRating = defaults.InitialRating
	}
	if o.Rounds <= 0 {
		o.Rounds = defaults.Rounds
	}
	if o.WarmStartYears < 0 {
		o.WarmStartYears = 0
	}
	if o.MaxPaths <= 0 {
		o.MaxPaths = defaults.MaxPaths
	}
	if o.MaxPathLength <= 0 {
		o.MaxPathLength = defaults.MaxPathLength
	}
	if len(o.Submodels) == 0 {
		o.Submodels = defaults.Submodels
	}
	return o
}
