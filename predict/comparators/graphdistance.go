/* graphdistance.go
 * Contains the graph distance comparators. Both variants build a directed "win graph" whose edge
 * weights count wins, then estimate a pairwise distance between teams: path-weight runs Dijkstra
 * over inverted edge weights, resistance treats edges as electrical conductances and estimates
 * the effective resistance from a bounded sample of paths. Exhaustive path enumeration is
 * combinatorially infeasible on a season graph with hundreds of nodes, so the resistance figure
 * is an approximation by construction, a modeling limitation rather than a bug.
 */

package comparators

import (
	"math"

	"ncaa-predictions/predict/shared"
	"ncaa-predictions/predict/store"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
	"github.com/sirupsen/logrus"
)

// ModelPathWeight is the registry name of the shortest-path variant
const ModelPathWeight = "pathweight"

// ModelResistance is the registry name of the effective-resistance variant
const ModelResistance = "resistance"

// pathWeightScale converts the inverted edge weights 1/n^2 into the integer weights the graph
// library works with. Compare only ever uses distance ratios, so the scale cancels out.
const pathWeightScale = 1e6

// fallbackConfidence is the probability assigned to the side with the only known path direction
const fallbackConfidence = 0.99

func init() {
	registerBuilder(ModelPathWeight, func(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
		return buildGraphDistance(ModelPathWeight, deps, year, division, opts)
	})
	registerBuilder(ModelResistance, func(deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
		return buildGraphDistance(ModelResistance, deps, year, division, opts)
	})
}

// GraphDistanceComparator compares two teams by the ratio of their pairwise distances in the win
// graph. The distance table is partial: pairs the sampling never connected have no entry, and
// Compare falls back to a heuristic for them instead of failing.
type GraphDistanceComparator struct {
	model     string
	distances map[string]map[string]float64
}

func (c *GraphDistanceComparator) Name() string { return c.model }

// Compare returns dist(b->a) / (dist(a->b) + dist(b->a)): the closer a is to b along winning
// paths, the likelier a wins. Fallback policy when the sampling found no path: if neither
// direction is known the seed-ratio heuristic decides; if exactly one direction is known, the
// side with the known (shorter) path gets a fixed high-confidence probability
// Preconditions: Receives two teams; unknown teams are served by the fallback, never an error
// Postconditions: Returns the probability that teamA beats teamB
func (c *GraphDistanceComparator) Compare(teamA shared.Team, teamB shared.Team) (float64, error) {
	if teamA.Name == teamB.Name {
		return 0.5, nil
	}

	distAB, okAB := c.lookup(teamA.Name, teamB.Name)
	distBA, okBA := c.lookup(teamB.Name, teamA.Name)

	switch {
	case okAB && okBA:
		return distBA / (distAB + distBA), nil
	case okAB:
		return fallbackConfidence, nil
	case okBA:
		return 1 - fallbackConfidence, nil
	}

	logrus.WithFields(logrus.Fields{
		"model": c.model,
		"teamA": teamA.Name,
		"teamB": teamB.Name,
	}).Warn("no sampled path between teams, falling back to seed ratio")

	total := float64(teamA.Seed + teamB.Seed)
	if total == 0 {
		return 0.5, nil
	}
	return float64(teamB.Seed) / total, nil
}

func (c *GraphDistanceComparator) lookup(from, to string) (float64, bool) {
	row, ok := c.distances[from]
	if !ok {
		return 0, false
	}
	d, ok := row[to]
	return d, ok
}

// buildGraphDistance fits either variant, persisting the pairwise distance table so repeated
// builds reload it
func buildGraphDistance(model string, deps BuildDeps, year int, division string, opts Options) (TeamComparator, error) {
	opts = opts.withDefaults()

	artifact, err := loadArtifact(deps, year, division, model)
	if err != nil {
		return nil, err
	}
	if artifact == nil {
		summary, err := deps.Summaries.Get(year, division)
		if err != nil {
			return nil, err
		}

		graph, counts, err := buildWinGraph(summary)
		if err != nil {
			return nil, err
		}

		var distances map[string]map[string]float64
		if model == ModelPathWeight {
			distances, err = pathWeightDistances(summary.TeamUniverse(), counts)
		} else {
			distances, err = resistanceDistances(graph, counts, opts.MaxPaths, opts.MaxPathLength)
		}
		if err != nil {
			return nil, err
		}

		artifact = &store.ModelArtifact{
			Year:      year,
			Division:  division,
			Model:     model,
			Distances: flattenDistances(distances),
		}
		if err := saveArtifact(deps, artifact); err != nil {
			return nil, err
		}
	}

	return &GraphDistanceComparator{model: model, distances: unflattenDistances(artifact.Distances)}, nil
}

// buildWinGraph constructs the directed win graph: one vertex per universe team, one edge per
// beaten opponent whose weight counts the wins
func buildWinGraph(summary shared.SeasonSummary) (*core.Graph, map[string]map[string]int64, error) {
	teams := summary.TeamUniverse()
	index := universeIndex(teams)

	counts := make(map[string]map[string]int64, len(teams))
	for _, game := range summary.Games {
		if !qualifies(game, index) {
			continue
		}
		if counts[game.TeamA] == nil {
			counts[game.TeamA] = make(map[string]int64)
		}
		counts[game.TeamA][game.TeamB]++
	}

	graph := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, name := range teams {
		if err := graph.AddVertex(name); err != nil {
			return nil, nil, err
		}
	}
	for from, row := range counts {
		for to, wins := range row {
			if _, err := graph.AddEdge(from, to, wins); err != nil {
				return nil, nil, err
			}
		}
	}

	return graph, counts, nil
}

// pathWeightDistances inverts each win count into an edge weight 1/n^2 (more wins means a
// shorter hop) and runs a single-source shortest path computation from every team. The squared
// part just makes the model more confident in its predictions.
func pathWeightDistances(teams []string, counts map[string]map[string]int64) (map[string]map[string]float64, error) {
	inverted := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, name := range teams {
		if err := inverted.AddVertex(name); err != nil {
			return nil, err
		}
	}
	for from, row := range counts {
		for to, wins := range row {
			// Integer division truncates (3 wins stores 111111, not 1e6/9); the error is at
			// most 1e-6 per hop and carries into the persisted float distances
			weight := int64(pathWeightScale) / (wins * wins)
			if weight < 1 {
				weight = 1
			}
			if _, err := inverted.AddEdge(from, to, weight); err != nil {
				return nil, err
			}
		}
	}

	distances := make(map[string]map[string]float64, len(teams))
	for _, from := range teams {
		dist, _, err := dijkstra.Dijkstra(inverted, dijkstra.Source(from))
		if err != nil {
			return nil, err
		}
		for to, d := range dist {
			if to == from || d == math.MaxInt64 {
				continue
			}
			if distances[from] == nil {
				distances[from] = make(map[string]float64)
			}
			distances[from][to] = float64(d) / pathWeightScale
		}
	}

	return distances, nil
}

// resistanceDistances treats each edge as a conductance equal to its win count and estimates the
// pairwise effective resistance from a bounded depth-first path sample: every sampled path
// contributes its conductance in parallel, R(s,t) = 1 / sum over paths of 1/r(path). The
// traversal from each source stops after maxPaths paths or once a path exceeds maxLen edges.
func resistanceDistances(graph *core.Graph, counts map[string]map[string]int64, maxPaths, maxLen int) (map[string]map[string]float64, error) {
	type frame struct {
		node       string
		path       []string
		resistance float64
	}

	distances := make(map[string]map[string]float64)
	for _, source := range graph.Vertices() {
		conductance := make(map[string]float64)

		stack := []frame{{node: source, path: []string{source}}}
		collected := 0
		for len(stack) > 0 && collected < maxPaths {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.node != source {
				conductance[top.node] += 1 / top.resistance
				collected++
			}
			if len(top.path)-1 >= maxLen {
				continue
			}

			neighbors, err := graph.NeighborIDs(top.node)
			if err != nil {
				return nil, err
			}
			for _, next := range neighbors {
				if containsNode(top.path, next) {
					continue
				}
				wins := counts[top.node][next]
				if wins == 0 {
					continue
				}
				path := append(append([]string{}, top.path...), next)
				stack = append(stack, frame{
					node:       next,
					path:       path,
					resistance: top.resistance + 1/float64(wins),
				})
			}
		}

		for target, c := range conductance {
			if distances[source] == nil {
				distances[source] = make(map[string]float64)
			}
			distances[source][target] = 1 / c
		}
	}

	return distances, nil
}

func containsNode(path []string, node string) bool {
	for _, p := range path {
		if p == node {
			return true
		}
	}
	return false
}

// flattenDistances converts the nested distance table into the persistable record list
func flattenDistances(distances map[string]map[string]float64) []store.DistanceRecord {
	var records []store.DistanceRecord
	for from, row := range distances {
		for to, d := range row {
			records = append(records, store.DistanceRecord{From: from, To: to, Distance: d})
		}
	}
	return records
}

// unflattenDistances rebuilds the nested distance table from persisted records
func unflattenDistances(records []store.DistanceRecord) map[string]map[string]float64 {
	distances := make(map[string]map[string]float64)
	for _, record := range records {
		if distances[record.From] == nil {
			distances[record.From] = make(map[string]float64)
		}
		distances[record.From][record.To] = record.Distance
	}
	return distances
}
