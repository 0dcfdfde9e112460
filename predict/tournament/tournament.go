/* tournament.go
 * Contains the Tournament type, a binary probability tree representing some power of 2 teams in a
 * single-elimination bracket. Leaves hold probability distributions over the teams that could
 * occupy the slot; playing a round convolves sibling leaves through a TeamComparator
 */

package tournament

import (
	"errors"
	"fmt"

	"ncaa-predictions/predict/comparators"
	"ncaa-predictions/predict/shared"
)

// ErrEmptyBracket is returned when a tournament is constructed with no teams
var ErrEmptyBracket = errors.New("tournament: must have at least one team")

// ErrBracketSize is returned when the team count is not a power of 2. Brackets with byes must be
// built explicitly with NewMatch/NewLeaf and Normalize, never auto-padded
var ErrBracketSize = errors.New("tournament: number of teams must be a power of 2")

// Tournament is a binary tree. A leaf carries the GameResult distribution for one bracket slot;
// an internal node is an ordered pair of sub-brackets. A bye is one leaf referenced as both
// children of its parent, so the duplicated slot can never diverge from itself.
type Tournament struct {
	Left   *Tournament
	Right  *Tournament
	Result shared.GameResult
}

// GameOutcome reports one reduced pairing of a round, for upset reporting and bracket rendering.
// Winner and Loser are the most probable occupants of each side after the game; the upset flag is
// set when the winner's seed number is greater than the loser's.
type GameOutcome struct {
	Winner      shared.Team
	Loser       shared.Team
	Probability float64
	Upset       bool
}

// NewLeaf creates a leaf slot holding the given distribution
func NewLeaf(result shared.GameResult) *Tournament {
	return &Tournament{Result: result}
}

// NewMatch creates an internal node pairing two sub-brackets
func NewMatch(left, right *Tournament) *Tournament {
	return &Tournament{Left: left, Right: right}
}

// IsLeaf reports whether this node is a slot rather than a pairing
func (t *Tournament) IsLeaf() bool {
	return t.Result != nil
}

// Function to build a tournament from teams entered like they would appear in the bracket
// Preconditions: Receives the teams in bracket order with their seeds already assigned
// Postconditions: Returns a balanced tree pairing adjacent teams recursively, ErrEmptyBracket for
// zero teams or ErrBracketSize for a non power of 2 count. Repeated identical teams represent byes
func FromTeamList(teams []shared.Team) (*Tournament, error) {
	if len(teams) == 0 {
		return nil, ErrEmptyBracket
	}
	if len(teams)&(len(teams)-1) != 0 {
		return nil, ErrBracketSize
	}

	nodes := make([]*Tournament, len(teams))
	for i, team := range teams {
		// A repeated team is a bye: reuse the previous leaf so the pair shares one node
		if i > 0 && team == teams[i-1] {
			nodes[i] = nodes[i-1]
			continue
		}
		nodes[i] = NewLeaf(shared.NewGameResult(team))
	}

	for len(nodes) > 1 {
		paired := make([]*Tournament, 0, len(nodes)/2)
		for i := 0; i < len(nodes); i += 2 {
			paired = append(paired, NewMatch(nodes[i], nodes[i+1]))
		}
		nodes = paired
	}
	return nodes[0], nil
}

// Function to build a tournament from team names, assigning the canonical recursive seed ordering
// within each quadrant. For 64 teams the seed ordering per quadrant is
// [1, 16, 8, 9, 4, 13, 5, 12, 2, 15, 7, 10, 3, 14, 6, 11]. This is different from the NCAA's
// printable bracket ordering, which is not recursive. The NCAA ordering is dumb.
// Preconditions: Receives the team names in bracket order; the count must be a power of 2 and at
// least the number of quadrants (4)
// Postconditions: Returns the seeded tournament tree, or a structural error
func FromNameList(names []string) (*Tournament, error) {
	const quadrants = 4

	if len(names) == 0 {
		return nil, ErrEmptyBracket
	}
	if len(names)&(len(names)-1) != 0 {
		return nil, ErrBracketSize
	}
	if len(names) < quadrants {
		return nil, fmt.Errorf("%w: must have at least %d teams", ErrBracketSize, quadrants)
	}

	quadrantSize := len(names) / quadrants
	seeds := seedOrdering(quadrantSize)

	teams := make([]shared.Team, len(names))
	for quadrant := 0; quadrant < quadrants; quadrant++ {
		for i, seed := range seeds {
			pos := quadrant*quadrantSize + i
			teams[pos] = shared.Team{Name: names[pos], Seed: seed}
		}
	}

	return FromTeamList(teams)
}

// seedOrdering generates the recursive seed ordering for one quadrant: seed n is followed by
// size-n+1, halving recursively down to the 1 seed
func seedOrdering(size int) []int {
	if size == 1 {
		return []int{1}
	}
	half := seedOrdering(size / 2)
	ordering := make([]int, 0, size)
	for _, seed := range half {
		ordering = append(ordering, seed, size-seed+1)
	}
	return ordering
}

// Depth returns the longest leaf-to-root path length in edges
func (t *Tournament) Depth() int {
	if t.IsLeaf() {
		return 0
	}
	left, right := t.Left.Depth(), t.Right.Depth()
	if left > right {
		return left + 1
	}
	return right + 1
}

// Normalize pads every leaf that sits short of the tree's maximum depth by re-referencing its
// subtree as both children of a new parent until all leaves share the max depth. The shared
// reference is what makes the bye carry its probability mass through unchanged
// Postconditions: Returns the normalized tree; every leaf-to-root path has the same length
func (t *Tournament) Normalize() *Tournament {
	return pad(t, t.Depth())
}

func pad(t *Tournament, depth int) *Tournament {
	if t.IsLeaf() {
		node := t
		for i := 0; i < depth; i++ {
			node = NewMatch(node, node)
		}
		return node
	}
	return NewMatch(pad(t.Left, depth-1), pad(t.Right, depth-1))
}

// Function to play a single round of the tournament
// Preconditions: Receives a comparator; the tree should be normalized so every pairing is ready
// at the same time
// Postconditions: Returns a new tree in which every node whose two children were leaves has been
// reduced to a single leaf via distribution convolution, plus the outcomes of the reduced games.
// Nodes not yet reduced to sibling leaves recurse unchanged; the receiver is never mutated
func (t *Tournament) PlayRound(comparator comparators.TeamComparator) (*Tournament, []GameOutcome, error) {
	if t.IsLeaf() {
		return t, nil, nil
	}

	if t.Left.IsLeaf() && t.Right.IsLeaf() {
		result, err := convolve(t.Left.Result, t.Right.Result, comparator)
		if err != nil {
			return nil, nil, err
		}

		// A shared bye leaf plays itself; that is not a real game to report
		if t.Left == t.Right {
			return NewLeaf(result), nil, nil
		}

		winner := result.MostProbable()
		loser := t.Left.Result.MostProbable()
		if loser.Name == winner.Name {
			loser = t.Right.Result.MostProbable()
		}

		outcome := GameOutcome{
			Winner:      winner,
			Loser:       loser,
			Probability: result[winner.Name].Probability,
			Upset:       winner.Seed > loser.Seed,
		}
		return NewLeaf(result), []GameOutcome{outcome}, nil
	}

	left, leftOutcomes, err := t.Left.PlayRound(comparator)
	if err != nil {
		return nil, nil, err
	}

	// A shared bye subtree must stay shared after the round, or the next round would see two
	// distinct leaves and report the bye team beating itself
	if t.Left == t.Right {
		return NewMatch(left, left), leftOutcomes, nil
	}

	right, rightOutcomes, err := t.Right.PlayRound(comparator)
	if err != nil {
		return nil, nil, err
	}
	return NewMatch(left, right), append(leftOutcomes, rightOutcomes...), nil
}

// convolve folds two slot distributions into one under the comparator: each team's output mass is
// its own probability times the probability it beats a draw from the opposing distribution. A
// team can appear on both sides (after a bye), in which case its contributions add
func convolve(a, b shared.GameResult, comparator comparators.TeamComparator) (shared.GameResult, error) {
	out := make(shared.GameResult, len(a)+len(b))

	add := func(own, opp shared.GameResult) error {
		for name, chance := range own {
			if chance.Probability == 0 {
				continue
			}
			beatOpp := 0.0
			for oppName, oppChance := range opp {
				p, err := comparator.Compare(
					shared.Team{Name: name, Seed: chance.Seed},
					shared.Team{Name: oppName, Seed: oppChance.Seed},
				)
				if err != nil {
					return err
				}
				beatOpp += oppChance.Probability * p
			}

			entry := out[name]
			entry.Seed = chance.Seed
			entry.Probability += chance.Probability * beatOpp
			out[name] = entry
		}
		return nil
	}

	if err := add(a, b); err != nil {
		return nil, err
	}
	if err := add(b, a); err != nil {
		return nil, err
	}
	return out, nil
}

// Winner returns the most probable overall champion. Before the tournament has been reduced to a
// single leaf this is the favorite of the leftmost remaining slot
func (t *Tournament) Winner() shared.Team {
	if t.IsLeaf() {
		return t.Result.MostProbable()
	}
	return t.Left.Winner()
}

// RoundWinners returns the most probable team of every current leaf, left to right
func (t *Tournament) RoundWinners() []shared.Team {
	if t.IsLeaf() {
		return []shared.Team{t.Result.MostProbable()}
	}
	return append(t.Left.RoundWinners(), t.Right.RoundWinners()...)
}

// Leaves returns the current leaf distributions, left to right. This is the read access the
// bracket consumer renders from
func (t *Tournament) Leaves() []shared.GameResult {
	if t.IsLeaf() {
		return []shared.GameResult{t.Result}
	}
	return append(t.Left.Leaves(), t.Right.Leaves()...)
}
