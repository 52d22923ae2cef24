/* navigator.go
 * Contains the read-only queries over a bracket index: game lookup, path to the championship and sub-bracket
 * listing
 */

package bracket

import (
	"errors"
	"fmt"

	"bracket-bot/api/shared"
)

var (
	// ErrGameNotFound is returned when no game matches a round and winner lookup
	ErrGameNotFound = errors.New("no game matching that round and winning team")
)

// FindGameByRoundAndWinner returns the first game in storage order with the given round and exact winner name
// Preconditions: None
// Postconditions: Returns the matching game, or ErrGameNotFound. Repeated calls return the same record
func (idx *Index) FindGameByRoundAndWinner(round int, winner string) (*shared.GameRecord, error) {
	for _, g := range idx.games {
		if g.Round == round && g.WinningTeam == winner {
			return g, nil
		}
	}
	return nil, fmt.Errorf("round %d, winner %q: %w", round, winner, ErrGameNotFound)
}

// PathToChampion returns the games the winner of start won before start, earliest round first. start itself is
// not included.
func (idx *Index) PathToChampion(start *shared.GameRecord) []*shared.GameRecord {
	var path []*shared.GameRecord
	idx.appendPath(start, &path)
	return path
}

func (idx *Index) appendPath(g *shared.GameRecord, path *[]*shared.GameRecord) {
	for _, f := range idx.Feeders(g) {
		if f.WinningTeam != g.WinningTeam {
			continue
		}
		idx.appendPath(f, path)
		*path = append(*path, f)
	}
}

// Subtree returns root and every game reachable from it through feeder links, root first, each subtree listed in
// feeder order
func (idx *Index) Subtree(root *shared.GameRecord) []*shared.GameRecord {
	var out []*shared.GameRecord
	visited := make(map[*shared.GameRecord]bool)
	var walk func(g *shared.GameRecord)
	walk = func(g *shared.GameRecord) {
		if visited[g] {
			return
		}
		visited[g] = true
		out = append(out, g)
		for _, f := range idx.Feeders(g) {
			walk(f)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// CountByRound returns the number of games per round
func CountByRound(games []*shared.GameRecord) map[int]int {
	counts := make(map[int]int)
	for _, g := range games {
		counts[g.Round]++
	}
	return counts
}
