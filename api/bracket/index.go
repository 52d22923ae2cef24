/* index.go
 * Contains the bracket index: for every game, the games of the previous round whose winner played in it
 */

package bracket

import (
	"bracket-bot/api/shared"

	log "github.com/sirupsen/logrus"
)

type winnerKey struct {
	round  int
	winner string
}

// Index maps every game to its feeders. A feeder of G is a game F with F.Round == G.Round-1 whose winner is one of
// G's two teams. The index holds the same *GameRecord values as the list it was built from, it never copies them.
//
// Feeder lists are in storage order. When two games of the same round share a winner (a malformed bracket) both
// are listed as feeders; nothing is deduplicated or rejected.
type Index struct {
	games        []*shared.GameRecord
	position     map[*shared.GameRecord]int
	feeders      map[*shared.GameRecord][]*shared.GameRecord
	championship *shared.GameRecord
}

// NewIndex builds the feeder index over games
// Preconditions: games is the loaded game list, in file order
// Postconditions: Returns an index whose entries reference the records in games
func NewIndex(games []*shared.GameRecord) *Index {
	idx := &Index{games: games}
	idx.Rebuild()
	return idx
}

// Rebuild recomputes every feeder list from the current team and winner names. Must be called after records are
// mutated in a way that changes which games feed which.
func (idx *Index) Rebuild() {
	idx.position = make(map[*shared.GameRecord]int, len(idx.games))
	byWinner := make(map[winnerKey][]*shared.GameRecord)
	for i, g := range idx.games {
		idx.position[g] = i
		if !shared.ValidRound(g.Round) {
			continue
		}
		key := winnerKey{round: g.Round, winner: g.WinningTeam}
		byWinner[key] = append(byWinner[key], g)
	}

	idx.feeders = make(map[*shared.GameRecord][]*shared.GameRecord, len(idx.games))
	skipped := 0
	for _, g := range idx.games {
		if !shared.ValidRound(g.Round) {
			skipped++
			continue
		}
		if g.Round == shared.FirstRound {
			continue
		}
		left := byWinner[winnerKey{round: g.Round - 1, winner: g.Team1Name}]
		var right []*shared.GameRecord
		if g.Team2Name != g.Team1Name {
			right = byWinner[winnerKey{round: g.Round - 1, winner: g.Team2Name}]
		}
		if merged := idx.mergeByPosition(left, right); len(merged) > 0 {
			idx.feeders[g] = merged
		}
	}

	idx.championship = nil
	for _, g := range idx.games {
		if !shared.ValidRound(g.Round) {
			continue
		}
		if g.Round == shared.ChampionshipRound {
			idx.championship = g
			break
		}
		if idx.championship == nil || g.Round > idx.championship.Round {
			idx.championship = g
		}
	}

	log.WithFields(log.Fields{
		"games":         len(idx.games),
		"with_feeders":  len(idx.feeders),
		"invalid_round": skipped,
	}).Debug("bracket index built")
}

// mergeByPosition merges two storage-ordered lists into one storage-ordered list
func (idx *Index) mergeByPosition(a, b []*shared.GameRecord) []*shared.GameRecord {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	out := make([]*shared.GameRecord, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if idx.position[a[i]] < idx.position[b[j]] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// Feeders returns the feeder list of g. The slice is owned by the index and must not be modified
func (idx *Index) Feeders(g *shared.GameRecord) []*shared.GameRecord {
	return idx.feeders[g]
}

// Games returns the indexed game list in storage order
func (idx *Index) Games() []*shared.GameRecord {
	return idx.games
}

// Championship returns the first round 6 game, or the first game of the highest round present when there is no
// round 6 game. Returns nil for an empty index.
func (idx *Index) Championship() *shared.GameRecord {
	return idx.championship
}

// TeamNames returns every distinct team name in first-seen order
func (idx *Index) TeamNames() []string {
	return shared.TeamNames(idx.games)
}
