/* reviser.go
 * Contains the what-if revision of a game: the winner is changed and the change is carried back through the games
 * the old winner won to get there
 */

package bracket

import (
	"errors"
	"fmt"

	"bracket-bot/api/shared"

	log "github.com/sirupsen/logrus"
)

// MaxRevisionDepth is the number of rounds in a full bracket
const MaxRevisionDepth = shared.ChampionshipRound

// ErrDepthOutOfRange is returned when a revision depth is not between 1 and MaxRevisionDepth
var ErrDepthOutOfRange = errors.New("number of rounds to undo must be between 1 and 6")

// Revise rewrites the outcome of game and the depth-1 rounds before it.
// With depth 1 the winner of game flips to the other team. With a larger depth every feeder that the old winner
// won is revised with depth-1 first, then the slot game's old winner held is taken by that feeder's new winner,
// who also becomes game's winner. Games outside that chain are not modified.
// Preconditions: game is a record held by idx
// Postconditions: records are mutated in place and the index is rebuilt to reflect them. Returns
// ErrDepthOutOfRange, with nothing modified, when depth is outside 1..6
func (idx *Index) Revise(game *shared.GameRecord, depth int) error {
	if depth < 1 || depth > MaxRevisionDepth {
		return fmt.Errorf("depth %d: %w", depth, ErrDepthOutOfRange)
	}
	before := game.WinningTeam
	idx.revise(game, depth)
	idx.Rebuild()

	log.WithFields(log.Fields{
		"round":      game.Round,
		"game":       game.GameNumber,
		"depth":      depth,
		"old_winner": before,
		"new_winner": game.WinningTeam,
	}).Info("game revised")
	return nil
}

func (idx *Index) revise(game *shared.GameRecord, depth int) {
	if depth == 1 {
		game.FlipWinner()
		return
	}

	oldWinner := game.WinningTeam
	for _, f := range idx.Feeders(game) {
		if f.WinningTeam != oldWinner {
			continue
		}
		idx.revise(f, depth-1)
		game.ReplaceWinner(oldWinner, f.WinningTeam)
	}
}
