/* models_test.go
 * Contains unit tests for the game record helpers
 */

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinnerRank(t *testing.T) {
	g := &GameRecord{Team1Name: "Baylor", Team1Rank: 1, Team2Name: "Hartford", Team2Rank: 16, WinningTeam: "Baylor"}
	assert.Equal(t, 1, g.WinnerRank())

	g.WinningTeam = "Hartford"
	assert.Equal(t, 16, g.WinnerRank())

	g.WinningTeam = "Gonzaga"
	assert.Equal(t, 0, g.WinnerRank())
}
