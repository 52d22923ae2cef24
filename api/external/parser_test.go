/* parser_test.go
 * Contains unit tests for parser.go
 */

package external

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bracket-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Region,Rank 1,Team 1,Score 1,Rank 2,Team 2,Score 2,Winning Team,Round,Game Number\n"

// region ParseGames tests

func TestParseGames_Success(t *testing.T) {
	data := header +
		"Championship,1,Baylor,86,1,Gonzaga,70,Baylor,6,1\n" +
		"South,1,Baylor,79,16,Hartford,55,Baylor,1,1\n"

	games, err := ParseGames(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, shared.GameRecord{
		Region:      "Championship",
		Round:       6,
		GameNumber:  1,
		Team1Name:   "Baylor",
		Team2Name:   "Gonzaga",
		Team1Rank:   1,
		Team2Rank:   1,
		Team1Score:  86,
		Team2Score:  70,
		WinningTeam: "Baylor",
	}, *games[0])
	assert.Equal(t, 16, games[1].Team2Rank)
	assert.Equal(t, "Hartford", games[1].Team2Name)
}

func TestParseGames_EmptyScoreIsUnset(t *testing.T) {
	data := header + "East,2,Ohio State,,15,Oral Roberts,,Oral Roberts,1,7\n"

	games, err := ParseGames(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, shared.ScoreUnset, games[0].Team1Score)
	assert.Equal(t, shared.ScoreUnset, games[0].Team2Score)
	assert.False(t, games[0].HasScores())
}

func TestParseGames_HeaderOnly(t *testing.T) {
	games, err := ParseGames(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestParseGames_InvalidInteger(t *testing.T) {
	data := header +
		"South,1,Baylor,79,16,Hartford,55,Baylor,1,1\n" +
		"South,x,Baylor,79,16,Hartford,55,Baylor,1,2\n"

	_, err := ParseGames(strings.NewReader(data))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, "rank 1", perr.Column)
	assert.Contains(t, err.Error(), "invalid integer")
}

func TestParseGames_InvalidScore(t *testing.T) {
	data := header + "South,1,Baylor,seventy,16,Hartford,55,Baylor,1,1\n"

	_, err := ParseGames(strings.NewReader(data))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "score 1", perr.Column)
}

func TestParseGames_WrongColumnCount(t *testing.T) {
	data := header + "South,1,Baylor,79,16,Hartford,55,Baylor,1,1,extra\n"

	_, err := ParseGames(strings.NewReader(data))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}

func TestParseGames_ShortRowAfterValidRows(t *testing.T) {
	data := header +
		"South,1,Baylor,79,16,Hartford,55,Baylor,1,1\n" +
		"South,8,North Carolina,62,9,Wisconsin,85,Wisconsin,1\n"

	_, err := ParseGames(strings.NewReader(data))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
	assert.Empty(t, perr.Column)
	assert.Contains(t, err.Error(), "wrong number of fields: got 9, want 10")
}

func TestParseGames_HeaderColumnCountIgnored(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"nine columns", "Region,Rank 1,Team 1,Score 1,Rank 2,Team 2,Score 2,Winning Team,Round\n"},
		{"single cell", "NCAA results\n"},
		{"ten columns", header},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.header + "West,1,Gonzaga,98,16,Norfolk State,,Gonzaga,1,25\n"

			games, err := ParseGames(strings.NewReader(data))

			require.NoError(t, err)
			require.Len(t, games, 1)
			assert.Equal(t, "Gonzaga", games[0].WinningTeam)
			assert.Equal(t, shared.ScoreUnset, games[0].Team2Score)
		})
	}
}

func TestParseGames_BareQuoteInTeamName(t *testing.T) {
	data := header + `East,4,Saint Mary"s,70,13,Vermont,60,Saint Mary"s,1,4` + "\n"

	games, err := ParseGames(strings.NewReader(data))

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, `Saint Mary"s`, games[0].Team1Name)
	assert.Equal(t, games[0].Team1Name, games[0].WinningTeam)
}

// endregion

// region LoadGames tests

func TestLoadGames_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"West,1,Gonzaga,98,16,Norfolk State,55,Gonzaga,1,25\n"), 0o600))

	games, err := LoadGames(path)

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Gonzaga", games[0].WinningTeam)
}

func TestLoadGames_MissingFile(t *testing.T) {
	_, err := LoadGames(filepath.Join(t.TempDir(), "missing.csv"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, 0, perr.Line)
}

// endregion
