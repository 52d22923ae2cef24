/* models.go
 * This file contain the game record and round helpers that are shared between sub packages
 */

package shared

import "fmt"

// ScoreUnset marks a score cell that was empty in the source data
const ScoreUnset = -1

const (
	FirstRound        = 1
	ChampionshipRound = 6
)

var roundNames = map[int]string{
	1: "Round 1",
	2: "Round 2",
	3: "Sweet 16",
	4: "Elite 8",
	5: "Final 4",
	6: "Championship",
}

// ValidRound reports whether r is a round of a 64 team single-elimination bracket
func ValidRound(r int) bool {
	return r >= FirstRound && r <= ChampionshipRound
}

// RoundName returns the conventional name of a round, or "Round N" when it has none
func RoundName(r int) string {
	if name, ok := roundNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Round %d", r)
}

// GameRecord is a single played game. Records are shared by pointer between the loaded list, the bracket index and
// any path or subtree result, so a mutation through one is visible through all of them.
type GameRecord struct {
	Region      string
	Round       int
	GameNumber  int
	Team1Name   string
	Team2Name   string
	Team1Rank   int
	Team2Rank   int
	Team1Score  int
	Team2Score  int
	WinningTeam string
}

// GameSummary is the display projection of a game
type GameSummary struct {
	Round       int
	GameNumber  int
	Team1Name   string
	Team2Name   string
	WinningTeam string
}

func (s GameSummary) String() string {
	return fmt.Sprintf("Round %d, Game %d: %s vs %s. Winner: %s", s.Round, s.GameNumber, s.Team1Name, s.Team2Name,
		s.WinningTeam)
}

// Describe returns the display projection of g
func (g *GameRecord) Describe() GameSummary {
	return GameSummary{
		Round:       g.Round,
		GameNumber:  g.GameNumber,
		Team1Name:   g.Team1Name,
		Team2Name:   g.Team2Name,
		WinningTeam: g.WinningTeam,
	}
}

// WinnerRank returns the seed of the winning team, or 0 if the winner matches neither team
func (g *GameRecord) WinnerRank() int {
	switch g.WinningTeam {
	case g.Team1Name:
		return g.Team1Rank
	case g.Team2Name:
		return g.Team2Rank
	}
	return 0
}

// HasScores reports whether both score cells were present
func (g *GameRecord) HasScores() bool {
	return g.Team1Score != ScoreUnset && g.Team2Score != ScoreUnset
}

// ScoreDifference returns the absolute margin of the game. ok is false when either score is unset
func (g *GameRecord) ScoreDifference() (diff int, ok bool) {
	if !g.HasScores() {
		return 0, false
	}
	diff = g.Team1Score - g.Team2Score
	if diff < 0 {
		diff = -diff
	}
	return diff, true
}

// FlipWinner sets the winner to the other team. Team names are not touched
func (g *GameRecord) FlipWinner() {
	if g.WinningTeam == g.Team1Name {
		g.WinningTeam = g.Team2Name
	} else {
		g.WinningTeam = g.Team1Name
	}
}

// ReplaceWinner swaps the team slot holding oldName for newName and makes newName the winner.
// Returns false, leaving g untouched, when neither slot holds oldName.
func (g *GameRecord) ReplaceWinner(oldName, newName string) bool {
	switch oldName {
	case g.Team1Name:
		g.Team1Name = newName
	case g.Team2Name:
		g.Team2Name = newName
	default:
		return false
	}
	g.WinningTeam = newName
	return true
}

// Clone returns an independent copy of g
func (g *GameRecord) Clone() *GameRecord {
	c := *g
	return &c
}

// CloneGames deep copies a game list, preserving order
func CloneGames(games []*GameRecord) []*GameRecord {
	out := make([]*GameRecord, len(games))
	for i, g := range games {
		out[i] = g.Clone()
	}
	return out
}

// TeamNames returns every distinct team name of games in first-seen order
func TeamNames(games []*GameRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, g := range games {
		for _, name := range []string{g.Team1Name, g.Team2Name} {
			if _, ok := seen[name]; ok || name == "" {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
