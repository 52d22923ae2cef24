/* report.go
 * Contains the text rendering of api results. The shell and the bot print the same sentences
 */

package report

import (
	"fmt"
	"strings"

	"bracket-bot/api/api"
	"bracket-bot/api/logic"
	"bracket-bot/api/shared"
)

const (
	NoSubBrackets  = "This game does not have any sub-brackets."
	NoMatchingGame = "Sorry, no games matching that round number and winning team were found."
)

// Stats renders the overall tournament stats
func Stats(stats logic.TournamentStats) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("Total number of games played in tournament: %d\n", stats.TotalGames))
	res.WriteString("The Final Four contestants are:\n")
	for _, entry := range stats.FinalFour {
		res.WriteString(fmt.Sprintf("        %s region:    %s\n", entry.Region, entry.Team))
	}
	return res.String()
}

// Path renders a path to the championship, one game per line
func Path(path []shared.GameSummary) string {
	var res strings.Builder
	res.WriteString("Path to the championship:\n")
	writeGames(&res, path)
	return res.String()
}

// Region renders the expected winning region
func Region(region string) string {
	return fmt.Sprintf("The region expected to win is: %s\n", region)
}

// Underdog renders the best underdog of a round
func Underdog(u logic.Underdog) string {
	return fmt.Sprintf("The best underdog team is %s which has rank %d.\n", u.Team, u.Rank)
}

// Analyzing renders the header printed before a round is evaluated
func Analyzing(round int) string {
	if round == logic.AllRounds {
		return "Analyzing the overall tournament...\n"
	}
	return fmt.Sprintf("Analyzing round %d...\n", round)
}

// SpecialGames renders the shoo-in and nail-biting games
func SpecialGames(res api.SpecialGames) string {
	return fmt.Sprintf("The shoo-in game was:\n%s\nThe difference was %d points.\n\n"+
		"The nail-biting game was:\n%s\nThe difference was %d points.\n",
		res.ShooIn, res.ShooInMargin, res.NailBiter, res.NailBiterMargin)
}

// Prediction renders the score of a predicted bracket and the verdict
func Prediction(r logic.PredictionReport) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("You correctly predicted the winner for %d games.\n", r.Correct))
	res.WriteString(fmt.Sprintf("This means that you have a score of %d.\n", r.Score))
	if r.Qualifies {
		res.WriteString("Great job! You could consider entering your predictions to win money!\n")
	} else {
		res.WriteString("You may want to learn more about basketball to improve your predictions next year.\n")
	}
	if len(r.Unknown) > 0 {
		res.WriteString(fmt.Sprintf("These predicted winners did not match any team: %s\n",
			strings.Join(r.Unknown, ", ")))
	}
	return res.String()
}

// SubBrackets renders a game and the games that fed it
func SubBrackets(sub api.SubBrackets) string {
	var res strings.Builder
	res.WriteString("The game is:\n")
	res.WriteString(sub.Game.String() + "\n\n")
	if len(sub.Feeders) == 0 {
		res.WriteString(NoSubBrackets + "\n")
		return res.String()
	}
	res.WriteString("Sub-brackets of this game are:\n")
	writeGames(&res, sub.Feeders)
	return res.String()
}

// Revision renders the bracket after the championship was undone
func Revision(rev api.Revision) string {
	var res strings.Builder
	if rev.Changed() {
		res.WriteString(fmt.Sprintf("Undid %d round(s). The new champion is %s.\n", rev.Depth, rev.Champion))
	} else {
		res.WriteString(fmt.Sprintf("Nothing changed: the games before the championship are missing, so %s is still "+
			"the champion.\n", rev.Champion))
	}
	res.WriteString(Path(rev.Path))
	return res.String()
}

func writeGames(res *strings.Builder, games []shared.GameSummary) {
	for _, g := range games {
		res.WriteString(g.String() + "\n")
	}
}
