/* prediction.go
 * Contains the logic for scoring a bracket of predictions against the tournament results
 */

package logic

import (
	"errors"
	"fmt"

	"bracket-bot/api/shared"
)

const (
	// PointsPerRound is multiplied by the round number of every correctly predicted game
	PointsPerRound = 5
	// PrizeThreshold is the score from which a bracket is considered good enough to enter for money
	PrizeThreshold = 250
)

var ErrPredictionMismatch = errors.New("prediction file does not match the tournament")

// PredictionReport is the result of comparing a predicted bracket with the results
type PredictionReport struct {
	Total     int
	Correct   int
	Score     int
	Qualifies bool
	// Unknown lists predicted winners that match no team of the tournament, in file order
	Unknown []string
}

// CompareBrackets scores predicted against actual. Game i of predicted is the prediction for game i of actual, so
// both lists must be in the same order. Predicted winners must name a tournament team exactly, ignoring case; any
// other name is reported in Unknown and scores nothing.
// Preconditions: Receives the results and the predicted bracket
// Postconditions: Returns the report, or ErrPredictionMismatch when the lists are not the same length
func CompareBrackets(actual, predicted []*shared.GameRecord) (PredictionReport, error) {
	if len(actual) != len(predicted) {
		return PredictionReport{}, fmt.Errorf("%d predictions for %d games: %w", len(predicted), len(actual),
			ErrPredictionMismatch)
	}

	lookup := ExactTeamNames(shared.TeamNames(actual))
	report := PredictionReport{Total: len(actual)}
	for i, game := range actual {
		winner, ok := ExactTeamName(predicted[i].WinningTeam, lookup)
		if !ok {
			report.Unknown = append(report.Unknown, predicted[i].WinningTeam)
			continue
		}
		if winner == game.WinningTeam {
			report.Correct++
			report.Score += game.Round * PointsPerRound
		}
	}
	report.Qualifies = report.Score >= PrizeThreshold
	return report, nil
}
