/* load.go
 * Contains helpers that parse the embedded csv files
 */

package data

import (
	"bytes"
	"fmt"

	"bracket-bot/api/external"
	"bracket-bot/api/shared"
)

// SampleGames parses the embedded sample tournament
func SampleGames() ([]*shared.GameRecord, error) {
	games, err := external.ParseGames(bytes.NewReader(SampleTournamentCSV))
	if err != nil {
		return nil, fmt.Errorf("embedded sample tournament: %w", err)
	}
	return games, nil
}

// SamplePredictions parses the embedded prediction file, in which every game goes to the better seed
func SamplePredictions() ([]*shared.GameRecord, error) {
	games, err := external.ParseGames(bytes.NewReader(SamplePredictionsCSV))
	if err != nil {
		return nil, fmt.Errorf("embedded sample predictions: %w", err)
	}
	return games, nil
}
