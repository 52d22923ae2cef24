/* parser.go
 * Contains the functions used to turn tournament CSV data into game records
 */

package external

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bracket-bot/api/shared"

	log "github.com/sirupsen/logrus"
)

// LoadGames reads the tournament file at path
// Preconditions: Receives the path of a CSV file with a header row and 10 columns per game
// Postconditions: Returns the games in file order, or a *ParseError if the file cannot be opened or read
func LoadGames(path string) ([]*shared.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: path, Err: err}
	}
	defer f.Close()

	games, err := parseGames(f, path)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"file": path, "games": len(games)}).Info("tournament loaded")
	return games, nil
}

// ParseGames reads tournament CSV data from r. The first row is a header and is skipped.
// An empty score cell becomes shared.ScoreUnset. A non-integer rank, score, round or game number, or a row that
// does not have exactly 10 columns, is a *ParseError.
func ParseGames(r io.Reader) ([]*shared.GameRecord, error) {
	return parseGames(r, "input")
}

func parseGames(r io.Reader, source string) ([]*shared.GameRecord, error) {
	reader := csv.NewReader(r)
	// the header may have any shape, so column counts are checked per data row
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var games []*shared.GameRecord
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			perr := &ParseError{Source: source, Err: err}
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				perr.Line = csvErr.Line
			}
			return nil, perr
		}
		if header {
			header = false
			continue
		}
		if len(record) != numColumns {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{
				Source: source,
				Line:   line,
				Err:    fmt.Errorf("wrong number of fields: got %d, want %d", len(record), numColumns),
			}
		}

		game, perr := parseRow(record)
		if perr != nil {
			perr.Source = source
			perr.Line, _ = reader.FieldPos(0)
			return nil, perr
		}
		games = append(games, game)
	}
	return games, nil
}

// parseRow converts one data row. The returned error has no source or line set
func parseRow(record []string) (*shared.GameRecord, *ParseError) {
	var perr *ParseError
	num := func(col int) int {
		if perr != nil {
			return 0
		}
		v, err := strconv.Atoi(strings.TrimSpace(record[col]))
		if err != nil {
			perr = &ParseError{Column: columnNames[col], Err: fmt.Errorf("invalid integer %q", record[col])}
		}
		return v
	}
	score := func(col int) int {
		if strings.TrimSpace(record[col]) == "" {
			return shared.ScoreUnset
		}
		return num(col)
	}

	game := &shared.GameRecord{
		Region:      record[colRegion],
		Team1Rank:   num(colRank1),
		Team1Name:   record[colTeam1],
		Team1Score:  score(colScore1),
		Team2Rank:   num(colRank2),
		Team2Name:   record[colTeam2],
		Team2Score:  score(colScore2),
		WinningTeam: record[colWinner],
		Round:       num(colRound),
		GameNumber:  num(colGameNumber),
	}
	if perr != nil {
		return nil, perr
	}
	return game, nil
}
