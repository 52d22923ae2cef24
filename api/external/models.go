/* models.go
 * This file contains the models used by the external package when reading tournament data
 */

package external

import "fmt"

// Column positions of a tournament data row
const (
	colRegion = iota
	colRank1
	colTeam1
	colScore1
	colRank2
	colTeam2
	colScore2
	colWinner
	colRound
	colGameNumber
	numColumns
)

var columnNames = [numColumns]string{
	"region", "rank 1", "team 1", "score 1", "rank 2", "team 2", "score 2", "winning team", "round", "game number",
}

// ParseError describes tournament data that could not be read. Line is 1-based and counts the header row, Column is
// empty when the error is not tied to a single cell.
type ParseError struct {
	Source string
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line == 0:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	case e.Column == "":
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s:%d: column %q: %v", e.Source, e.Line, e.Column, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
