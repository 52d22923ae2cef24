/* models.go
 * This file contain the structs returned to api consumers
 */

package api

import "bracket-bot/api/shared"

// SubBrackets is a game and the games that fed it, in storage order
type SubBrackets struct {
	Game    shared.GameSummary
	Feeders []shared.GameSummary
}

// SpecialGames holds the most and least one-sided games of a round. Round is 7 for the whole tournament
type SpecialGames struct {
	Round           int
	ShooIn          shared.GameSummary
	ShooInMargin    int
	NailBiter       shared.GameSummary
	NailBiterMargin int
}

// Revision is the state of the bracket after undoing the championship
type Revision struct {
	Depth    int
	Previous string
	Champion string
	// Path ends with the championship game
	Path []shared.GameSummary
}

// Changed reports whether the revision produced a different champion. A bracket without the feeder games of the
// championship is left as it was
func (r Revision) Changed() bool {
	return r.Previous != r.Champion
}
