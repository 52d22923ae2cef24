/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"bracket-bot/api/bracket"
	"bracket-bot/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	Load(source string, games []*shared.GameRecord) error
	Reset() error
	GetIndex() (*bracket.Index, error)
	GetOriginalGames() ([]*shared.GameRecord, error)

	// Getter methods for accessing fields
	GetSource() string
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetSource returns where the loaded games came from
func (s *Store) GetSource() string {
	return s.Source
}
