/* store.go
 * Contains the in-memory tournament store. It keeps the games as loaded, and a working copy that what-if revisions
 * mutate, together with the bracket index over the working copy
 */

package store

import (
	"errors"
	"fmt"

	"bracket-bot/api/bracket"
	"bracket-bot/api/shared"

	log "github.com/sirupsen/logrus"
)

// ErrNoTournament is returned when no games are loaded
var ErrNoTournament = errors.New("no tournament loaded")

type Store struct {
	Source   string
	original []*shared.GameRecord
	games    []*shared.GameRecord
	index    *bracket.Index
}

// NewStore creates a Store holding games
// Preconditions: Receives a description of where the games came from and the games in file order
// Postconditions: Returns a pointer to the Store, or ErrNoTournament if games is empty
func NewStore(source string, games []*shared.GameRecord) (*Store, error) {
	s := &Store{}
	if err := s.Load(source, games); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the held tournament. The store keeps its own copies of games
func (s *Store) Load(source string, games []*shared.GameRecord) error {
	if len(games) == 0 {
		return fmt.Errorf("loading %s: %w", source, ErrNoTournament)
	}
	s.Source = source
	s.original = shared.CloneGames(games)
	s.games = shared.CloneGames(games)
	s.index = bracket.NewIndex(s.games)

	log.WithFields(log.Fields{"source": source, "games": len(games)}).Debug("store loaded")
	return nil
}

// Reset discards every revision made to the working copy
func (s *Store) Reset() error {
	if s.index == nil {
		return ErrNoTournament
	}
	s.games = shared.CloneGames(s.original)
	s.index = bracket.NewIndex(s.games)
	return nil
}

// GetIndex returns the bracket index over the working copy
func (s *Store) GetIndex() (*bracket.Index, error) {
	if s.index == nil {
		return nil, ErrNoTournament
	}
	return s.index, nil
}

// GetOriginalGames returns a copy of the games as they were loaded
func (s *Store) GetOriginalGames() ([]*shared.GameRecord, error) {
	if s.index == nil {
		return nil, ErrNoTournament
	}
	return shared.CloneGames(s.original), nil
}
