/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"bracket-bot/api/bracket"
	"bracket-bot/api/shared"
	"bracket-bot/api/store"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Source   string
	Original []*shared.GameRecord
	Index    *bracket.Index

	// Error injection for testing error paths
	LoadError             error
	ResetError            error
	GetIndexError         error
	GetOriginalGamesError error

	// Call counters
	ResetCalls int
}

// NewMockStore creates a new MockStore holding copies of games
func NewMockStore(games []*shared.GameRecord) *MockStore {
	m := &MockStore{Source: "mock"}
	m.setGames(games)
	return m
}

func (m *MockStore) setGames(games []*shared.GameRecord) {
	m.Original = shared.CloneGames(games)
	m.Index = bracket.NewIndex(shared.CloneGames(games))
}

// Load mock implementation
func (m *MockStore) Load(source string, games []*shared.GameRecord) error {
	if m.LoadError != nil {
		return m.LoadError
	}
	m.Source = source
	m.setGames(games)
	return nil
}

// Reset mock implementation
func (m *MockStore) Reset() error {
	m.ResetCalls++
	if m.ResetError != nil {
		return m.ResetError
	}
	m.Index = bracket.NewIndex(shared.CloneGames(m.Original))
	return nil
}

// GetIndex mock implementation
func (m *MockStore) GetIndex() (*bracket.Index, error) {
	if m.GetIndexError != nil {
		return nil, m.GetIndexError
	}
	if m.Index == nil {
		return nil, store.ErrNoTournament
	}
	return m.Index, nil
}

// GetOriginalGames mock implementation
func (m *MockStore) GetOriginalGames() ([]*shared.GameRecord, error) {
	if m.GetOriginalGamesError != nil {
		return nil, m.GetOriginalGamesError
	}
	return shared.CloneGames(m.Original), nil
}

// GetSource returns the mock source name
func (m *MockStore) GetSource() string {
	return m.Source
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)
