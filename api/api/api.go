/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, fuctions should
 * only be called from this file, not the sub packages for bracket, logic and store. Every method holds the API lock,
 * so a revision never interleaves with a reader
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bracket-bot/api/bracket"
	"bracket-bot/api/external"
	"bracket-bot/api/logic"
	"bracket-bot/api/shared"
	"bracket-bot/api/store"

	"github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"
)

// ErrUnknownTeam is returned when a typed team name matches no team of the tournament
var ErrUnknownTeam = errors.New("no team matching that name")

// API provides methods for querying and revising the loaded tournament
type API struct {
	Store   store.Interface
	Fetcher *external.Fetcher
	// Predictions caches downloaded prediction files by url. Nil disables caching
	Predictions *expirable.LRU[string, []*shared.GameRecord]
	mu          sync.Mutex
}

// NewPredictionCache creates a cache of up to size prediction files, each kept for ttl
func NewPredictionCache(size int, ttl time.Duration) *expirable.LRU[string, []*shared.GameRecord] {
	return expirable.NewLRU[string, []*shared.GameRecord](size, nil, ttl)
}

// NewAPI creates a new API instance holding games
func NewAPI(source string, games []*shared.GameRecord, fetcher *external.Fetcher) (*API, error) {
	s, err := store.NewStore(source, games)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:   s,
		Fetcher: fetcher,
	}, nil
}

// OverallStats returns the number of games and the Final Four of the current bracket
func (a *API) OverallStats() (logic.TournamentStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return logic.TournamentStats{}, err
	}
	return logic.OverallStats(idx.Games()), nil
}

// PathToChampionship returns the games the champion won, earliest first, ending with the championship game
func (a *API) PathToChampionship() ([]shared.GameSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return nil, err
	}
	return championshipPath(idx), nil
}

func championshipPath(idx *bracket.Index) []shared.GameSummary {
	root := idx.Championship()
	if root == nil {
		return nil
	}
	path := summarize(idx.PathToChampion(root))
	return append(path, root.Describe())
}

// ExpectedRegion returns the region expected to win based on the seeds that won round
func (a *API) ExpectedRegion(round int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return "", err
	}
	return logic.ExpectedRegion(idx.Games(), round)
}

// BestUnderdog returns the worst seeded team playing in round
func (a *API) BestUnderdog(round int) (logic.Underdog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return logic.Underdog{}, err
	}
	return logic.BestUnderdog(idx.Games(), round)
}

// SpecialGames returns the shoo-in and nail-biter of round, or of the whole tournament when round is 7
func (a *API) SpecialGames(round int) (SpecialGames, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return SpecialGames{}, err
	}
	res, err := logic.SpecialGames(idx.Games(), round)
	if err != nil {
		return SpecialGames{}, err
	}
	return SpecialGames{
		Round:           res.Round,
		ShooIn:          res.ShooIn.Describe(),
		ShooInMargin:    res.ShooInMargin,
		NailBiter:       res.NailBiter.Describe(),
		NailBiterMargin: res.NailBiterMargin,
	}, nil
}

// CompareBrackets scores predicted against the results as they were loaded. What-if revisions do not affect the
// score.
func (a *API) CompareBrackets(predicted []*shared.GameRecord) (logic.PredictionReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	actual, err := a.Store.GetOriginalGames()
	if err != nil {
		return logic.PredictionReport{}, err
	}
	report, err := logic.CompareBrackets(actual, predicted)
	if err != nil {
		return logic.PredictionReport{}, err
	}
	log.WithFields(log.Fields{"correct": report.Correct, "score": report.Score}).Debug("brackets compared")
	return report, nil
}

// CompareBracketsFromURL downloads a prediction file and scores it. The lock is not held during the download
func (a *API) CompareBracketsFromURL(ctx context.Context, url string) (logic.PredictionReport, error) {
	if a.Fetcher == nil {
		return logic.PredictionReport{}, fmt.Errorf("downloading predictions is not enabled")
	}
	if a.Predictions != nil {
		if predicted, ok := a.Predictions.Get(url); ok {
			log.WithField("url", url).Debug("predictions served from cache")
			return a.CompareBrackets(predicted)
		}
	}
	predicted, err := a.Fetcher.FetchGames(ctx, url)
	if err != nil {
		return logic.PredictionReport{}, fmt.Errorf("error fetching predictions: %w", err)
	}
	if a.Predictions != nil {
		a.Predictions.Add(url, predicted)
	}
	return a.CompareBrackets(predicted)
}

// SubBrackets returns the round game won by winner and its feeders. winner must match exactly
// Preconditions: Receives a round and an exact team name, see ResolveTeam for user typed names
// Postconditions: Returns the game and its feeders, or an error wrapping bracket.ErrGameNotFound
func (a *API) SubBrackets(round int, winner string) (SubBrackets, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return SubBrackets{}, err
	}
	game, err := idx.FindGameByRoundAndWinner(round, winner)
	if err != nil {
		return SubBrackets{}, err
	}
	return SubBrackets{
		Game:    game.Describe(),
		Feeders: summarize(idx.Feeders(game)),
	}, nil
}

// UndoChampionship revises the championship game for depth rounds and returns the new path to the championship
// Preconditions: Receives a depth between 1 and 6
// Postconditions: The working bracket is mutated until Reset is called. Returns bracket.ErrDepthOutOfRange, with
// nothing changed, for any other depth
func (a *API) UndoChampionship(depth int) (Revision, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return Revision{}, err
	}
	root := idx.Championship()
	if root == nil {
		return Revision{}, fmt.Errorf("no championship game: %w", store.ErrNoTournament)
	}
	previous := root.WinningTeam
	if err := idx.Revise(root, depth); err != nil {
		return Revision{}, err
	}
	return Revision{
		Depth:    depth,
		Previous: previous,
		Champion: root.WinningTeam,
		Path:     championshipPath(idx),
	}, nil
}

// Reset restores the bracket as it was loaded
func (a *API) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.Store.Reset(); err != nil {
		return err
	}
	log.Info("bracket reset")
	return nil
}

// Reload replaces the tournament with freshly loaded results. Any what-if revision is discarded
func (a *API) Reload(source string, games []*shared.GameRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.Store.Load(source, games); err != nil {
		return err
	}
	log.WithFields(log.Fields{"source": source, "games": len(games)}).Info("tournament reloaded")
	return nil
}

// ResolveTeam returns the tournament team name that best matches a user typed name
func (a *API) ResolveTeam(input string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return "", err
	}
	name, ok := logic.ResolveTeamName(input, idx.TeamNames())
	if !ok {
		return "", fmt.Errorf("%q: %w", input, ErrUnknownTeam)
	}
	return name, nil
}

// CheckTeams resolves each user typed name like ResolveTeam. It returns the matched tournament names and the inputs
// that match no team, both in input order
func (a *API) CheckTeams(inputs []string) ([]string, []string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return nil, nil, err
	}
	matched, unknown := logic.CheckTeamNames(inputs, idx.TeamNames())
	return matched, unknown, nil
}

// GetTeams returns every team of the tournament in first-seen order
func (a *API) GetTeams() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx, err := a.Store.GetIndex()
	if err != nil {
		return nil, err
	}
	return idx.TeamNames(), nil
}

func summarize(games []*shared.GameRecord) []shared.GameSummary {
	out := make([]shared.GameSummary, 0, len(games))
	for _, g := range games {
		out = append(out, g.Describe())
	}
	return out
}
