/* stats.go
 * Contains the flat scans over a tournament: overall stats, expected region, best underdog and the most and least
 * one-sided games
 */

package logic

import (
	"errors"
	"fmt"

	"bracket-bot/api/shared"
)

// Round that selects every game in SpecialGames
const AllRounds = 7

var (
	ErrRoundOutOfRange = errors.New("round out of range")
	ErrNoGames         = errors.New("no games found")
)

// FinalFourEntry is a round 4 winner and the region it won
type FinalFourEntry struct {
	Region string
	Team   string
}

// TournamentStats is the result of OverallStats
type TournamentStats struct {
	TotalGames int
	FinalFour  []FinalFourEntry
}

// Underdog is the worst seeded team playing in a round
type Underdog struct {
	Round int
	Team  string
	Rank  int
}

// SpecialGamesResult holds the shoo-in (largest margin) and nail-biter (smallest margin) of a round
type SpecialGamesResult struct {
	Round           int
	ShooIn          *shared.GameRecord
	ShooInMargin    int
	NailBiter       *shared.GameRecord
	NailBiterMargin int
}

// OverallStats counts the games and lists the Final Four, in storage order
func OverallStats(games []*shared.GameRecord) TournamentStats {
	stats := TournamentStats{TotalGames: len(games)}
	for _, g := range games {
		if g.Round == 4 {
			stats.FinalFour = append(stats.FinalFour, FinalFourEntry{Region: g.Region, Team: g.WinningTeam})
		}
	}
	return stats
}

// ExpectedRegion predicts the winning region from the seeds that won in round.
// For rounds 2 to 4 it is the region whose winners have the smallest sum of seeds, the first region seen in the file
// winning ties. For round 5 it is the region the best seeded Final Four team came from.
// Preconditions: Receives the game list and a round between 2 and 5
// Postconditions: Returns the region name, ErrRoundOutOfRange for any other round, or ErrNoGames when the round
// has no games to evaluate
func ExpectedRegion(games []*shared.GameRecord, round int) (string, error) {
	switch {
	case round >= 2 && round <= 4:
		return lowestSeedSumRegion(games, round)
	case round == 5:
		return bestFinalFourRegion(games)
	default:
		return "", fmt.Errorf("expected region for round %d, must be 2-5: %w", round, ErrRoundOutOfRange)
	}
}

func lowestSeedSumRegion(games []*shared.GameRecord, round int) (string, error) {
	var order []string
	sums := make(map[string]int)
	for _, g := range games {
		if g.Round > 4 {
			continue
		}
		if _, ok := sums[g.Region]; !ok {
			order = append(order, g.Region)
			sums[g.Region] = 0
		}
	}

	played := false
	for _, g := range games {
		if g.Round != round {
			continue
		}
		played = true
		sums[g.Region] += g.WinnerRank()
	}
	if !played || len(order) == 0 {
		return "", fmt.Errorf("round %d: %w", round, ErrNoGames)
	}

	best := order[0]
	for _, region := range order[1:] {
		if sums[region] < sums[best] {
			best = region
		}
	}
	return best, nil
}

func bestFinalFourRegion(games []*shared.GameRecord) (string, error) {
	bestTeam := ""
	bestRank := 0
	for _, g := range games {
		if g.Round != 5 {
			continue
		}
		if bestTeam == "" || g.Team1Rank < bestRank {
			bestTeam, bestRank = g.Team1Name, g.Team1Rank
		}
		if g.Team2Rank < bestRank {
			bestTeam, bestRank = g.Team2Name, g.Team2Rank
		}
	}
	if bestTeam == "" {
		return "", fmt.Errorf("round 5: %w", ErrNoGames)
	}

	for _, g := range games {
		if g.Round == 4 && g.WinningTeam == bestTeam {
			return g.Region, nil
		}
	}
	return "", fmt.Errorf("no round 4 game won by %s: %w", bestTeam, ErrNoGames)
}

// BestUnderdog returns the team with the largest seed number playing in round, the first one found winning ties
// Preconditions: Receives the game list and a round between 2 and 6
// Postconditions: Returns the underdog, ErrRoundOutOfRange, or ErrNoGames if the round has no games
func BestUnderdog(games []*shared.GameRecord, round int) (Underdog, error) {
	if round < 2 || round > shared.ChampionshipRound {
		return Underdog{}, fmt.Errorf("underdog for round %d, must be 2-6: %w", round, ErrRoundOutOfRange)
	}

	best := Underdog{Round: round}
	for _, g := range games {
		if g.Round != round {
			continue
		}
		if best.Team == "" || g.Team1Rank > best.Rank {
			best.Team, best.Rank = g.Team1Name, g.Team1Rank
		}
		if g.Team2Rank > best.Rank {
			best.Team, best.Rank = g.Team2Name, g.Team2Rank
		}
	}
	if best.Team == "" {
		return Underdog{}, fmt.Errorf("round %d: %w", round, ErrNoGames)
	}
	return best, nil
}

// SpecialGames finds the games with the largest and smallest score difference in round, or in the whole tournament
// when round is AllRounds. Games without both scores are skipped; the first game found wins ties.
// Preconditions: Receives the game list and a round between 1 and 7
// Postconditions: Returns both games and their margins, ErrRoundOutOfRange, or ErrNoGames when no game qualifies
func SpecialGames(games []*shared.GameRecord, round int) (SpecialGamesResult, error) {
	if round < shared.FirstRound || round > AllRounds {
		return SpecialGamesResult{}, fmt.Errorf("special games for round %d, must be 1-7: %w", round,
			ErrRoundOutOfRange)
	}

	res := SpecialGamesResult{Round: round}
	for _, g := range games {
		if round != AllRounds && g.Round != round {
			continue
		}
		diff, ok := g.ScoreDifference()
		if !ok {
			continue
		}
		if res.ShooIn == nil || diff > res.ShooInMargin {
			res.ShooIn, res.ShooInMargin = g, diff
		}
		if res.NailBiter == nil || diff < res.NailBiterMargin {
			res.NailBiter, res.NailBiterMargin = g, diff
		}
	}
	if res.ShooIn == nil {
		return SpecialGamesResult{}, fmt.Errorf("no scored games in round %d: %w", round, ErrNoGames)
	}
	return res, nil
}
