/* input_processing.go
 * Contains the logic for matching user typed team names against the teams of the loaded tournament
 */

package logic

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CheckTeamNames processes team names from user input and checks if they are valid.
// Preconditions: receives two string slices; one containing the names to check and another that is a list of valid team names
// Postconditions: returns two string slices, a slice of correctly formatted team names and slice of strings containing the invalid team names
func CheckTeamNames(inputTeams []string, validTeams []string) ([]string, []string) {
	var formattedTeamNames []string
	var invalidTeams []string

	lookup, validTeamsLower := lowerLookup(validTeams)
	for _, team := range inputTeams {
		if name, ok := matchTeam(team, lookup, validTeamsLower); ok {
			formattedTeamNames = append(formattedTeamNames, name)
		} else {
			invalidTeams = append(invalidTeams, team)
		}
	}
	return formattedTeamNames, invalidTeams
}

// ResolveTeamName returns the valid team name that best matches input, or false if nothing matches
func ResolveTeamName(input string, validTeams []string) (string, bool) {
	lookup, validTeamsLower := lowerLookup(validTeams)
	return matchTeam(input, lookup, validTeamsLower)
}

// ExactTeamNames maps the lower case form of every valid team to its tournament spelling. Names from prediction files
// are only accepted through this map, never fuzzy matched
func ExactTeamNames(validTeams []string) map[string]string {
	lookup, _ := lowerLookup(validTeams)
	return lookup
}

// ExactTeamName returns the tournament spelling of name when it matches a team ignoring case and surrounding spaces
func ExactTeamName(name string, lookup map[string]string) (string, bool) {
	canonical, ok := lookup[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

func lowerLookup(validTeams []string) (map[string]string, []string) {
	lookup := make(map[string]string, len(validTeams))
	var validTeamsLower []string
	for _, name := range validTeams {
		lower := strings.ToLower(name)
		if _, ok := lookup[lower]; ok {
			continue
		}
		lookup[lower] = name
		validTeamsLower = append(validTeamsLower, lower)
	}
	return lookup, validTeamsLower
}

// matchTeam prefers a case-insensitive exact match, then the closest fuzzy match
func matchTeam(team string, lookup map[string]string, validTeamsLower []string) (string, bool) {
	lowerTeam := strings.ToLower(strings.Trim(strings.TrimSpace(team), "\""))
	if lowerTeam == "" {
		return "", false
	}
	if name, ok := lookup[lowerTeam]; ok {
		return name, true
	}

	fuzzyResults := fuzzy.RankFind(lowerTeam, validTeamsLower)
	if len(fuzzyResults) == 0 {
		return "", false
	}
	sort.Sort(fuzzyResults)
	return lookup[fuzzyResults[0].Target], true
}
