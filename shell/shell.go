/* shell.go
 * Contains the interactive numbered menu over the api. Input and output are plain readers and writers so the shell
 * can be driven by tests
 */

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bracket-bot/api/api"
	"bracket-bot/api/bracket"
	"bracket-bot/api/external"
	"bracket-bot/api/logic"
	"bracket-bot/api/report"
	"bracket-bot/api/shared"
	"bracket-bot/data"

	log "github.com/sirupsen/logrus"
)

const menu = `
Select a menu option:
   1. Display overall information about the data
   2. Display the path of the winning team to the championship
   3. Determine which region is expected to win the championship based on a given round
   4. Identify the best underdog within a given round
   5. Find the shoo-in and nail-biting games within a given round, or overall
   6. Compare the actual brackets to your predicted brackets
   7. See the sub-brackets of one game
   8. Undo the championship game for a given number of rounds
   9. Reset the bracket to the loaded results
   10. Exit
Your choice --> `

const (
	invalidEntry  = "Invalid entry. Try again."
	invalidOption = "Invalid value.  Please re-enter a value from the menu options below."
	exitOption    = 10
)

// LoadFunc reads a bracket of predictions from a file
type LoadFunc func(path string) ([]*shared.GameRecord, error)

type Shell struct {
	API *api.API
	// LoadPredictions defaults to external.LoadGames
	LoadPredictions LoadFunc

	in  *bufio.Scanner
	out io.Writer
}

func New(a *api.API, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		API:             a,
		LoadPredictions: external.LoadGames,
		in:              bufio.NewScanner(in),
		out:             out,
	}
}

// Run prints the welcome message and serves menu options until the exit option or the end of input
// Preconditions: The api holds a loaded tournament
// Postconditions: Returns nil on exit, or the error of a prediction file that could not be loaded
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, data.Welcome)
	for {
		fmt.Fprint(s.out, menu)
		line, ok := s.readLine()
		if !ok {
			return nil
		}
		option, err := strconv.Atoi(line)
		if err != nil || option < 1 || option > exitOption {
			fmt.Fprintln(s.out, "\n"+invalidOption)
			continue
		}
		if option == exitOption {
			fmt.Fprintln(s.out, "Exiting program...")
			return nil
		}

		log.Debugf("menu option %d", option)
		if err := s.dispatch(option); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *Shell) dispatch(option int) error {
	switch option {
	case 1:
		stats, err := s.API.OverallStats()
		if err != nil {
			return err
		}
		s.print(report.Stats(stats))

	case 2:
		path, err := s.API.PathToChampionship()
		if err != nil {
			return err
		}
		s.print(report.Path(path))

	case 3:
		round, err := s.promptRound(roundChoices(2, 5), 2, 5)
		if err != nil {
			return err
		}
		region, err := s.API.ExpectedRegion(round)
		if err != nil {
			return s.reportLookup(err)
		}
		s.print(report.Analyzing(round) + "\n" + report.Region(region))

	case 4:
		round, err := s.promptRound(roundChoices(2, 6), 2, 6)
		if err != nil {
			return err
		}
		underdog, err := s.API.BestUnderdog(round)
		if err != nil {
			return s.reportLookup(err)
		}
		s.print(report.Underdog(underdog))

	case 5:
		round, err := s.promptRound(roundChoices(1, 6)+"   Select 7 for the overall tournament\n", 1,
			logic.AllRounds)
		if err != nil {
			return err
		}
		res, err := s.API.SpecialGames(round)
		if err != nil {
			return s.reportLookup(err)
		}
		s.print(report.Analyzing(round) + "\n" + report.SpecialGames(res))

	case 6:
		return s.comparePredictions()

	case 7:
		return s.subBrackets()

	case 8:
		depth, err := s.promptInt("Enter the number of rounds that you would like to undo (max of 6 allowed): ", 1,
			bracket.MaxRevisionDepth)
		if err != nil {
			return err
		}
		rev, err := s.API.UndoChampionship(depth)
		if err != nil {
			return err
		}
		s.print(report.Revision(rev))

	case 9:
		if err := s.API.Reset(); err != nil {
			return err
		}
		s.print("The bracket has been reset to the loaded results.\n")
	}
	return nil
}

func (s *Shell) comparePredictions() error {
	fmt.Fprintln(s.out, "Enter the name of the file with your predicted brackets:")
	path, ok := s.readLine()
	if !ok {
		return io.EOF
	}
	predicted, err := s.LoadPredictions(path)
	if err != nil {
		return fmt.Errorf("error loading predictions: %w", err)
	}
	res, err := s.API.CompareBrackets(predicted)
	if errors.Is(err, logic.ErrPredictionMismatch) {
		s.print(fmt.Sprintf("The predictions could not be compared: %v\n", err))
		return nil
	}
	if err != nil {
		return err
	}
	s.print(report.Prediction(res))
	return nil
}

func (s *Shell) subBrackets() error {
	fmt.Fprint(s.out, "Enter the round number of the game: ")
	line, ok := s.readLine()
	if !ok {
		return io.EOF
	}
	round, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(s.out, invalidEntry)
		return nil
	}

	fmt.Fprint(s.out, "Enter the winning team of the game: ")
	typed, ok := s.readLine()
	if !ok {
		return io.EOF
	}
	winner, err := s.API.ResolveTeam(typed)
	if err != nil {
		return s.reportLookup(err)
	}
	sub, err := s.API.SubBrackets(round, winner)
	if err != nil {
		return s.reportLookup(err)
	}
	s.print("\n" + report.SubBrackets(sub))
	return nil
}

// reportLookup prints lookup and range misses and passes every other error through
func (s *Shell) reportLookup(err error) error {
	switch {
	case errors.Is(err, bracket.ErrGameNotFound), errors.Is(err, api.ErrUnknownTeam):
		fmt.Fprintln(s.out, report.NoMatchingGame)
	case errors.Is(err, logic.ErrNoGames), errors.Is(err, logic.ErrRoundOutOfRange):
		fmt.Fprintf(s.out, "Nothing to report: %v\n", err)
	default:
		return err
	}
	return nil
}

func roundChoices(from, to int) string {
	var res strings.Builder
	for r := from; r <= to; r++ {
		name := shared.RoundName(r)
		if r <= 2 {
			res.WriteString(fmt.Sprintf("   Select %d for round %d\n", r, r))
		} else {
			res.WriteString(fmt.Sprintf("   Select %d for round %d '%s'\n", r, r, name))
		}
	}
	return res.String()
}

func (s *Shell) promptRound(choices string, lo, hi int) (int, error) {
	return s.promptInt("Enter a round to be evaluated:\n"+choices+"Your choice --> ", lo, hi)
}

// promptInt asks until an integer between lo and hi is entered. Returns io.EOF if input ends first
func (s *Shell) promptInt(prompt string, lo, hi int) (int, error) {
	for {
		fmt.Fprint(s.out, prompt)
		line, ok := s.readLine()
		if !ok {
			return 0, io.EOF
		}
		v, err := strconv.Atoi(line)
		if err == nil && v >= lo && v <= hi {
			return v, nil
		}
		fmt.Fprintln(s.out, "\n"+invalidEntry)
	}
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) print(text string) {
	fmt.Fprint(s.out, text)
}
