/* bot.go
 * Contains the Bot struct and helpers used for creating and running the bot. Requires a discord bot token and
 * APIPtr, both of which are passed in from the bot command
 */

package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bracket-bot/api/api"
	"bracket-bot/metrics"

	"github.com/go-andiamo/splitter"
)

// DefaultFetchTimeout bounds the download of a prediction file by `$compare`
const DefaultFetchTimeout = 30 * time.Second

type Bot struct {
	BotToken     string
	APIPtr       *api.API
	FetchTimeout time.Duration
	// Metrics is optional
	Metrics *metrics.Metrics
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	return &Bot{
		BotToken:     botToken,
		APIPtr:       apiPtr,
		FetchTimeout: DefaultFetchTimeout,
	}, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}

// Helper function to split a command into its arguments, dropping the command itself. Arguments that contain spaces
// must be quoted, e.g. `$subbrackets 2 "North Carolina"`
// Preconditions: Receives the raw message content
// Postconditions: Returns the arguments without surrounding quotes, or an error for unbalanced quotes
func commandArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	var args []string
	for _, part := range parts[1:] {
		part = strings.TrimSpace(strings.NewReplacer("\"", "", "“", "", "”", "").Replace(part))
		if part != "" {
			args = append(args, part)
		}
	}
	return args, nil
}

// Helper function to read an integer argument within lo..hi
func intArg(args []string, pos int, name string, lo int, hi int) (int, error) {
	if len(args) <= pos {
		return 0, fmt.Errorf("missing %s, expected a number from %d to %d", name, lo, hi)
	}
	v, err := strconv.Atoi(args[pos])
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s %q, expected a number from %d to %d", name, args[pos], lo, hi)
	}
	return v, nil
}
