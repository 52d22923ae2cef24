/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 */

package bot

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bracket-bot/api/api"
	"bracket-bot/api/external"
	"bracket-bot/data"
	"bracket-bot/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBot creates a Bot over the sample tournament with a mock store
func createTestBot(t *testing.T) (*Bot, *api.MockStore) {
	t.Helper()
	games, err := data.SampleGames()
	require.NoError(t, err)
	mockStore := api.NewMockStore(games)

	return &Bot{
		BotToken: "test_token",
		APIPtr:   &api.API{Store: mockStore},
	}, mockStore
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

// send runs content through the router and returns the last reply
func sendCommand(t *testing.T, bot *Bot, content string) string {
	t.Helper()
	mockSession := NewMockDiscordSession()
	bot.newMessageHandler(mockSession, createMockMessage(content, "user123", "TestUser", "channel123"), "bot123")
	require.Equal(t, 1, mockSession.MessageCount(), "expected exactly one reply to %q", content)
	assert.Equal(t, "channel123", mockSession.GetLastMessage().ChannelID)
	return mockSession.GetLastMessage().Content
}

// region routing tests

func TestNewMessageHandler_IgnoresSelf(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("$help", "bot123", "BracketBot", "channel123"), "bot123")

	assert.Equal(t, 0, mockSession.MessageCount())
}

func TestNewMessageHandler_IgnoresOtherMessages(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("hello there", "user123", "TestUser", "channel123"), "bot123")
	bot.newMessageHandler(mockSession, createMockMessage("$unknown", "user123", "TestUser", "channel123"), "bot123")

	assert.Equal(t, 0, mockSession.MessageCount())
}

func TestNewMessageHandler_SendErrorIsSwallowed(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	mockSession.ErrorToReturn = errors.New("discord down")

	assert.NotPanics(t, func() {
		bot.newMessageHandler(mockSession, createMockMessage("$stats", "user123", "TestUser", "channel123"), "bot123")
	})
	assert.Equal(t, 0, mockSession.MessageCount())
}

// endregion

// region query command tests

func TestHelp_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$help")

	assert.True(t, strings.HasPrefix(out, "Bracket Bot v1.0"))
	assert.Contains(t, out, "$whatif")
}

func TestStats_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$stats")

	assert.True(t, strings.HasPrefix(out, "```\n"))
	assert.Contains(t, out, "Total number of games played in tournament: 63\n")
	assert.Contains(t, out, "        East region:    Baylor\n")
}

func TestStats_StoreError(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockStore.GetIndexError = errors.New("store unavailable")

	assert.Equal(t, unexpectedError, sendCommand(t, bot, "$stats"))
}

func TestPath_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$path")

	assert.Contains(t, out, "Round 1, Game 9: Baylor vs Norfolk State. Winner: Baylor\n")
	assert.Contains(t, out, "Round 6, Game 1: Baylor vs Auburn. Winner: Baylor\n")
}

func TestRegion_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	assert.Equal(t, "The region expected to win is: East\n", sendCommand(t, bot, "$region 3"))
}

func TestRegion_InvalidRound(t *testing.T) {
	bot, _ := createTestBot(t)

	assert.Contains(t, sendCommand(t, bot, "$region 6"), "expected a number from 2 to 5")
	assert.Contains(t, sendCommand(t, bot, "$region"), "missing round")
}

func TestUnderdog_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	assert.Equal(t, "The best underdog team is Illinois which has rank 4.\n", sendCommand(t, bot, "$underdog 4"))
}

func TestUnderdog_InvalidRound(t *testing.T) {
	bot, _ := createTestBot(t)
	assert.Contains(t, sendCommand(t, bot, "$underdog 1"), "Invalid entry")
}

func TestSpecialGames_Round(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$games 6")

	assert.Contains(t, out, "The shoo-in game was:\nRound 6, Game 1: Baylor vs Auburn. Winner: Baylor\n")
	assert.Contains(t, out, "The difference was 4 points.")
}

func TestSpecialGames_Overall(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$games 7")

	assert.Contains(t, out, "Round 2, Game 10: Richmond vs Providence. Winner: Providence\n")
	assert.Contains(t, out, "The difference was 25 points.")
	assert.Contains(t, out, "The difference was 1 points.")
}

func TestTeams_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$teams")

	assert.True(t, strings.HasPrefix(out, "Teams in this tournament are:\nBaylor, "))
	assert.Contains(t, out, "North Carolina")
}

func TestTeams_CheckNames(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, `$teams baylor "north carolina" Zzyzx`)

	assert.Equal(t, "Matched teams: Baylor, North Carolina\nNot in this tournament: Zzyzx", out)
}

func TestTeams_CheckNamesAllUnknown(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, `$teams Zzyzx`)

	assert.Equal(t, "Not in this tournament: Zzyzx", out)
}

// endregion

// region subbrackets tests

func TestSubBrackets_QuotedTeam(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, `$subbrackets 5 "baylor"`)

	assert.Contains(t, out, "The game is:\nRound 5, Game 1: Tennessee vs Baylor. Winner: Baylor\n")
	assert.Contains(t, out, "Round 4, Game 1: Illinois vs Tennessee. Winner: Tennessee\n")
	assert.Contains(t, out, "Round 4, Game 2: Baylor vs Purdue. Winner: Baylor\n")
}

func TestSubBrackets_UnquotedMultiWordTeam(t *testing.T) {
	bot, _ := createTestBot(t)
	out := sendCommand(t, bot, "$subbrackets 4 Texas Tech")

	assert.Contains(t, out, "Winner: Texas Tech\n")
}

func TestSubBrackets_FirstRound(t *testing.T) {
	bot, _ := createTestBot(t)
	assert.Contains(t, sendCommand(t, bot, "$subbrackets 1 Baylor"), "This game does not have any sub-brackets.")
}

func TestSubBrackets_NoMatch(t *testing.T) {
	bot, _ := createTestBot(t)

	assert.Equal(t, "Sorry, no games matching that round number and winning team were found.",
		sendCommand(t, bot, "$subbrackets 6 Auburn"))
}

func TestSubBrackets_MissingTeam(t *testing.T) {
	bot, _ := createTestBot(t)
	assert.Contains(t, sendCommand(t, bot, "$subbrackets 2"), "missing winning team")
}

// endregion

// region whatif and reset tests

func TestWhatIf_TwoRoundsThenReset(t *testing.T) {
	bot, _ := createTestBot(t)

	out := sendCommand(t, bot, "$whatif 2")
	assert.Contains(t, out, "The new champion is Tennessee.")
	assert.Contains(t, out, "Round 6, Game 1: Tennessee vs Auburn. Winner: Tennessee\n")
	assert.Contains(t, out, "$reset")

	assert.Contains(t, sendCommand(t, bot, "$path"), "Winner: Tennessee\n```")

	assert.Equal(t, "The bracket has been reset to the loaded results.", sendCommand(t, bot, "$reset"))
	assert.Contains(t, sendCommand(t, bot, "$path"), "Round 6, Game 1: Baylor vs Auburn. Winner: Baylor\n")
}

func TestWhatIf_InvalidDepth(t *testing.T) {
	bot, _ := createTestBot(t)

	assert.Contains(t, sendCommand(t, bot, "$whatif 0"), "expected a number from 1 to 6")
	assert.Contains(t, sendCommand(t, bot, "$whatif 7"), "expected a number from 1 to 6")
}

func TestReset_StoreError(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockStore.ResetError = errors.New("reset failed")

	assert.Equal(t, unexpectedError, sendCommand(t, bot, "$reset"))
}

// endregion

// region compare tests

func TestCompare_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data.SamplePredictionsCSV)
	}))
	defer server.Close()
	bot, _ := createTestBot(t)
	bot.APIPtr.Fetcher = external.NewFetcher(10)

	out := sendCommand(t, bot, "$compare "+server.URL)

	assert.True(t, strings.HasPrefix(out, "TestUser's bracket:\n"))
	assert.Contains(t, out, "This means that you have a score of 360.\n")
}

func TestCompare_MissingURL(t *testing.T) {
	bot, _ := createTestBot(t)
	assert.Contains(t, sendCommand(t, bot, "$compare"), "expected the link to a prediction CSV")
}

func TestCompare_DownloadFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	bot, _ := createTestBot(t)
	bot.APIPtr.Fetcher = external.NewFetcher(10)

	assert.Equal(t, "An error occured reading TestUser's predictions", sendCommand(t, bot, "$compare "+server.URL))
}

func TestCompare_Mismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lines := strings.SplitN(string(data.SamplePredictionsCSV), "\n", 4)
		w.Write([]byte(strings.Join(lines[:3], "\n") + "\n"))
	}))
	defer server.Close()
	bot, _ := createTestBot(t)
	bot.APIPtr.Fetcher = external.NewFetcher(10)

	assert.Contains(t, sendCommand(t, bot, "$compare "+server.URL), "Invalid entry")
}

// endregion

// region metrics tests

func TestHandlers_RecordMetrics(t *testing.T) {
	bot, mockStore := createTestBot(t)
	bot.Metrics = metrics.New(prometheus.NewRegistry())

	sendCommand(t, bot, "$stats")
	sendCommand(t, bot, "$region 9")
	sendCommand(t, bot, "$whatif 1")
	mockStore.GetIndexError = errors.New("store unavailable")
	sendCommand(t, bot, "$path")

	commands := bot.Metrics.CommandsTotal
	assert.Equal(t, 1.0, testutil.ToFloat64(commands.WithLabelValues("stats", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(commands.WithLabelValues("region", metrics.OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(commands.WithLabelValues("path", metrics.OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(bot.Metrics.Revisions))
}

// endregion
