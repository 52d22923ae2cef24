/* handlers.go
 * Contains testable handler methods that accept DiscordSession interface
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bracket-bot/api/api"
	"bracket-bot/api/bracket"
	"bracket-bot/api/logic"
	"bracket-bot/api/report"
	"bracket-bot/data"
	"bracket-bot/metrics"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const unexpectedError = "An unexpected error occured"

// send posts content to the channel the message came from and logs failures
func send(session DiscordSession, message *discordgo.MessageCreate, content string) {
	if _, err := session.ChannelMessageSend(message.ChannelID, content); err != nil {
		log.WithError(err).WithField("channel", message.ChannelID).Error("failed to send message")
	}
}

// codeBlock wraps multi-line output so discord keeps its layout
func codeBlock(text string) string {
	return "```\n" + strings.TrimRight(text, "\n") + "\n```"
}

// reply sends content and records the outcome of command
func (b *Bot) reply(session DiscordSession, message *discordgo.MessageCreate, command, outcome, content string) {
	b.Metrics.Command(command, outcome)
	send(session, message, content)
}

// replyInvalid explains arguments that could not be used
func (b *Bot) replyInvalid(session DiscordSession, message *discordgo.MessageCreate, command string, err error) {
	b.reply(session, message, command, metrics.OutcomeRejected, fmt.Sprintf("Invalid entry: %s", err))
}

// replyFailure turns an api error into a user facing message. Lookup and range misses are explained, anything else is
// logged
func (b *Bot) replyFailure(session DiscordSession, message *discordgo.MessageCreate, command string, err error) {
	switch {
	case errors.Is(err, bracket.ErrGameNotFound), errors.Is(err, api.ErrUnknownTeam):
		b.reply(session, message, command, metrics.OutcomeRejected, report.NoMatchingGame)
	case errors.Is(err, logic.ErrRoundOutOfRange), errors.Is(err, logic.ErrNoGames),
		errors.Is(err, bracket.ErrDepthOutOfRange), errors.Is(err, logic.ErrPredictionMismatch):
		b.replyInvalid(session, message, command, err)
	default:
		log.WithError(err).WithField("command", command).Error("command failed")
		b.reply(session, message, command, metrics.OutcomeError, unexpectedError)
	}
}

// helpMessageHandler handles the $help command with a DiscordSession interface
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.reply(session, message, "help", metrics.OutcomeOK, data.Help)
}

// statsHandler handles the $stats command with a DiscordSession interface
func (b *Bot) statsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	stats, err := b.APIPtr.OverallStats()
	if err != nil {
		b.replyFailure(session, message, "stats", err)
		return
	}
	b.reply(session, message, "stats", metrics.OutcomeOK, codeBlock(report.Stats(stats)))
}

// pathHandler handles the $path command with a DiscordSession interface
func (b *Bot) pathHandler(session DiscordSession, message *discordgo.MessageCreate) {
	path, err := b.APIPtr.PathToChampionship()
	if err != nil {
		b.replyFailure(session, message, "path", err)
		return
	}
	b.reply(session, message, "path", metrics.OutcomeOK, codeBlock(report.Path(path)))
}

// regionHandler handles the `$region N` command with a DiscordSession interface
func (b *Bot) regionHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil {
		b.replyInvalid(session, message, "region", err)
		return
	}
	round, err := intArg(args, 0, "round", 2, 5)
	if err != nil {
		b.replyInvalid(session, message, "region", err)
		return
	}

	region, err := b.APIPtr.ExpectedRegion(round)
	if err != nil {
		b.replyFailure(session, message, "region", err)
		return
	}
	b.reply(session, message, "region", metrics.OutcomeOK, report.Region(region))
}

// underdogHandler handles the `$underdog N` command with a DiscordSession interface
func (b *Bot) underdogHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil {
		b.replyInvalid(session, message, "underdog", err)
		return
	}
	round, err := intArg(args, 0, "round", 2, 6)
	if err != nil {
		b.replyInvalid(session, message, "underdog", err)
		return
	}

	underdog, err := b.APIPtr.BestUnderdog(round)
	if err != nil {
		b.replyFailure(session, message, "underdog", err)
		return
	}
	b.reply(session, message, "underdog", metrics.OutcomeOK, report.Underdog(underdog))
}

// specialGamesHandler handles the `$games N` command with a DiscordSession interface
func (b *Bot) specialGamesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil {
		b.replyInvalid(session, message, "games", err)
		return
	}
	round, err := intArg(args, 0, "round", 1, logic.AllRounds)
	if err != nil {
		b.replyInvalid(session, message, "games", err)
		return
	}

	res, err := b.APIPtr.SpecialGames(round)
	if err != nil {
		b.replyFailure(session, message, "games", err)
		return
	}
	b.reply(session, message, "games", metrics.OutcomeOK, codeBlock(report.SpecialGames(res)))
}

// subBracketsHandler handles the `$subbrackets N "Team"` command with a DiscordSession interface
func (b *Bot) subBracketsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil {
		b.replyInvalid(session, message, "subbrackets", err)
		return
	}
	round, err := intArg(args, 0, "round", 1, 6)
	if err != nil {
		b.replyInvalid(session, message, "subbrackets", err)
		return
	}
	if len(args) < 2 {
		b.reply(session, message, "subbrackets", metrics.OutcomeRejected,
			"Invalid entry: missing winning team, e.g. `$subbrackets 2 \"North Carolina\"`")
		return
	}

	winner, err := b.APIPtr.ResolveTeam(strings.Join(args[1:], " "))
	if err != nil {
		b.replyFailure(session, message, "subbrackets", err)
		return
	}
	sub, err := b.APIPtr.SubBrackets(round, winner)
	if err != nil {
		b.replyFailure(session, message, "subbrackets", err)
		return
	}
	b.reply(session, message, "subbrackets", metrics.OutcomeOK, codeBlock(report.SubBrackets(sub)))
}

// whatIfHandler handles the `$whatif N` command with a DiscordSession interface
func (b *Bot) whatIfHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil {
		b.replyInvalid(session, message, "whatif", err)
		return
	}
	depth, err := intArg(args, 0, "number of rounds", 1, bracket.MaxRevisionDepth)
	if err != nil {
		b.replyInvalid(session, message, "whatif", err)
		return
	}

	rev, err := b.APIPtr.UndoChampionship(depth)
	if err != nil {
		b.replyFailure(session, message, "whatif", err)
		return
	}
	log.WithFields(log.Fields{"user": message.Author.Username, "depth": depth}).Info("championship undone")
	b.reply(session, message, "whatif", metrics.OutcomeOK,
		codeBlock(report.Revision(rev))+"\nUse `$reset` to restore the real results.")
}

// resetHandler handles the $reset command with a DiscordSession interface
func (b *Bot) resetHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if err := b.APIPtr.Reset(); err != nil {
		b.replyFailure(session, message, "reset", err)
		return
	}
	b.reply(session, message, "reset", metrics.OutcomeOK, "The bracket has been reset to the loaded results.")
}

// compareHandler handles the `$compare <url>` command with a DiscordSession interface
func (b *Bot) compareHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil || len(args) != 1 {
		b.reply(session, message, "compare", metrics.OutcomeRejected,
			"Invalid entry: expected the link to a prediction CSV, e.g. `$compare https://example.com/bracket.csv`")
		return
	}

	timeout := b.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := b.APIPtr.CompareBracketsFromURL(ctx, args[0])
	if err != nil {
		if errors.Is(err, logic.ErrPredictionMismatch) {
			b.replyFailure(session, message, "compare", err)
			return
		}
		log.WithError(err).WithField("url", args[0]).Warn("prediction file could not be scored")
		b.reply(session, message, "compare", metrics.OutcomeError,
			fmt.Sprintf("An error occured reading %s's predictions", message.Author.Username))
		return
	}
	b.reply(session, message, "compare", metrics.OutcomeOK,
		fmt.Sprintf("%s's bracket:\n%s", message.Author.Username, report.Prediction(res)))
}

// teamsHandler handles the `$teams ["Team" ...]` command with a DiscordSession interface. Without arguments every team
// is listed, otherwise the given names are checked against the tournament
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args, err := commandArgs(message.Content)
	if err != nil {
		b.replyInvalid(session, message, "teams", err)
		return
	}
	if len(args) > 0 {
		b.checkTeams(session, message, args)
		return
	}

	teams, err := b.APIPtr.GetTeams()
	if err != nil {
		b.replyFailure(session, message, "teams", err)
		return
	}

	var res strings.Builder
	res.WriteString("Teams in this tournament are:\n")
	res.WriteString(strings.Join(teams, ", "))
	b.reply(session, message, "teams", metrics.OutcomeOK, res.String())
}

func (b *Bot) checkTeams(session DiscordSession, message *discordgo.MessageCreate, names []string) {
	matched, unknown, err := b.APIPtr.CheckTeams(names)
	if err != nil {
		b.replyFailure(session, message, "teams", err)
		return
	}

	var res strings.Builder
	if len(matched) > 0 {
		res.WriteString("Matched teams: " + strings.Join(matched, ", ") + "\n")
	}
	if len(unknown) > 0 {
		res.WriteString("Not in this tournament: " + strings.Join(unknown, ", ") + "\n")
	}
	b.reply(session, message, "teams", metrics.OutcomeOK, strings.TrimRight(res.String(), "\n"))
}

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$stats"):
		b.statsHandler(session, message)

	case startsWith(message.Content, "$path"):
		b.pathHandler(session, message)

	case startsWith(message.Content, "$region"):
		b.regionHandler(session, message)

	case startsWith(message.Content, "$underdog"):
		b.underdogHandler(session, message)

	case startsWith(message.Content, "$games"):
		b.specialGamesHandler(session, message)

	case startsWith(message.Content, "$subbrackets"):
		b.subBracketsHandler(session, message)

	case startsWith(message.Content, "$whatif"):
		b.whatIfHandler(session, message)

	case startsWith(message.Content, "$reset"):
		b.resetHandler(session, message)

	case startsWith(message.Content, "$compare"):
		b.compareHandler(session, message)

	case startsWith(message.Content, "$teams"):
		b.teamsHandler(session, message)
	}
}
