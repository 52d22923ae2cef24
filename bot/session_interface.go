/* session_interface.go
 * Contains the subset of the discord session used by the handlers
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is satisfied by *discordgo.Session and by MockDiscordSession in tests
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ DiscordSession = (*discordgo.Session)(nil)
