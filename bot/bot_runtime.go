//go:build !test

/* bot_runtime.go
 * Contains the runtime-only session handling that needs a live *discordgo.Session. Message handling itself lives in
 * handlers.go
 */

package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Run opens the discord session and serves commands until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return fmt.Errorf("error creating discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	discord.AddHandler(b.newMessage)
	discord.AddHandler(func(_ *discordgo.Session, ready *discordgo.Ready) {
		log.WithField("user", ready.User.Username).Info("connected to discord")
	})

	if err := discord.Open(); err != nil {
		return fmt.Errorf("error opening discord session: %w", err)
	}
	defer discord.Close()

	log.WithField("source", b.APIPtr.Store.GetSource()).Info("Bracket Bot started")
	<-ctx.Done()
	log.Info("Bracket Bot stopping")
	return nil
}

// newMessage passes live session events to newMessageHandler
func (b *Bot) newMessage(discord *discordgo.Session, message *discordgo.MessageCreate) {
	b.newMessageHandler(discord, message, discord.State.User.ID)
}
