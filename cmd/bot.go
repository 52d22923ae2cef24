//go:build !test

/* bot.go
 * Contains the bot subcommand, which serves the tournament to a discord channel
 */

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bracket-bot/api/api"
	"bracket-bot/api/external"
	"bracket-bot/api/shared"
	"bracket-bot/bot"
	"bracket-bot/metrics"
	"bracket-bot/web"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const predictionCacheSize = 128

var (
	testBot string
	watch   bool
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the discord bot",
	Long: `Run the discord bot. The production token is read from DISCORD_PROD_TOKEN, or the beta token from
DISCORD_BETA_TOKEN when --test=true. With --watch the results file is reloaded whenever it changes, and with
webhook_addr set results can also be pushed over HTTP.`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

func init() {
	botCmd.Flags().StringVar(&testBot, "test", "false", "Use main or test bot: takes true or false as argument")
	botCmd.Flags().BoolVar(&watch, "watch", false, "Reload the results file when it changes")

	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, _ []string) error {
	useBeta, err := convertStrToBool(testBot)
	if err != nil {
		return fmt.Errorf("invalid \"test\" flag, should be true or false: %w", err)
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = watch
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	source, games, err := loadTournament(cfg)
	if err != nil {
		return err
	}
	a, err := api.NewAPI(source, games, external.NewFetcher(cfg.FetchRPS))
	if err != nil {
		return fmt.Errorf("failed to initialize API: %w", err)
	}
	if cfg.PredictionCacheMins > 0 {
		a.Predictions = api.NewPredictionCache(predictionCacheSize, cfg.PredictionCacheTTL())
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	b, err := bot.NewBot(cfg.Token(useBeta), a)
	if err != nil {
		return err
	}
	b.FetchTimeout = cfg.FetchTimeout()
	b.Metrics = m

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Watch {
		w, err := external.NewWatcher(cfg.DataFile, 0, func(path string, games []*shared.GameRecord) error {
			err := a.Reload(path, games)
			m.Reload("watch", err)
			return err
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Watch(ctx) })
	}

	if cfg.WebhookAddr != "" {
		g.Go(func() error {
			return web.Start(ctx, web.Config{
				Addr:     cfg.WebhookAddr,
				API:      a,
				Token:    cfg.WebhookToken,
				BaseURL:  cfg.WebhookBaseURL,
				Metrics:  m,
				Gatherer: reg,
			})
		})
	}

	g.Go(func() error { return b.Run(ctx) })

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("bot stopped")
		return err
	}
	return nil
}
