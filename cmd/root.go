/* root.go
 * Contains the root command and the settings shared by every subcommand. Running the binary without a subcommand
 * starts the interactive shell
 */

package cmd

import (
	"fmt"
	"os"

	"bracket-bot/api/external"
	"bracket-bot/api/shared"
	"bracket-bot/config"
	"bracket-bot/data"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const Version = "1.0.0"

// sampleSource names the embedded tournament in logs and in the bot
const sampleSource = "embedded 2021 sample"

var (
	configPath string
	dataFile   string
	logLevel   string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bracket-bot",
	Short: "Bracket Bot - NCAA tournament bracket analyzer",
	Long: `Bracket Bot loads the results of a 64 team single elimination tournament and answers questions about it:
the path of the champion, the strongest region, the best underdog, the closest games, what-if revisions and
the score of a predicted bracket. It runs as an interactive shell or as a discord bot.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runShell,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "",
		"Tournament results CSV. Defaults to the embedded 2021 tournament")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error (default warn)")

	rootCmd.AddCommand(shellCmd)
}

// HandleError prints error and exits
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// loadConfig reads .env files, the config file and the environment, then applies the flags given on the command line
func loadConfig(cmd *cobra.Command, _ []string) error {
	config.LoadEnvFiles()

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		loaded.DataFile = dataFile
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	cfg.SetupLogging()
	log.WithFields(log.Fields{"config": configPath, "data": cfg.DataFile, "level": cfg.LogLevel}).Debug("config loaded")
	return nil
}

// loadTournament reads the configured results file, or the embedded sample when none is configured
// Postconditions: Returns where the games came from and the games, or the error of a file that could not be read
func loadTournament(c config.Config) (string, []*shared.GameRecord, error) {
	if c.DataFile == "" {
		games, err := data.SampleGames()
		return sampleSource, games, err
	}
	games, err := external.LoadGames(c.DataFile)
	if err != nil {
		return "", nil, fmt.Errorf("error loading tournament: %w", err)
	}
	return c.DataFile, games, nil
}
