/* shell.go
 * Contains the shell subcommand, which serves the numbered menu on stdin and stdout
 */

package cmd

import (
	"bracket-bot/api/api"
	"bracket-bot/api/external"
	"bracket-bot/shell"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive menu (default)",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	source, games, err := loadTournament(cfg)
	if err != nil {
		return err
	}
	a, err := api.NewAPI(source, games, external.NewFetcher(cfg.FetchRPS))
	if err != nil {
		return err
	}

	return shell.New(a, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
}
