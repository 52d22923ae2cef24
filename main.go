/* main.go
 * The "main" method for running the analyzer. See `bracket-bot --help` for the available commands
 * Usage: go run . [shell|bot] --data="<results.csv>"
 */

package main

import "bracket-bot/cmd"

func main() {
	cmd.HandleError(cmd.Execute(), "bracket-bot")
}
