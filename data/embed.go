/* embed.go
 * Contains the files compiled into the binary: the 2021 tournament, a sample prediction file and the texts shown
 * by the shell and the bot
 */

package data

import _ "embed"

//go:embed sample_tournament.csv
var SampleTournamentCSV []byte

//go:embed sample_predictions.csv
var SamplePredictionsCSV []byte

//go:embed welcome.en.txt
var Welcome string

//go:embed help.en.txt
var Help string
