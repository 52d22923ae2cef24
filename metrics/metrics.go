/* metrics.go
 * Contains the prometheus counters for commands served by the bot and tournament reloads
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for a command or reload
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type Metrics struct {
	// CommandsTotal is labelled by command name and outcome
	CommandsTotal *prometheus.CounterVec
	// ReloadsTotal is labelled by trigger (watch or webhook) and outcome
	ReloadsTotal *prometheus.CounterVec
	// Revisions counts what-if revisions that were applied
	Revisions prometheus.Counter
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bracket_bot_commands_total",
		Help: "Total number of bot commands handled",
	}, []string{"command", "outcome"})

	reloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bracket_bot_reloads_total",
		Help: "Total number of tournament reloads",
	}, []string{"trigger", "outcome"})

	revisions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bracket_bot_revisions_total",
		Help: "Total number of what-if revisions applied",
	})

	reg.MustRegister(commands)
	reg.MustRegister(reloads)
	reg.MustRegister(revisions)

	return &Metrics{
		CommandsTotal: commands,
		ReloadsTotal:  reloads,
		Revisions:     revisions,
	}
}

// Command records one handled command. Safe on a nil receiver
func (m *Metrics) Command(command, outcome string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
	if command == "whatif" && outcome == OutcomeOK {
		m.Revisions.Inc()
	}
}

// Reload records one reload attempt. Safe on a nil receiver
func (m *Metrics) Reload(trigger string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.ReloadsTotal.WithLabelValues(trigger, outcome).Inc()
}
