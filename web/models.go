/* models.go
 * Contains the configuration and payloads of the results webhook server
 */

package web

import (
	"bracket-bot/api/api"
	"bracket-bot/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// Token must match the X-Webhook-Token header when set
	Token string
	// BaseURL limits which result files a webhook may point at. Empty allows none
	BaseURL string
	// Metrics and Gatherer are optional. /metrics is served when Gatherer is set
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Server is the HTTP server that handles webhook requests
type Server struct {
	api      *api.API
	token    string
	baseURL  string
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// ResultsEvent is posted when new results are published. URL is the CSV to load
type ResultsEvent struct {
	Event string `json:"event"`
	URL   string `json:"url"`
}
