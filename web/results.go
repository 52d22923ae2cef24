/* results.go
 * Contains the webhook that reloads the tournament when a results publisher announces new results
 */

package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	tokenHeader   = "X-Webhook-Token"
	reloadTimeout = time.Minute
)

func NewServer(cfg Config) *Server {
	return &Server{
		api:      cfg.API,
		token:    cfg.Token,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		metrics:  cfg.Metrics,
		gatherer: cfg.Gatherer,
	}
}

// isRelevantResultsURL reports whether url is base itself or a file below it
func isRelevantResultsURL(url, base string) bool {
	if base == "" {
		return false
	}
	if url == base {
		return true
	}
	return strings.HasPrefix(url, base+"/")
}

// ResultsWebhookHandler HTTP endpoint that receives a results event and kicks off reloading the tournament from the
// announced file
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Responds 202 and reloads in the background for a relevant event, 200 for events that are ignored
func (s *Server) ResultsWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	if s.token != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(tokenHeader)), []byte(s.token)) != 1 {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event ResultsEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.WithError(err).Warn("failed to decode webhook")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Event != "results" || !isRelevantResultsURL(event.URL, s.baseURL) {
		log.WithFields(log.Fields{"event": event.Event, "url": event.URL}).Debug("webhook ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	log.WithField("url", event.URL).Info("results event received")
	go s.reload(event.URL)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) reload(url string) {
	err := s.fetchAndReload(url)
	s.metrics.Reload("webhook", err)
	if err != nil {
		log.WithError(err).WithField("url", url).Error("results reload failed")
	}
}

func (s *Server) fetchAndReload(url string) error {
	if s.api.Fetcher == nil {
		return errors.New("downloads are not enabled")
	}
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	games, err := s.api.Fetcher.FetchGames(ctx, url)
	if err != nil {
		return err
	}
	return s.api.Reload(url, games)
}

// HealthHandler reports whether a tournament is loaded
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	if _, err := s.api.GetTeams(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhooks/results", s.ResultsWebhookHandler)
	mux.HandleFunc("/healthz", s.HealthHandler)
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}
