/* external.go
 * Contains the logic used to download tournament data over HTTP and return the parsed games to the higher level
 * functions
 */

package external

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"bracket-bot/api/shared"

	"github.com/klauspost/compress/gzip"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const userAgent = "BracketBot/1.0"

// Fetcher downloads tournament CSV files. Requests are throttled by Limiter so a busy channel cannot hammer the
// remote host.
type Fetcher struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewFetcher creates a Fetcher allowing rps requests per second with a burst of one. rps <= 0 means one request
// per second.
func NewFetcher(rps float64) *Fetcher {
	if rps <= 0 {
		rps = 1
	}
	return &Fetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// FetchGames downloads and parses the tournament CSV at url
// Preconditions: Receives a context bounding the wait for the limiter and the request, and the file URL
// Postconditions: Returns the games in file order, or an error if the request, the download or the parse fails
func (f *Fetcher) FetchGames(ctx context.Context, url string) ([]*shared.GameRecord, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	games, err := parseGames(body, url)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"url": url, "games": len(games)}).Info("tournament fetched")
	return games, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for fetch limiter: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := f.Client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: status code %d", url, response.StatusCode)
	}

	if response.Header.Get("Content-Encoding") != "gzip" {
		return response.Body, nil
	}
	reader, err := gzip.NewReader(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return &gzipBody{Reader: reader, body: response.Body}, nil
}

// gzipBody closes both the decompressor and the underlying response body
type gzipBody struct {
	*gzip.Reader
	body io.ReadCloser
}

func (g *gzipBody) Close() error {
	g.Reader.Close()
	return g.body.Close()
}
