/* external_test.go
 * Contains unit tests for external.go HTTP functions using httptest
 */

package external

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRow = "Final Four,1,Baylor,78,2,Houston,59,Baylor,5,1\n"

// TestFetchGames_Success tests a plain response
func TestFetchGames_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(header + sampleRow))
	}))
	defer server.Close()

	games, err := NewFetcher(10).FetchGames(context.Background(), server.URL)

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Houston", games[0].Team2Name)
}

// TestFetchGames_GzipResponse tests handling of gzip-encoded responses
func TestFetchGames_GzipResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		var buf bytes.Buffer
		gzWriter := gzip.NewWriter(&buf)
		gzWriter.Write([]byte(header + sampleRow))
		gzWriter.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	games, err := NewFetcher(10).FetchGames(context.Background(), server.URL)

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, 5, games[0].Round)
}

// TestFetchGames_NonOKStatus tests that a failed download is an error
func TestFetchGames_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher(10).FetchGames(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

// TestFetchGames_ParseError tests that a malformed body surfaces as a ParseError
func TestFetchGames_ParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(header + "South,one,Baylor,79,16,Hartford,55,Baylor,1,1\n"))
	}))
	defer server.Close()

	_, err := NewFetcher(10).FetchGames(context.Background(), server.URL)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, server.URL, perr.Source)
}

// TestFetchGames_LimiterHonoursContext tests that a request waiting on the limiter gives up with its context
func TestFetchGames_LimiterHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(header + sampleRow))
	}))
	defer server.Close()

	fetcher := NewFetcher(0.01)
	_, err := fetcher.FetchGames(context.Background(), server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = fetcher.FetchGames(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limiter")
}
