/* watcher_test.go
 * Contains unit tests for watcher.go against a temporary results file
 */

package external

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bracket-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWatcher writes content to a temp file and watches it, collecting every reload
func startWatcher(t *testing.T, content string) (string, func() [][]*shared.GameRecord) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var mu sync.Mutex
	var reloads [][]*shared.GameRecord
	w, err := NewWatcher(path, 20*time.Millisecond, func(_ string, games []*shared.GameRecord) error {
		mu.Lock()
		defer mu.Unlock()
		reloads = append(reloads, games)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	// give the watch time to register before the test writes
	time.Sleep(100 * time.Millisecond)

	return path, func() [][]*shared.GameRecord {
		mu.Lock()
		defer mu.Unlock()
		return append([][]*shared.GameRecord(nil), reloads...)
	}
}

// region NewWatcher tests

func TestNewWatcher_Defaults(t *testing.T) {
	w, err := NewWatcher("results.csv", 0, func(string, []*shared.GameRecord) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.Debounce)
}

func TestNewWatcher_MissingArguments(t *testing.T) {
	_, err := NewWatcher("", 0, func(string, []*shared.GameRecord) error { return nil })
	assert.Error(t, err)

	_, err = NewWatcher("results.csv", 0, nil)
	assert.Error(t, err)
}

// endregion

// region Watch tests

func TestWatch_MissingFile(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing.csv"), 0,
		func(string, []*shared.GameRecord) error { return nil })
	require.NoError(t, err)

	assert.Error(t, w.Watch(context.Background()))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path, reloads := startWatcher(t, header+sampleRow)

	updated := header + sampleRow + "Championship,1,Baylor,86,1,Gonzaga,70,Baylor,6,1\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	require.Eventually(t, func() bool {
		r := reloads()
		return len(r) > 0 && len(r[len(r)-1]) == 2
	}, 3*time.Second, 20*time.Millisecond)
	r := reloads()
	assert.Equal(t, "Gonzaga", r[len(r)-1][1].Team2Name)
}

func TestWatch_ReloadsAfterSaveByRename(t *testing.T) {
	path, reloads := startWatcher(t, header+sampleRow)

	tmp := path + ".tmp"
	updated := header + sampleRow + "Championship,1,Baylor,86,1,Gonzaga,70,Baylor,6,1\n"
	require.NoError(t, os.WriteFile(tmp, []byte(updated), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool {
		r := reloads()
		return len(r) > 0 && len(r[len(r)-1]) == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_StopsWhenCancelledAfterRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+sampleRow), 0o600))
	w, err := NewWatcher(path, time.Hour, func(string, []*shared.GameRecord) error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Remove(path))
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_SkipsInvalidFile(t *testing.T) {
	path, reloads := startWatcher(t, header+sampleRow)

	require.NoError(t, os.WriteFile(path, []byte(header+"Final Four,one,Baylor\n"), 0o600))
	time.Sleep(300 * time.Millisecond)

	assert.Empty(t, reloads())
}

// endregion
