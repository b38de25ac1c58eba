package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchLoop_DebouncesWrites(t *testing.T) {
	cfg = config.DefaultConfig()
	dir := t.TempDir()
	path := filepath.Join(dir, "net.crn")
	require.NoError(t, os.WriteFile(path, []byte("A, 1\n"), 0644))

	watcher, err := newWatcher([]string{path}, []string{dir})
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 10)
	done := make(chan struct{})
	go func() {
		watchLoop(ctx, watcher, 50*time.Millisecond, func(p string) { changes <- p })
		close(done)
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("A, 2\n"), 0644))
	}

	select {
	case changed := <-changes:
		assert.Equal(t, path, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case extra := <-changes:
		t.Fatalf("writes were not debounced, got a second change for %s", extra)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch loop did not stop")
	}
}
