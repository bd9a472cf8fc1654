package watch

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/roboco-io/postmd/internal/batch"
	"github.com/roboco-io/postmd/internal/parser"
	"github.com/roboco-io/postmd/internal/render"
)

const (
	waitFor = 5 * time.Second
	tick    = 20 * time.Millisecond
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu      sync.Mutex
	results []batch.FileResult
}

func (r *recorder) record(res batch.FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func newWatcher(t *testing.T) (*Watcher, string, string, *recorder) {
	t.Helper()
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	writeSource(t, src, "first.md", "# First\noriginal text")

	w, err := New(batch.Options{
		SourceDir: src,
		OutputDir: out,
		Renderer:  render.NewMarkdown(render.Options{}),
		Parser:    parser.DefaultOptions(),
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond

	rec := &recorder{}
	w.OnBuild = rec.record
	t.Cleanup(w.Stop)
	return w, src, out, rec
}

func writeSource(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func fileContains(path, text string) func() bool {
	return func() bool {
		data, err := os.ReadFile(path)
		return err == nil && strings.Contains(string(data), text)
	}
}

func TestWatcher_InitialBuild(t *testing.T) {
	w, _, out, rec := newWatcher(t)

	require.NoError(t, w.Start(context.Background()))

	assert.FileExists(t, filepath.Join(out, "first.md"))
	assert.Equal(t, 1, rec.count())
}

func TestWatcher_RebuildsChangedFiles(t *testing.T) {
	w, src, out, _ := newWatcher(t)
	require.NoError(t, w.Start(context.Background()))

	writeSource(t, src, "first.md", "# First\nedited text")
	assert.Eventually(t, fileContains(filepath.Join(out, "first.md"), "edited text"), waitFor, tick)

	writeSource(t, src, "second.md", "- new post")
	assert.Eventually(t, fileContains(filepath.Join(out, "second.md"), "- new post"), waitFor, tick)

	assert.GreaterOrEqual(t, w.Stats().Rebuilds, 2)
}

func TestWatcher_NewDirectory(t *testing.T) {
	w, src, out, _ := newWatcher(t)
	require.NoError(t, w.Start(context.Background()))

	writeSource(t, src, "2024/spring/recap.md", "## Recap")
	assert.Eventually(t, fileContains(filepath.Join(out, "2024", "spring", "recap.md"), "## Recap"), waitFor, tick)
}

func TestWatcher_RemovesOutput(t *testing.T) {
	w, src, out, _ := newWatcher(t)
	require.NoError(t, w.Start(context.Background()))

	target := filepath.Join(out, "first.md")
	require.FileExists(t, target)

	require.NoError(t, os.Remove(filepath.Join(src, "first.md")))
	assert.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return os.IsNotExist(err)
	}, waitFor, tick)
	assert.Eventually(t, func() bool { return w.Stats().Removed == 1 }, waitFor, tick)
}

func TestWatcher_IgnoresUnmatchedFiles(t *testing.T) {
	w, src, out, rec := newWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	before := rec.count()

	writeSource(t, src, "notes.txt", "not a post")

	assert.Never(t, func() bool { return rec.count() != before }, 300*time.Millisecond, tick)
	assert.NoFileExists(t, filepath.Join(out, "notes.txt"))
	assert.Equal(t, 0, w.Stats().Events)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, _, _, _ := newWatcher(t)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()

	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_StopDuringStart(t *testing.T) {
	w, _, _, _ := newWatcher(t)

	var once sync.Once
	w.OnBuild = func(batch.FileResult) {
		// still inside Start: the event loop has not been launched yet
		once.Do(w.Stop)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(context.Background()) }()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(waitFor):
		t.Fatal("Start did not return after Stop")
	}

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(waitFor):
		t.Fatal("Stop blocked after an aborted Start")
	}
}

func TestWatcher_StopRacesFailingStart(t *testing.T) {
	w, src, _, _ := newWatcher(t)
	for i := 0; i < 200; i++ {
		require.NoError(t, os.MkdirAll(filepath.Join(src, "dirs", strconv.Itoa(i)), 0755))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()
	time.Sleep(time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(waitFor):
		t.Fatal("Stop blocked while Start was failing")
	}
	assert.Error(t, <-errCh)
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, _, _, _ := newWatcher(t)
	w.Stop()
}

func TestWatcher_ContextCancel(t *testing.T) {
	w, _, _, _ := newWatcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(batch.Options{SourceDir: t.TempDir()})
	assert.Error(t, err)
}
