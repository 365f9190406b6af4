package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Drop-directory watcher — corpus files detected after writes settle,
// non-corpus noise ignored, clean shutdown.
// =============================================================================

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func TestWatcher_DetectsNewCorpus(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dropped := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		dropped <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)

	corpus := filepath.Join(dir, "tweets.csv")
	require.NoError(t, os.WriteFile(corpus, []byte("text,date\nhola,2023-01-01\n"), 0644))

	path, ok := waitForCallback(dropped, 3*time.Second)
	assert.True(t, ok, "expected callback for new corpus")
	assert.Equal(t, corpus, path)
}

func TestWatcher_DetectsTSV(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dropped := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		dropped <- path
	}))

	time.Sleep(50 * time.Millisecond)

	corpus := filepath.Join(dir, "tweets.tsv")
	require.NoError(t, os.WriteFile(corpus, []byte("text\tdate\nhola\t2023-01-01\n"), 0644))

	path, ok := waitForCallback(dropped, 3*time.Second)
	assert.True(t, ok, "expected callback for tsv corpus")
	assert.Equal(t, corpus, path)
}

func TestWatcher_CoalescesWriteBursts(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dropped := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		dropped <- path
	}))

	time.Sleep(50 * time.Millisecond)

	// A corpus copied in chunks produces a burst of write events.
	corpus := filepath.Join(dir, "big.csv")
	require.NoError(t, os.WriteFile(corpus, []byte("text,date\n"), 0644))
	for i := 0; i < 3; i++ {
		f, err := os.OpenFile(corpus, os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("hola,2023-01-01\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())
		time.Sleep(20 * time.Millisecond)
	}

	_, ok := waitForCallback(dropped, 3*time.Second)
	assert.True(t, ok, "expected one settled callback")

	// The burst settles into a single callback, not one per write.
	_, again := waitForCallback(dropped, 700*time.Millisecond)
	assert.False(t, again, "burst should coalesce into one callback")
}

func TestWatcher_IgnoresNonCorpusFiles(t *testing.T) {
	dir := t.TempDir()

	hidden := filepath.Join(dir, ".cache")
	require.NoError(t, os.MkdirAll(hidden, 0755))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dropped := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		dropped <- path
	}))

	time.Sleep(50 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".hidden.csv"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "export.csv.part"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "scratch.csv.swp"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(hidden, "sneaky.csv"), []byte("x"), 0644)

	_, ok := waitForCallback(dropped, time.Second)
	assert.False(t, ok, "should not have received callback for non-corpus files")

	// A real corpus still comes through.
	corpus := filepath.Join(dir, "real.csv")
	require.NoError(t, os.WriteFile(corpus, []byte("text,date\n"), 0644))

	path, ok := waitForCallback(dropped, 3*time.Second)
	assert.True(t, ok, "expected callback for corpus file")
	assert.Equal(t, corpus, path)
}

func TestWatcher_DetectsCorpusInNewSubdir(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	dropped := make(chan string, 10)
	require.NoError(t, w.Watch(dir, func(path string) {
		dropped <- path
	}))

	time.Sleep(50 * time.Millisecond)

	sub := filepath.Join(dir, "incoming")
	require.NoError(t, os.MkdirAll(sub, 0755))
	time.Sleep(100 * time.Millisecond) // let the new dir join the watch list

	corpus := filepath.Join(sub, "tweets.csv")
	require.NoError(t, os.WriteFile(corpus, []byte("text,date\n"), 0644))

	path, ok := waitForCallback(dropped, 3*time.Second)
	assert.True(t, ok, "expected callback for corpus in new subdir")
	assert.Equal(t, corpus, path)
}

func TestWatcher_StopCleanup(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	require.NoError(t, w.Watch(dir, func(path string) {
		mu.Lock()
		callCount++
		mu.Unlock()
	}))

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, w.Stop())

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	// Writes after Stop never trigger callbacks, even via pending timers.
	os.WriteFile(filepath.Join(dir, "late.csv"), []byte("x"), 0644)
	time.Sleep(settleInterval + 200*time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "callbacks fired after Stop()")

	// Double-stop should be safe
	assert.NoError(t, w.Stop())
}

func TestIsCorpusFile(t *testing.T) {
	assert.True(t, isCorpusFile("/drop/tweets.csv"))
	assert.True(t, isCorpusFile("/drop/TWEETS.CSV"))
	assert.True(t, isCorpusFile("/drop/corpus.tsv"))
	assert.False(t, isCorpusFile("/drop/notes.txt"))
	assert.False(t, isCorpusFile("/drop/.hidden.csv"))
	assert.False(t, isCorpusFile("/drop/export.csv.part"))
	assert.False(t, isCorpusFile("/drop/export.csv.crdownload"))
	assert.False(t, isCorpusFile("/drop/scratch.csv~"))
	assert.False(t, isCorpusFile("/drop/wip.csv.tmp"))
}
