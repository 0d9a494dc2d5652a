package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafailong/clojure-journal/internal/config"
)

func TestDirs(t *testing.T) {
	cfg, err := config.Parse([]byte(config.ExampleDocument), nil)
	require.NoError(t, err)

	got := Dirs("/site", cfg)
	assert.Equal(t, []string{
		filepath.Join("/site", "docs"),
		filepath.Join("/site", "blog"),
		filepath.Join("/site", "static"),
		filepath.Join("/site", "src"),
	}, got)
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	w, err := New(Options{
		ConfigPath: filepath.Join(root, config.DefaultFileName),
		Dirs:       []string{filepath.Join(root, "docs")},
	}, func(context.Context) error { return nil })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"config write", config.DefaultFileName, fsnotify.Write, true},
		{"env file", ".env.local", fsnotify.Create, true},
		{"unrelated root file", "package.json", fsnotify.Write, false},
		{"doc change", "docs/intro.md", fsnotify.Write, true},
		{"doc removal", "docs/intro.md", fsnotify.Remove, true},
		{"chmod only", "docs/intro.md", fsnotify.Chmod, false},
		{"editor swap file", "docs/.intro.md.swp", fsnotify.Write, false},
		{"editor backup", "docs/intro.md~", fsnotify.Write, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(tt.path)), Op: tt.op}
			assert.Equal(t, tt.want, w.relevant(ev))
		})
	}
}

func TestNewRequiresRunFunc(t *testing.T) {
	_, err := New(Options{ConfigPath: "journal.config.yaml"}, nil)
	require.Error(t, err)
}

func TestRunRerunsOnChangeAndStopsOnCancel(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o750))
	cfgPath := filepath.Join(root, config.DefaultFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte(config.ExampleDocument), 0o600))

	var runs atomic.Int32
	w, err := New(Options{ConfigPath: cfgPath, Dirs: []string{docs, filepath.Join(root, "missing")}, Debounce: 50 * time.Millisecond},
		func(context.Context) error {
			runs.Add(1)
			return nil
		})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not become ready")
	}
	assert.Equal(t, int32(1), runs.Load())

	require.NoError(t, os.WriteFile(filepath.Join(docs, "intro.md"), []byte("# Intro\n"), 0o600))
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRunWatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o750))

	var runs atomic.Int32
	w, err := New(Options{ConfigPath: filepath.Join(root, config.DefaultFileName), Dirs: []string{docs}, Debounce: 20 * time.Millisecond},
		func(context.Context) error {
			runs.Add(1)
			return nil
		})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	<-w.Ready()

	sub := filepath.Join(docs, "guides")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	before := runs.Load()
	require.NoError(t, os.WriteFile(filepath.Join(sub, "setup.md"), []byte("# Setup\n"), 0o600))
	assert.Eventually(t, func() bool { return runs.Load() > before }, 5*time.Second, 10*time.Millisecond)
}

func TestRunWatchesRefreshedDirs(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o750))
	moved := filepath.Join(t.TempDir(), "handbook")
	require.NoError(t, os.MkdirAll(moved, 0o750))

	var runs atomic.Int32
	w, err := New(Options{
		ConfigPath:  filepath.Join(root, config.DefaultFileName),
		Dirs:        []string{docs},
		RefreshDirs: func() []string { return []string{docs, moved} },
		Debounce:    20 * time.Millisecond,
	}, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	<-w.Ready()
	require.Equal(t, int32(1), runs.Load())

	require.NoError(t, os.WriteFile(filepath.Join(moved, "intro.md"), []byte("# Intro\n"), 0o600))
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestRefreshSkipsWatchedDirs(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	calls := 0
	w, err := New(Options{
		ConfigPath: filepath.Join(root, config.DefaultFileName),
		Dirs:       []string{docs},
		RefreshDirs: func() []string {
			calls++
			return []string{docs + string(filepath.Separator), filepath.Join(root, "blog")}
		},
	}, func(context.Context) error { return nil })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })

	w.refresh()
	w.refresh()
	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{docs, filepath.Join(root, "blog")}, w.dirs)
}
