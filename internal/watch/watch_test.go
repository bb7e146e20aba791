package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatchRebuildsOnSourceWrite(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builds := make(chan struct{}, 16)
	w := &Watcher{Dirs: []string{dir}, Suffix: ".vy", Debounce: 10 * time.Millisecond}
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() error {
			select {
			case builds <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// The watcher registers asynchronously, so keep touching the file
	// until a rebuild is observed.
	path := filepath.Join(dir, "token.vy")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for rebuilt := false; !rebuilt; {
		select {
		case <-builds:
			rebuilt = true
		case <-tick.C:
			if err := os.WriteFile(path, []byte("pass\n"), 0644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no rebuild after writing a source file")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestRelevantFiltersSuffix(t *testing.T) {
	w := &Watcher{Suffix: ".vy"}
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"a.vy", fsnotify.Write, true},
		{"a.vy", fsnotify.Create, true},
		{"a.vy", fsnotify.Remove, false},
		{"notes.txt", fsnotify.Write, false},
	}
	for _, tt := range tests {
		if got := w.relevant(fsnotify.Event{Name: tt.name, Op: tt.op}); got != tt.want {
			t.Errorf("relevant(%s %s) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}
