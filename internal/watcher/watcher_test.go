package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchTriggersOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 1)
	if err := fw.Watch(path, func(p string) {
		select {
		case changed <- p:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != path {
			t.Errorf("callback path = %q, want %q", p, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked after write")
	}
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := New(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch(filepath.Join(t.TempDir(), "missing.png"), func(string) {}); err == nil {
		t.Error("Watch should fail for a missing file")
	}
}
