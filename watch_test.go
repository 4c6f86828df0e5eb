package swiftdaddy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchRebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "Content")
	if err := os.MkdirAll(content, 0o755); err != nil {
		t.Fatal(err)
	}
	app := testApp(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuilt := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- app.Watch(ctx, []string{content, filepath.Join(root, "missing")}, func(context.Context) error {
			rebuilt <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(content, "post.md"), []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after a change")
	}
	select {
	case <-rebuilt:
		t.Error("a burst of changes should trigger a single rebuild")
	case <-time.After(2 * watchDebounce):
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
