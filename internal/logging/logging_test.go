package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.log")
	log, err := New("info", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("hidden")
	log.Infow("document saved", "rev", 2)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "document saved") || !strings.Contains(got, `"rev": 2`) {
		t.Fatalf("log file missing entry: %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug entry written at info level: %q", got)
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
