package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, closer, err := Open("", "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Info("dropped")
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "blocks.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := Open(path, "info")
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		logger.Info(msg)
		logger.Debug("hidden")
		if err := closer.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected both sessions in log, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("records out of order")
	}
}

func TestOpenBadLevel(t *testing.T) {
	if _, _, err := Open("", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
