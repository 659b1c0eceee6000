package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := Initialize("", ""); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if GetLogger().Core().Enabled(zap.ErrorLevel) {
		t.Error("expected nop logger when no level is configured")
	}
}

func TestInitializeWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "plantmanager.log")
	if err := Initialize("info", path); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })

	Info("plant saved", zap.Int64("plant_id", 7))
	Debug("hidden at info level")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "plant saved") {
		t.Errorf("log missing info entry: %q", got)
	}
	if strings.Contains(got, "hidden at info level") {
		t.Errorf("debug entry written at info level: %q", got)
	}
}

func TestInitializeRejectsUnknownLevel(t *testing.T) {
	if err := Initialize("verbose", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
