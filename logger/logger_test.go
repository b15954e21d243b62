package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := Setup(LogConfig{Level: "debug", Format: "json", Output: path}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() { _ = Setup(DefaultConfig()) })

	l := WithComponent("ledger")
	l.Info().Str("invoice_no", "TI -65").Msg("invoice committed")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"component":"ledger"`, `"invoice_no":"TI -65"`, `"message":"invoice committed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %s", out, want)
		}
	}
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	if err := Setup(LogConfig{Level: "loud"}); err == nil {
		t.Fatal("Setup accepted an unknown level")
	}
}
