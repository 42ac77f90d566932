package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/prefab/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	l := logger.New().(*logger.Logger)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info("restoring artifact")
	l.Warn("patch matched no lines")
	l.Error(zerr.New("save failed"))

	out := buf.String()
	if !strings.Contains(out, "restoring artifact") {
		t.Errorf("missing info message in output: %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "patch matched no lines") {
		t.Errorf("missing warn message in output: %q", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "save failed") {
		t.Errorf("missing error message in output: %q", out)
	}
}
