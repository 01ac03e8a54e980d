package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	originalOut, originalFormatter, originalLevel := Logger.Out, Logger.Formatter, Logger.Level
	Logger.SetOutput(&buf)
	Logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	Logger.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		Logger.SetOutput(originalOut)
		Logger.SetFormatter(originalFormatter)
		Logger.SetLevel(originalLevel)
	})
	return &buf
}

func TestContextWithFieldsAccumulates(t *testing.T) {
	buf := captureOutput(t)

	ctx := ContextWithFields(context.Background(), map[string]interface{}{"request_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]interface{}{"route": "/session"})
	FromContext(ctx).Info("hello")

	out := buf.String()
	for _, want := range []string{"request_id=abc", "route=/session", "msg=hello"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output %q", want, out)
		}
	}
}

func TestFromContextWithoutFields(t *testing.T) {
	buf := captureOutput(t)

	FromContext(context.Background()).Warn("plain")
	if !strings.Contains(buf.String(), "msg=plain") {
		t.Fatalf("expected plain entry, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if got := parseLevel("warn"); got != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", got)
	}
	if got := parseLevel("bogus"); got != logrus.DebugLevel {
		t.Fatalf("expected debug fallback, got %s", got)
	}
}
