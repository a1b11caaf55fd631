package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func newBufferLogger(level Level) (*StdLogger, *bytes.Buffer) {
	var buf bytes.Buffer

	return &StdLogger{
		out:   log.New(&buf, "", 0),
		level: level,
	}, &buf
}

func TestNopDiscards(t *testing.T) {
	l := Nop()

	l.Debug("a")
	l.Info("b", Fields{"k": 1})
	l.Warn("c")
	l.Error(errors.New("boom"), "d")

	if wl := l.WithFields(Fields{"k": 1}); wl == nil {
		t.Fatal("WithFields returned nil")
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("low-severity entries leaked: %q", out)
	}

	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("missing warn entry: %q", out)
	}
}

func TestFieldsAreSortedAndMerged(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel)

	wl := l.WithFields(Fields{"component": "psd"})
	wl.Debug("segmenting", Fields{"segments": 4, "fftsize": 256})

	out := strings.TrimSpace(buf.String())
	want := "DEBUG segmenting component=psd fftsize=256 segments=4"

	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestErrorIncludesCause(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel)

	l.Error(errors.New("short read"), "decode failed")

	if !strings.Contains(buf.String(), "error=short read") {
		t.Fatalf("missing error field: %q", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		DebugLevel: "DEBUG",
		InfoLevel:  "INFO",
		WarnLevel:  "WARN",
		ErrorLevel: "ERROR",
		Level(42):  "UNKNOWN",
	}

	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
