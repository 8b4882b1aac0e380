package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"framesift/internal/logging"
)

func TestNewJSONFormatEmitsStructuredRecords(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("scan complete", "frames", 300)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "scan complete" {
		t.Fatalf("unexpected message: %v", record["msg"])
	}
	if record["frames"] != float64(300) {
		t.Fatalf("unexpected frames attribute: %v", record["frames"])
	}
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: buf, NoTint: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warning missing from output: %q", out)
	}
}

func TestNewRejectsUnknownLevelAndFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	if _, err := logging.New(logging.Options{Level: "loud", Format: "console", Writer: buf}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := logging.New(logging.Options{Level: "info", Format: "xml", Writer: buf}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithComponentTagsRecords(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "segmenter").Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record[logging.FieldComponent] != "segmenter" {
		t.Fatalf("missing component attribute: %v", record)
	}
}

func TestErrorTraceWalksWrapChain(t *testing.T) {
	root := errors.New("exit status 1")
	mid := fmt.Errorf("start decoder: %w", root)
	top := fmt.Errorf("open capture.mp4: %w", mid)

	trace := logging.ErrorTrace(top)
	if len(trace) != 3 {
		t.Fatalf("expected 3 causes, got %d: %v", len(trace), trace)
	}
	if trace[0] != top.Error() {
		t.Fatalf("trace must start at the outermost error, got %q", trace[0])
	}
	if trace[2] != "exit status 1" {
		t.Fatalf("trace must end at the root cause, got %q", trace[2])
	}
	if logging.ErrorTrace(nil) != nil {
		t.Fatal("nil error must produce no trace")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing should happen")
	if nested := logging.WithComponent(nil, "x"); nested == nil {
		t.Fatal("WithComponent(nil) must return a usable logger")
	}
}
