package deps_test

import (
	"testing"

	"framesift/internal/deps"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Ghost", Command: "framesift-test-binary-that-does-not-exist"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected unavailable status")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "Unset", Command: "  "}})
	if statuses[0].Available {
		t.Fatal("expected unavailable status for empty command")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestFirstMissingSkipsOptional(t *testing.T) {
	statuses := []deps.Status{
		{Name: "Optional", Optional: true, Available: false},
		{Name: "Required", Available: false, Detail: "gone"},
	}
	missing := deps.FirstMissing(statuses)
	if missing == nil || missing.Name != "Required" {
		t.Fatalf("expected the required dependency, got %+v", missing)
	}
}

func TestFirstMissingAllAvailable(t *testing.T) {
	statuses := []deps.Status{{Name: "FFmpeg", Available: true}}
	if missing := deps.FirstMissing(statuses); missing != nil {
		t.Fatalf("expected nil, got %+v", missing)
	}
}

func TestDecodeRequirementsNameBothBinaries(t *testing.T) {
	reqs := deps.Decode("ffmpeg", "ffprobe")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "ffmpeg" || reqs[1].Command != "ffprobe" {
		t.Fatalf("unexpected commands: %+v", reqs)
	}
}
