package scan_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"framesift/internal/logging"
	"framesift/internal/scan"
	"framesift/internal/video"
)

// fakeSource serves a fixed number of tiny frames.
type fakeSource struct {
	frames int
	next   int
	closed bool
}

func (s *fakeSource) Next() (*video.Frame, error) {
	if s.next >= s.frames {
		return nil, io.EOF
	}
	frame := video.NewFrame(s.next, 30, 2, 2, make([]byte, 2*2*3))
	s.next++
	return frame, nil
}

func (s *fakeSource) FPS() float64       { return 30 }
func (s *fakeSource) TotalFrames() int64 { return int64(s.frames) }
func (s *fakeSource) Width() int         { return 2 }
func (s *fakeSource) Height() int        { return 2 }
func (s *fakeSource) Close() error       { s.closed = true; return nil }

// scriptedEngine returns a per-frame score keyed by the current frame index.
type scriptedEngine struct {
	scores map[int]float64
	calls  []int
}

func (e *scriptedEngine) Compute(a, b *video.Frame) (float64, error) {
	e.calls = append(e.calls, b.Index)
	if score, ok := e.scores[b.Index]; ok {
		return score, nil
	}
	return 0.5, nil
}

// recordingPolicy captures the decision sequence the runner drives.
type recordingPolicy struct {
	bootstraps []int
	decisions  []int
	scores     []float64
	flushedAt  int
	flushed    bool
	sampleAll  bool
	doneAfter  int
}

func (p *recordingPolicy) Bootstrap(frameIdx int) scan.Action {
	p.bootstraps = append(p.bootstraps, frameIdx)
	if p.sampleAll {
		return scan.Action{Kind: scan.Sample, Reason: scan.ReasonInitial}
	}
	return scan.Action{Kind: scan.Skip}
}

func (p *recordingPolicy) Decide(frameIdx int, score float64) scan.Action {
	p.decisions = append(p.decisions, frameIdx)
	p.scores = append(p.scores, score)
	if p.sampleAll {
		return scan.Action{Kind: scan.Sample, Reason: scan.ReasonSignificantChange}
	}
	return scan.Action{Kind: scan.Skip}
}

func (p *recordingPolicy) Flush(lastIdx int) scan.Action {
	p.flushed = true
	p.flushedAt = lastIdx
	return scan.Action{Kind: scan.Skip}
}

func (p *recordingPolicy) Done() bool {
	return p.doneAfter > 0 && len(p.decisions)+len(p.bootstraps) >= p.doneAfter
}

func TestRunDrivesPolicyInOrder(t *testing.T) {
	src := &fakeSource{frames: 5}
	engine := &scriptedEngine{scores: map[int]float64{2: 0.1}}
	policy := &recordingPolicy{}

	result, err := scan.Run(context.Background(), src, engine, policy, scan.Hooks{}, logging.NewNop())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.TotalFrames != 5 {
		t.Fatalf("expected 5 frames, got %d", result.TotalFrames)
	}
	if len(policy.bootstraps) != 1 || policy.bootstraps[0] != 0 {
		t.Fatalf("expected one bootstrap at frame 0, got %v", policy.bootstraps)
	}
	if len(policy.decisions) != 4 {
		t.Fatalf("expected 4 decisions, got %v", policy.decisions)
	}
	for i, idx := range policy.decisions {
		if idx != i+1 {
			t.Fatalf("decisions out of order: %v", policy.decisions)
		}
	}
	if policy.scores[1] != 0.1 {
		t.Fatalf("scripted score not delivered: %v", policy.scores)
	}
	if !policy.flushed || policy.flushedAt != 4 {
		t.Fatalf("expected flush at last index 4, got %v at %d", policy.flushed, policy.flushedAt)
	}
	// One similarity call per consecutive pair.
	if len(engine.calls) != 4 {
		t.Fatalf("expected 4 similarity calls, got %v", engine.calls)
	}
}

func TestRunInvokesSampleHook(t *testing.T) {
	src := &fakeSource{frames: 3}
	policy := &recordingPolicy{sampleAll: true}

	var sampled []int
	hooks := scan.Hooks{
		OnSample: func(frame *video.Frame, reason scan.Reason) error {
			sampled = append(sampled, frame.Index)
			return nil
		},
	}
	if _, err := scan.Run(context.Background(), src, &scriptedEngine{}, policy, hooks, logging.NewNop()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(sampled) != 3 {
		t.Fatalf("expected every frame sampled, got %v", sampled)
	}
}

func TestRunStopsWhenPolicyIsDone(t *testing.T) {
	src := &fakeSource{frames: 1000}
	policy := &recordingPolicy{doneAfter: 5}

	result, err := scan.Run(context.Background(), src, &scriptedEngine{}, policy, scan.Hooks{}, logging.NewNop())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.TotalFrames != 5 {
		t.Fatalf("expected the runner to stop after 5 frames, got %d", result.TotalFrames)
	}
}

func TestRunPropagatesSampleHookFailure(t *testing.T) {
	src := &fakeSource{frames: 3}
	policy := &recordingPolicy{sampleAll: true}
	sinkErr := errors.New("disk full")

	hooks := scan.Hooks{
		OnSample: func(frame *video.Frame, reason scan.Reason) error { return sinkErr },
	}
	if _, err := scan.Run(context.Background(), src, &scriptedEngine{}, policy, hooks, logging.NewNop()); !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error to propagate, got %v", err)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{frames: 10}
	if _, err := scan.Run(ctx, src, &scriptedEngine{}, &recordingPolicy{}, scan.Hooks{}, logging.NewNop()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunReportsProgressAtCadence(t *testing.T) {
	src := &fakeSource{frames: 10}
	var reports []int
	hooks := scan.Hooks{
		ProgressEvery: 3,
		OnProgress:    func(done int, total int64) { reports = append(reports, done) },
	}
	if _, err := scan.Run(context.Background(), src, &scriptedEngine{}, &recordingPolicy{}, hooks, logging.NewNop()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Cadence reports at 3, 6, 9 plus the final report at 10.
	want := []int{3, 6, 9, 10}
	if len(reports) != len(want) {
		t.Fatalf("unexpected progress reports: %v", reports)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Fatalf("unexpected progress reports: %v", reports)
		}
	}
}
