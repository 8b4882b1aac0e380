package segmenter

// VideoSegment is one accepted span of frames. EndFrame is exclusive, so the
// clip covers [StartFrame, EndFrame) and Duration is (EndFrame-StartFrame)/fps.
type VideoSegment struct {
	StartFrame    int     `json:"start_frame"`
	EndFrame      int     `json:"end_frame"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	Duration      float64 `json:"duration"`
	AvgSimilarity float64 `json:"avg_similarity"`
}

// FrameCount returns the number of frames the segment spans.
func (s VideoSegment) FrameCount() int {
	return s.EndFrame - s.StartFrame
}

// DiscardClass buckets rejected candidate segments.
type DiscardClass string

const (
	DiscardShort   DiscardClass = "short"
	DiscardStatic  DiscardClass = "static"
	DiscardChaotic DiscardClass = "chaotic"
)

// Stats are the run counters owned by one segmenter policy instance. They
// only increase while the run is live and are frozen once it ends.
type Stats struct {
	TotalFrames      int `json:"total_frames"`
	SceneChanges     int `json:"scene_changes"`
	DynamicSegments  int `json:"dynamic_segments"`
	DiscardedShort   int `json:"discarded_short"`
	DiscardedStatic  int `json:"discarded_static"`
	DiscardedChaotic int `json:"discarded_chaotic"`
}
