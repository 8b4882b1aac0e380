package sink

import (
	"time"

	"github.com/google/uuid"

	"framesift/internal/sampler"
	"framesift/internal/segmenter"
)

// Metadata filenames for the two run modes.
const (
	SegmentMetadataName = "segments.json"
	SampleMetadataName  = "samples.json"
)

// Metadata is the sidecar record written exactly once per run.
type Metadata struct {
	Source      string    `json:"source"`
	Tool        string    `json:"tool"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	FPS         float64   `json:"fps"`
	Config      any       `json:"config"`
	Stats       any       `json:"stats"`

	Segments []segmenter.VideoSegment `json:"segments,omitempty"`
	Clips    []string                 `json:"clips,omitempty"`
	Samples  []sampler.SampleRecord   `json:"samples,omitempty"`
	Images   []string                 `json:"images,omitempty"`
}

// Stamp fills the run identity fields. The clock and id source are
// parameters so tests can pin them and assert byte-stable output.
func (m *Metadata) Stamp(now func() time.Time, newID func() string) {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	m.RunID = newID()
	m.GeneratedAt = now().UTC()
}
