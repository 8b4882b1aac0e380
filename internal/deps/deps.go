package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary framesift relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Decode returns the requirements for reading and writing video through the
// codec backend.
func Decode(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Decodes frames, re-encodes clips, and performs the one-shot remediation transcode",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Inspects containers for frame rate, geometry, and frame counts",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// FirstMissing returns the first required dependency that is unavailable, or
// nil when everything resolved.
func FirstMissing(statuses []Status) *Status {
	for i := range statuses {
		if !statuses[i].Available && !statuses[i].Optional {
			return &statuses[i]
		}
	}
	return nil
}
