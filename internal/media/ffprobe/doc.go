// Package ffprobe shells out to ffprobe for container inspection and exposes
// typed accessors over its JSON output.
package ffprobe
