// Package video wraps the opaque codec backend: an ffmpeg-fed frame source
// with a one-shot remediation fallback, the decoded Frame model, and the clip
// re-encoder used by the segmenter output path.
package video
