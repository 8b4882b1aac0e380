// Package segmenter decides which contiguous frame spans of a capture carry
// useful background motion. It implements the scan.Policy contract for the
// segmenting tool.
package segmenter
