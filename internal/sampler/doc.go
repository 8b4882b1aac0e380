// Package sampler selects individual informative frames from a similarity
// stream. It implements the scan.Policy contract for the sampling tool.
package sampler
