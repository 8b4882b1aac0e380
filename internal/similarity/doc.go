// Package similarity provides the perceptual-similarity primitive shared by
// the segmenter and sampler: a deterministic [0,1] score between consecutive
// luminance planes.
package similarity
