// Package sink persists run artifacts: exported clips, sampled frame images,
// and the per-run metadata sidecar. The output directory is locked for the
// duration of a run.
package sink
