// Package scan is the generic single-pass frame scanner. It decodes frames,
// scores each against its predecessor, and defers every keep/cut/skip
// decision to a pluggable Policy, so the decision state machines can be
// exercised with synthetic score sequences and no real video.
package scan
