// Package config defines the framesift configuration model: defaults, TOML
// file loading, and eager validation of every decision threshold.
package config
