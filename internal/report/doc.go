// Package report renders end-of-run terminal summaries.
package report
