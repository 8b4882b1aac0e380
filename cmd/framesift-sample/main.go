package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"framesift/internal/logging"
)

func main() {
	var verbose bool
	cmd := newRootCommand(&verbose)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if verbose {
				for _, cause := range logging.ErrorTrace(err) {
					fmt.Fprintln(os.Stderr, "  "+cause)
				}
			}
		}
		os.Exit(1)
	}
}
