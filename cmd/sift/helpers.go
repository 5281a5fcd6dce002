package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// expandOne expands a single glob pattern, falling back to treating the
// pattern as a direct path.
func expandOne(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	if len(matches) > 0 {
		return matches, nil
	}
	if _, statErr := os.Stat(pattern); statErr == nil {
		return []string{pattern}, nil
	}
	slog.Warn("No files found matching pattern", "pattern", pattern)
	return nil, nil
}

// fileProgress returns a progress bar over the input files, or nil when a
// single file makes one pointless.
func fileProgress(count int, description string) *progressbar.ProgressBar {
	if count < 2 {
		return nil
	}
	return progressbar.NewOptions(count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
	)
}

func bumpProgress(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
