package convctl

import (
	"log/slog"
	"time"
)

// Option configures an Engine.
type Option func(*Engine)

// WithTempDir routes conversion step files to dir instead of the output
// file's directory.
func WithTempDir(dir string) Option {
	return func(e *Engine) {
		e.executor.tempDir = dir
	}
}

// WithDPI sets the render resolution for PDF page rasterization
// (default: 200).
func WithDPI(dpi int) Option {
	return func(e *Engine) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// WithJPEGQuality sets the quality used when encoding JPEG output, 1-100
// (default: 95).
func WithJPEGQuality(q int) Option {
	return func(e *Engine) {
		if q > 0 && q <= 100 {
			e.jpegQuality = q
		}
	}
}

// WithLogger sets the structured logger used by the engine and its
// executor (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
			e.executor.logger = l
		}
	}
}

// WithStepTimeout bounds each conversion step. A step hitting the limit is
// aborted and reported as that step's failure (default: no limit).
func WithStepTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.executor.stepTimeout = d
	}
}
