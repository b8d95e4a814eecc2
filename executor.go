// Copyright 2026 Mayberyzen
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convctl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request describes one file conversion. Source and Target are optional:
// empty values are derived from the file extensions, and Source falls back
// to content detection when the input has no usable extension.
type Request struct {
	InputPath  string
	OutputPath string
	Source     Format
	Target     Format
}

// Result reports a completed conversion. Intermediates lists the temporary
// step files created along the chain; all of them are removed before
// Execute returns, so the paths are informational.
type Result struct {
	OutputPath    string
	Path          Path
	Intermediates []string
}

// Executor runs resolved conversion chains. Every step writes a fresh
// temporary file; on success the final one is renamed onto the requested
// output path and the rest are removed, on failure all of them are removed.
// Concurrent Execute calls are safe: step-file names carry a per-call
// unique suffix.
type Executor struct {
	tempDir     string
	stepTimeout time.Duration
	logger      *slog.Logger
}

// NewExecutor returns an executor with default settings: step files beside
// the output file, no per-step timeout, slog.Default() logging.
func NewExecutor() *Executor {
	return &Executor{logger: slog.Default()}
}

// Execute resolves a conversion path for req in g and runs it step by step.
// The first failing step aborts the chain; there are no retries and no
// alternate-path fallback.
func (x *Executor) Execute(ctx context.Context, g *FormatGraph, req Request) (*Result, error) {
	if _, err := os.Stat(req.InputPath); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}

	source, target, err := requestFormats(req)
	if err != nil {
		return nil, err
	}

	path, err := ResolvePath(g, source, target)
	if err != nil {
		return nil, err
	}

	res := &Result{OutputPath: req.OutputPath, Path: path}

	if len(path) == 0 {
		// Same format on both sides: nothing to convert, but the caller
		// still asked for the output file.
		if err := copyFile(req.InputPath, req.OutputPath); err != nil {
			return nil, err
		}
		return res, nil
	}

	x.log().Debug("conversion path resolved",
		"route", path.String(), "steps", len(path))

	temps := make([]string, 0, len(path))
	cleanup := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}

	current := req.InputPath
	for i, edge := range path {
		stepOut := x.stepPath(req.OutputPath, edge.Target)
		temps = append(temps, stepOut)
		if err := x.runStep(ctx, i+1, edge, current, stepOut); err != nil {
			cleanup()
			return nil, err
		}
		current = stepOut
	}

	// The last step file becomes the output; everything before it is
	// scratch. Step files default to the output directory, so the rename
	// stays on one filesystem.
	if err := os.Rename(current, req.OutputPath); err != nil {
		// A configured temp dir may live on another filesystem where
		// rename cannot reach the output; fall back to a byte copy.
		if copyErr := copyFile(current, req.OutputPath); copyErr != nil {
			cleanup()
			return nil, fmt.Errorf("finalize output: %w", err)
		}
	}
	res.Intermediates = append([]string(nil), temps[:len(temps)-1]...)
	cleanup()

	return res, nil
}

func (x *Executor) runStep(ctx context.Context, n int, edge Edge, in, out string) error {
	stepCtx := ctx
	if x.stepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, x.stepTimeout)
		defer cancel()
	}

	x.log().Debug("conversion step",
		"step", n, "from", edge.Source, "to", edge.Target, "converter", edge.Name)

	if err := edge.Converter.Convert(stepCtx, in, out); err != nil {
		return &StepError{
			Step:      n,
			Source:    edge.Source,
			Target:    edge.Target,
			Converter: edge.Name,
			Err:       err,
		}
	}
	return nil
}

// stepPath builds a unique step-file name in the output directory (or the
// configured temp dir) carrying the step's target format extension, since
// several external tools key their behavior off it.
func (x *Executor) stepPath(outputPath string, f Format) string {
	dir := x.tempDir
	if dir == "" {
		dir = filepath.Dir(outputPath)
	}
	base := filepath.Base(outputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s.tmp-%s.%s", stem, uuid.NewString()[:8], f))
}

func (x *Executor) log() *slog.Logger {
	if x.logger == nil {
		return slog.Default()
	}
	return x.logger
}

// requestFormats derives the source and target formats of a request,
// normalizing explicit values and falling back to the file extensions.
func requestFormats(req Request) (source, target Format, err error) {
	source = req.Source
	if source == "" {
		source = FormatFromPath(req.InputPath)
		if source == "" {
			source = DetectFormat(req.InputPath)
		}
	} else {
		source = ParseFormat(string(source))
	}
	if source == "" {
		return "", "", fmt.Errorf("cannot determine source format of %q: specify one", req.InputPath)
	}

	target = req.Target
	if target == "" {
		target = FormatFromPath(req.OutputPath)
	} else {
		target = ParseFormat(string(target))
	}
	if target == "" {
		return "", "", fmt.Errorf("cannot determine target format of %q: specify one", req.OutputPath)
	}

	return source, target, nil
}

func copyFile(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return fmt.Errorf("%s and %s are the same file", src, dst)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	// An aliased destination (symlink, hard link) would be truncated by
	// Create before a single byte is read.
	si, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if di, err := os.Stat(dst); err == nil && os.SameFile(si, di) {
		return fmt.Errorf("%s and %s are the same file", src, dst)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
