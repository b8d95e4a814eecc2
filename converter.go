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

import "context"

const (
	// PriorityPreferred is for the primary converter of a format pair.
	PriorityPreferred = 0.0
	// PriorityFallback is for alternate converters tried only when they
	// win a path tie-break (lower priority values are preferred).
	PriorityFallback = 10.0
)

// Converter performs a single-step file conversion. Implementations treat
// both paths as opaque: they read inputPath, write outputPath, and never
// look past their own format pair. The executor owns the lifecycle of both
// files.
type Converter interface {
	// Available reports whether the converter can run on this system.
	// Pure-Go converters return true; tool-backed converters probe for
	// their binary. Edges whose converter is unavailable are never
	// registered by the engine.
	Available() bool

	// Convert reads the file at inputPath and writes the converted result
	// to outputPath. On error the converter need not clean up outputPath;
	// the executor removes it.
	Convert(ctx context.Context, inputPath, outputPath string) error
}
