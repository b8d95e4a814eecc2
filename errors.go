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
	"errors"
	"fmt"
)

// ErrSelfLoopEdge is returned when an edge is registered with identical
// source and target formats.
var ErrSelfLoopEdge = errors.New("self-loop conversion edge")

// UnsupportedFormatError is returned when a format participates in no
// registered conversion edge.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", string(e.Format))
}

// DuplicateEdgeError is returned when the same (source, target, converter)
// triple is registered twice. It indicates a configuration bug; the graph
// is left unchanged.
type DuplicateEdgeError struct {
	Source Format
	Target Format
	Name   string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("duplicate conversion edge %s -> %s via %q", e.Source, e.Target, e.Name)
}

// NoPathFoundError is returned when no chain of registered converters
// links the source format to the target format.
type NoPathFoundError struct {
	Source Format
	Target Format
}

func (e *NoPathFoundError) Error() string {
	return fmt.Sprintf("no conversion path from %s to %s", e.Source, e.Target)
}

// StepError reports the failure of a single step in a conversion chain.
// The chain is aborted at the failing step; earlier steps had succeeded.
type StepError struct {
	Step      int // 1-based position in the chain
	Source    Format
	Target    Format
	Converter string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s -> %s via %s): %v", e.Step, e.Source, e.Target, e.Converter, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsNoPathFound reports whether the error is a NoPathFoundError.
func IsNoPathFound(err error) bool {
	var target *NoPathFoundError
	return errors.As(err, &target)
}

// IsDuplicateEdge reports whether the error is a DuplicateEdgeError.
func IsDuplicateEdge(err error) bool {
	var target *DuplicateEdgeError
	return errors.As(err, &target)
}

// AsStepError returns the StepError wrapped in err, or nil if there is none.
func AsStepError(err error) *StepError {
	var target *StepError
	if errors.As(err, &target) {
		return target
	}
	return nil
}
