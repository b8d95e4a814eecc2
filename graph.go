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
	"fmt"
	"sort"
)

// Edge is a directed conversion capability: one converter that turns a
// source-format file into a target-format file. Multiple edges may share a
// format pair as long as their converter names differ; priority decides
// which of them path resolution prefers.
type Edge struct {
	Source    Format
	Target    Format
	Name      string
	Priority  float64
	Converter Converter
}

// FormatGraph is the directed graph of registered conversion edges.
// Construct one with NewFormatGraph and register edges during setup; after
// that the graph is read-only and safe for concurrent readers.
type FormatGraph struct {
	adjacency map[Format][]Edge
	incoming  map[Format]int
	edgeCount int
}

// NewFormatGraph returns an empty graph.
func NewFormatGraph() *FormatGraph {
	return &FormatGraph{
		adjacency: make(map[Format][]Edge),
		incoming:  make(map[Format]int),
	}
}

// RegisterEdge adds a conversion edge. Self-loops are rejected with
// ErrSelfLoopEdge. Registering the same (source, target, name) triple twice
// returns a DuplicateEdgeError and leaves the graph unchanged. The edges of
// each source stay sorted by priority, lowest (most preferred) first.
func (g *FormatGraph) RegisterEdge(source, target Format, name string, c Converter, priority float64) error {
	if source == target {
		return fmt.Errorf("register %s -> %s: %w", source, target, ErrSelfLoopEdge)
	}
	for _, e := range g.adjacency[source] {
		if e.Target == target && e.Name == name {
			return &DuplicateEdgeError{Source: source, Target: target, Name: name}
		}
	}
	g.adjacency[source] = append(g.adjacency[source], Edge{
		Source:    source,
		Target:    target,
		Name:      name,
		Priority:  priority,
		Converter: c,
	})
	sort.SliceStable(g.adjacency[source], func(i, j int) bool {
		return g.adjacency[source][i].Priority < g.adjacency[source][j].Priority
	})
	g.incoming[target]++
	g.edgeCount++
	return nil
}

// Neighbors returns the outgoing edges of f in priority order. The slice is
// shared with the graph; callers must not modify it.
func (g *FormatGraph) Neighbors(f Format) []Edge {
	return g.adjacency[f]
}

// SupportsFormat reports whether f participates in any edge, as source or
// as target.
func (g *FormatGraph) SupportsFormat(f Format) bool {
	if len(g.adjacency[f]) > 0 {
		return true
	}
	return g.incoming[f] > 0
}

// Formats returns every format participating in the graph, sorted.
func (g *FormatGraph) Formats() []Format {
	seen := make(map[Format]bool, len(g.adjacency))
	for f := range g.adjacency {
		if len(g.adjacency[f]) > 0 {
			seen[f] = true
		}
	}
	for f, n := range g.incoming {
		if n > 0 {
			seen[f] = true
		}
	}
	out := make([]Format, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns all registered edges, ordered by source format and then by
// priority within each source.
func (g *FormatGraph) Edges() []Edge {
	sources := make([]Format, 0, len(g.adjacency))
	for f := range g.adjacency {
		sources = append(sources, f)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	out := make([]Edge, 0, g.edgeCount)
	for _, f := range sources {
		out = append(out, g.adjacency[f]...)
	}
	return out
}

// EdgeCount returns the number of registered edges.
func (g *FormatGraph) EdgeCount() int {
	return g.edgeCount
}
