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

import "strings"

// Path is an ordered chain of edges leading from a source format to a
// target format. An empty path means source and target are identical and
// no conversion is needed.
type Path []Edge

// String renders the chain as "docx -> pdf -> png".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(string(p[0].Source))
	for _, e := range p {
		b.WriteString(" -> ")
		b.WriteString(string(e.Target))
	}
	return b.String()
}

// ResolvePath finds the shortest chain of edges from source to target in g.
//
// Resolution rules, in order:
//   - source == target: empty path, no error.
//   - either format unknown to the graph: UnsupportedFormatError.
//   - a direct edge exists: single-edge path using the most preferred
//     (lowest priority) direct edge, no search.
//   - otherwise breadth-first search with unit edge cost. Among paths of
//     equal length the one with the lowest total edge priority wins; a
//     remaining tie goes to the path discovered first, with the frontier
//     walked in discovery order and neighbors in priority order, so
//     resolution is deterministic for a given registration sequence.
//   - nothing reaches target: NoPathFoundError.
func ResolvePath(g *FormatGraph, source, target Format) (Path, error) {
	if source == target {
		return Path{}, nil
	}
	if !g.SupportsFormat(source) {
		return nil, &UnsupportedFormatError{Format: source}
	}
	if !g.SupportsFormat(target) {
		return nil, &UnsupportedFormatError{Format: target}
	}

	// Direct edges short-circuit the search. Neighbors is priority-ordered,
	// so the first match is the preferred converter for the pair.
	for _, e := range g.Neighbors(source) {
		if e.Target == target {
			return Path{e}, nil
		}
	}

	// The edge that discovered a format, plus the total priority of the
	// path leading there.
	type visit struct {
		via Edge
		sum float64
	}

	settled := map[Format]visit{source: {}}
	frontier := []Format{source}

	for len(frontier) > 0 {
		level := make(map[Format]visit)
		var discovered []Format

		for _, u := range frontier {
			base := settled[u].sum
			for _, e := range g.Neighbors(u) {
				if _, done := settled[e.Target]; done {
					continue
				}
				cand := visit{via: e, sum: base + e.Priority}
				cur, seen := level[e.Target]
				switch {
				case !seen:
					level[e.Target] = cand
					discovered = append(discovered, e.Target)
				case cand.sum < cur.sum:
					level[e.Target] = cand
				}
			}
		}

		for f, vis := range level {
			settled[f] = vis
		}

		if _, ok := level[target]; ok {
			var rev []Edge
			for f := target; f != source; f = settled[f].via.Source {
				rev = append(rev, settled[f].via)
			}
			path := make(Path, len(rev))
			for i := range rev {
				path[len(rev)-1-i] = rev[i]
			}
			return path, nil
		}

		frontier = discovered
	}

	return nil, &NoPathFoundError{Source: source, Target: target}
}
