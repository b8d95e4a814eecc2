package convctl

import (
	"testing"
)

func TestResolvePathDirect(t *testing.T) {
	a, b, c := Format("a"), Format("b"), Format("c")

	t.Run("direct edge beats shorter priority sum", func(t *testing.T) {
		// The two-hop route is cheaper by priority, but hop count rules.
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "direct", 100)
		mustEdge(t, g, a, c, "hop1", 0)
		mustEdge(t, g, c, b, "hop2", 0)

		path, err := ResolvePath(g, a, b)
		if err != nil {
			t.Fatalf("ResolvePath error: %v", err)
		}
		if len(path) != 1 || path[0].Name != "direct" {
			t.Errorf("ResolvePath = %s (len %d), want the direct edge", path, len(path))
		}
	})

	t.Run("lowest priority direct edge wins", func(t *testing.T) {
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "slow", PriorityFallback)
		mustEdge(t, g, a, b, "fast", PriorityPreferred)

		path, err := ResolvePath(g, a, b)
		if err != nil {
			t.Fatalf("ResolvePath error: %v", err)
		}
		if len(path) != 1 || path[0].Name != "fast" {
			t.Errorf("ResolvePath took %q, want the preferred direct edge", path[0].Name)
		}
	})
}

func TestResolvePathSearch(t *testing.T) {
	a, b, c, d, e := Format("a"), Format("b"), Format("c"), Format("d"), Format("e")

	t.Run("multi-hop chain in order", func(t *testing.T) {
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "ab", 0)
		mustEdge(t, g, b, c, "bc", 0)
		mustEdge(t, g, c, d, "cd", 0)
		mustEdge(t, g, d, e, "de", 0)

		path, err := ResolvePath(g, a, e)
		if err != nil {
			t.Fatalf("ResolvePath error: %v", err)
		}
		if got, want := path.String(), "a -> b -> c -> d -> e"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
		for i := 1; i < len(path); i++ {
			if path[i].Source != path[i-1].Target {
				t.Errorf("path edge %d starts at %q, previous ended at %q", i, path[i].Source, path[i-1].Target)
			}
		}
	})

	t.Run("fewest hops wins", func(t *testing.T) {
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "ab", 0)
		mustEdge(t, g, b, e, "be", 0)
		mustEdge(t, g, a, c, "ac", 0)
		mustEdge(t, g, c, d, "cd", 0)
		mustEdge(t, g, d, e, "de", 0)

		path, err := ResolvePath(g, a, e)
		if err != nil {
			t.Fatalf("ResolvePath error: %v", err)
		}
		if len(path) != 2 {
			t.Errorf("ResolvePath = %s (len %d), want the 2-hop route", path, len(path))
		}
	})

	t.Run("priority sum breaks equal length", func(t *testing.T) {
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "ab", 0)
		mustEdge(t, g, b, d, "bd", 5)
		mustEdge(t, g, a, c, "ac", 0)
		mustEdge(t, g, c, d, "cd", 1)

		path, err := ResolvePath(g, a, d)
		if err != nil {
			t.Fatalf("ResolvePath error: %v", err)
		}
		if len(path) != 2 || path[0].Target != c {
			t.Errorf("ResolvePath = %s, want the route through c (priority sum 1)", path)
		}
	})

	t.Run("remaining tie goes to first discovered", func(t *testing.T) {
		// Both routes have length 2 and priority sum 0; the edge a->b was
		// registered first, so the b route is discovered first and sticks.
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "ab", 0)
		mustEdge(t, g, b, d, "bd", 0)
		mustEdge(t, g, a, c, "ac", 0)
		mustEdge(t, g, c, d, "cd", 0)

		for i := 0; i < 10; i++ {
			path, err := ResolvePath(g, a, d)
			if err != nil {
				t.Fatalf("ResolvePath error: %v", err)
			}
			if path[0].Target != b {
				t.Fatalf("ResolvePath = %s on run %d, want the route through b every time", path, i)
			}
		}
	})

	t.Run("cycles terminate", func(t *testing.T) {
		g := NewFormatGraph()
		mustEdge(t, g, a, b, "ab", 0)
		mustEdge(t, g, b, a, "ba", 0)
		mustEdge(t, g, b, c, "bc", 0)

		path, err := ResolvePath(g, a, c)
		if err != nil {
			t.Fatalf("ResolvePath error: %v", err)
		}
		if got, want := path.String(), "a -> b -> c"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

func TestResolvePathErrors(t *testing.T) {
	a, b, x, y := Format("a"), Format("b"), Format("x"), Format("y")

	g := NewFormatGraph()
	mustEdge(t, g, a, b, "ab", 0)
	mustEdge(t, g, x, y, "xy", 0)

	t.Run("same format needs no conversion", func(t *testing.T) {
		path, err := ResolvePath(g, a, a)
		if err != nil {
			t.Fatalf("ResolvePath(a, a) error: %v", err)
		}
		if len(path) != 0 {
			t.Errorf("ResolvePath(a, a) = %s, want empty path", path)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := ResolvePath(g, "zzz", b)
		if !IsUnsupportedFormat(err) {
			t.Errorf("ResolvePath(zzz, b) = %v, want UnsupportedFormatError", err)
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := ResolvePath(g, a, "zzz")
		if !IsUnsupportedFormat(err) {
			t.Errorf("ResolvePath(a, zzz) = %v, want UnsupportedFormatError", err)
		}
	})

	t.Run("disconnected components", func(t *testing.T) {
		_, err := ResolvePath(g, a, y)
		if !IsNoPathFound(err) {
			t.Errorf("ResolvePath(a, y) = %v, want NoPathFoundError", err)
		}
	})

	t.Run("edges are directed", func(t *testing.T) {
		_, err := ResolvePath(g, b, a)
		if !IsNoPathFound(err) {
			t.Errorf("ResolvePath(b, a) = %v, want NoPathFoundError", err)
		}
	})
}

func TestPathString(t *testing.T) {
	if got := (Path{}).String(); got != "" {
		t.Errorf("empty Path.String() = %q, want empty", got)
	}
}
