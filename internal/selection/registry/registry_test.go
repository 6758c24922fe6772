package registry

import (
	"reflect"
	"testing"

	"github.com/dshills/boxselect/internal/selection/geom"
)

type fakeContainer struct {
	origin  geom.Point
	marker  string
	order   []ID
	rects   map[ID]geom.Rect
	queries int
	origins int
}

func (c *fakeContainer) Origin() geom.Point {
	c.origins++
	return c.origin
}

func (c *fakeContainer) Query(marker string) []ID {
	c.queries++
	if marker != c.marker {
		return nil
	}
	out := make([]ID, len(c.order))
	copy(out, c.order)
	return out
}

func (c *fakeContainer) Measure(id ID) (geom.Rect, bool) {
	r, ok := c.rects[id]
	return r, ok
}

func newFake() *fakeContainer {
	return &fakeContainer{
		origin: geom.Pt(100, 50),
		marker: "cell",
		order:  []ID{"a", "b", "c"},
		rects: map[ID]geom.Rect{
			"a": geom.R(100, 50, 10, 10),
			"b": geom.R(120, 50, 10, 10),
			"c": geom.R(100, 70, 10, 10),
		},
	}
}

func TestRebuildTranslatesToContainerFrame(t *testing.T) {
	c := newFake()
	r := New()

	if n := r.Rebuild(c, "cell"); n != 3 {
		t.Fatalf("Rebuild() = %d, want 3", n)
	}

	want := map[ID]geom.Rect{
		"a": geom.R(0, 0, 10, 10),
		"b": geom.R(20, 0, 10, 10),
		"c": geom.R(0, 20, 10, 10),
	}
	for id, w := range want {
		got, ok := r.Lookup(id)
		if !ok {
			t.Errorf("Lookup(%q) missing", id)
			continue
		}
		if got != w {
			t.Errorf("Lookup(%q) = %v, want %v", id, got, w)
		}
	}

	if c.origins != 1 {
		t.Errorf("Origin() called %d times, want 1", c.origins)
	}
}

func TestRebuildPreservesOrder(t *testing.T) {
	c := newFake()
	c.order = []ID{"c", "a", "b"}
	r := New()
	r.Rebuild(c, "cell")

	if got := r.Items(); !reflect.DeepEqual(got, []ID{"c", "a", "b"}) {
		t.Errorf("Items() = %v, want [c a b]", got)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	c := newFake()
	r := New()
	r.Rebuild(c, "cell")
	first := r.snap

	r.Rebuild(c, "cell")
	second := r.snap

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second rebuild differs: %v vs %v", first, second)
	}
	if r.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", r.Generation())
	}
}

func TestRebuildReplacesWholesale(t *testing.T) {
	c := newFake()
	r := New()
	r.Rebuild(c, "cell")

	c.order = []ID{"b", "d"}
	c.rects["d"] = geom.R(140, 50, 10, 10)
	r.Rebuild(c, "cell")

	if _, ok := r.Lookup("a"); ok {
		t.Error("stale item a survived rebuild")
	}
	if got, _ := r.Lookup("d"); got != geom.R(40, 0, 10, 10) {
		t.Errorf("Lookup(d) = %v, want (40,0 10x10)", got)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRebuildUnmeasurableItem(t *testing.T) {
	c := newFake()
	delete(c.rects, "b")
	r := New()

	if n := r.Rebuild(c, "cell"); n != 2 {
		t.Errorf("Rebuild() = %d, want 2", n)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if _, ok := r.Lookup("b"); ok {
		t.Error("unmeasured item has geometry")
	}

	hits := r.Hits(geom.R(0, 0, 1000, 1000))
	if !reflect.DeepEqual(hits, []ID{"a", "c"}) {
		t.Errorf("Hits() = %v, want [a c]", hits)
	}
}

func TestRebuildSkipsDuplicates(t *testing.T) {
	c := newFake()
	c.order = []ID{"a", "b", "a"}
	r := New()
	r.Rebuild(c, "cell")

	if got := r.Items(); !reflect.DeepEqual(got, []ID{"a", "b"}) {
		t.Errorf("Items() = %v, want [a b]", got)
	}
}

func TestRebuildWrongMarker(t *testing.T) {
	c := newFake()
	r := New()
	if n := r.Rebuild(c, "other"); n != 0 {
		t.Errorf("Rebuild() = %d, want 0", n)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestHits(t *testing.T) {
	c := newFake()
	r := New()
	r.Rebuild(c, "cell")

	tests := []struct {
		name  string
		bound geom.Rect
		want  []ID
	}{
		{"all", geom.R(5, 5, 20, 20), []ID{"a", "b", "c"}},
		{"none", geom.R(50, 50, 5, 5), []ID{}},
		{"edge", geom.R(30, 0, 0, 0), []ID{"b"}},
		{"point", geom.R(5, 25, 0, 0), []ID{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Hits(tt.bound); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Hits(%v) = %v, want %v", tt.bound, got, tt.want)
			}
		})
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := newFake()
	r := New()
	r.Rebuild(c, "cell")

	items := r.Items()
	items[0] = "zzz"
	if r.Items()[0] != "a" {
		t.Error("Items() exposed internal slice")
	}
}

func TestReset(t *testing.T) {
	c := newFake()
	r := New()
	r.Rebuild(c, "cell")
	r.Reset()

	if r.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", r.Len())
	}
	if _, ok := r.Lookup("a"); ok {
		t.Error("Lookup after Reset found item")
	}
}
