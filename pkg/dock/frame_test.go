package dock

import (
	"math"
	"testing"

	"github.com/matzehuels/dockyard/pkg/geom"
)

func TestResolve(t *testing.T) {
	parent := ViewportFrame(geom.RectFromLTWH(10, 20, 200, 100))
	tests := []struct {
		name    string
		bounds  Bounds
		reserve geom.Insets
		outer   geom.Rect
		inner   geom.Rect
	}{
		{
			name:   "full",
			bounds: Full,
			outer:  geom.Rect{Left: 10, Top: 20, Right: 210, Bottom: 120},
			inner:  geom.Rect{Left: 10, Top: 20, Right: 210, Bottom: 120},
		},
		{
			name:    "first half of row",
			bounds:  Bounds{0, 0, 0.5, 1},
			reserve: geom.Insets{Right: 5},
			outer:   geom.Rect{Left: 10, Top: 20, Right: 110, Bottom: 120},
			inner:   geom.Rect{Left: 10, Top: 20, Right: 105, Bottom: 120},
		},
		{
			name:    "second quarter of column",
			bounds:  Bounds{0, 0.75, 1, 1},
			reserve: geom.Insets{Top: 5},
			outer:   geom.Rect{Left: 10, Top: 95, Right: 210, Bottom: 120},
			inner:   geom.Rect{Left: 10, Top: 100, Right: 210, Bottom: 120},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Resolve(tt.bounds, parent, tt.reserve)
			if !rectApprox(f.Outer, tt.outer) {
				t.Errorf("Outer = %+v, want %+v", f.Outer, tt.outer)
			}
			if !rectApprox(f.Inner, tt.inner) {
				t.Errorf("Inner = %+v, want %+v", f.Inner, tt.inner)
			}
		})
	}
}

func TestResolveDegenerateParent(t *testing.T) {
	for _, vp := range []geom.Rect{
		{},
		{Left: 5, Top: 5, Right: 5, Bottom: 50},
		{Left: 10, Top: 10, Right: 0, Bottom: 0},
	} {
		f := Resolve(Bounds{0.25, 0.25, 0.75, 0.75}, ViewportFrame(vp), geom.Insets{Left: 5})
		for _, v := range []float64{f.Outer.Width(), f.Outer.Height(), f.Inner.Width(), f.Inner.Height()} {
			if v != 0 || math.IsNaN(v) {
				t.Errorf("viewport %+v: frame %+v should have zero size", vp, f)
			}
		}
	}
}

func TestFramesRowWithGutter(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	b := mustSplit(t, tr, a, SideRight, "b")
	vp := geom.RectFromLTWH(0, 0, 250, 100)

	frames := tr.Frames(vp)
	if len(frames) != 3 {
		t.Fatalf("Frames returned %d entries, want 3", len(frames))
	}
	first := frames["n2"]
	second := frames[b]
	if !rectApprox(first.Outer, geom.Rect{Right: 125, Bottom: 100}) {
		t.Errorf("first outer = %+v", first.Outer)
	}
	if !approx(first.Inner.Width(), 120) || !approx(second.Inner.Width(), 120) {
		t.Errorf("inner widths = %v, %v; want 120, 120", first.Inner.Width(), second.Inner.Width())
	}
	if !approx(second.Inner.Left-first.Inner.Right, tr.Options().Gutter) {
		t.Errorf("gap = %v, want gutter", second.Inner.Left-first.Inner.Right)
	}
	if root := frames[a]; root.Inner != vp {
		t.Errorf("root inner = %+v, want viewport", root.Inner)
	}
}

func TestFrameMatchesFrames(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	b := mustSplit(t, tr, a, SideRight, "b")
	c := mustSplit(t, tr, b, SideTop, "c")
	mustSplit(t, tr, c, SideLeft, "d")
	vp := geom.RectFromLTWH(0, 0, 1024, 768)

	all := tr.Frames(vp)
	again := tr.Frames(vp)
	for k, f := range all {
		one, err := tr.Frame(k, vp)
		if err != nil {
			t.Fatalf("Frame(%s): %v", k, err)
		}
		if one != f {
			t.Errorf("Frame(%s) = %+v, Frames = %+v", k, one, f)
		}
		if again[k] != f {
			t.Errorf("Frames not idempotent for %s", k)
		}
	}
	if _, err := tr.Frame("missing", vp); err == nil {
		t.Error("Frame of unknown key should fail")
	}
}

func TestFramesEmptyTree(t *testing.T) {
	if got := newTestTree().Frames(geom.RectFromLTWH(0, 0, 10, 10)); len(got) != 0 {
		t.Errorf("Frames on empty tree = %v", got)
	}
}
