package dock

import (
	"testing"

	errs "github.com/matzehuels/dockyard/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	tr := New(Options{})
	o := tr.Options()
	if o.Gutter != DefaultGutter || o.MinSize != DefaultMinSize || o.SplitRatio != DefaultSplitRatio {
		t.Errorf("Options() = %+v, want defaults", o)
	}
	if o.NewKey == nil || o.NewKey() == "" {
		t.Error("default NewKey should produce keys")
	}
	if !tr.Empty() || tr.Len() != 0 || tr.RootKey() != "" {
		t.Error("new tree should be empty")
	}
	mustValid(t, tr)
}

func TestOptionsOutOfRangeRatio(t *testing.T) {
	for _, r := range []float64{-1, 0, 1, 2} {
		if got := New(Options{SplitRatio: r}).Options().SplitRatio; got != DefaultSplitRatio {
			t.Errorf("SplitRatio %v -> %v, want %v", r, got, DefaultSplitRatio)
		}
	}
}

func TestWalkOrder(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	mustSplit(t, tr, a, SideRight, "b") // n1 row [n2=a, n3=b]
	mustSplit(t, tr, "n3", SideBottom, "c")

	var got []Key
	var depths []int
	tr.Walk(func(n Node, depth int) bool {
		got = append(got, n.Key)
		depths = append(depths, depth)
		return true
	})
	want := []Key{"n1", "n2", "n3", "n4", "n5"}
	wantDepth := []int{0, 1, 1, 2, 2}
	if len(got) != len(want) {
		t.Fatalf("Walk visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] || depths[i] != wantDepth[i] {
			t.Errorf("visit %d = %s@%d, want %s@%d", i, got[i], depths[i], want[i], wantDepth[i])
		}
	}

	var ids []string
	for _, n := range tr.Leaves() {
		c, _ := n.Content()
		ids = append(ids, c.ID)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("Leaves() = %v, want [a b c]", ids)
	}
}

func TestWalkSkipSubtree(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	mustSplit(t, tr, a, SideRight, "b")

	count := 0
	tr.Walk(func(n Node, _ int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("visited %d nodes, want 1", count)
	}
}

func TestSiblingAndFind(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	b := mustSplit(t, tr, a, SideLeft, "b") // n1 row [n3=b, n2=a]

	if s, ok := tr.Sibling(b); !ok || s != "n2" {
		t.Errorf("Sibling(%s) = %s, %v", b, s, ok)
	}
	if _, ok := tr.Sibling(a); ok {
		t.Error("root should have no sibling")
	}
	n, ok := tr.FindContent("a")
	if !ok || n.Key != "n2" {
		t.Errorf("FindContent(a) = %s, %v", n.Key, ok)
	}
	if _, ok := tr.FindContent("zzz"); ok {
		t.Error("FindContent should miss unknown ids")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	c := tr.Clone()
	mustSplit(t, tr, a, SideRight, "b")

	if c.Len() != 1 {
		t.Errorf("clone Len = %d after mutating original", c.Len())
	}
	if c.Equal(tr) {
		t.Error("clone should differ after mutation")
	}
	if n, _ := c.Node(a); !n.IsLeaf() {
		t.Error("clone root should still be a leaf")
	}
}

func TestNodeReturnsCopy(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	n, _ := tr.Node(a)
	n.Bounds.Right = 0.1
	if got, _ := tr.Node(a); got.Bounds != Full {
		t.Errorf("mutating a copy changed the tree: %+v", got.Bounds)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	build := func(t *testing.T) *Tree {
		tr := newTestTree()
		a := mustRoot(t, tr, "a")
		mustSplit(t, tr, a, SideRight, "b") // n1 row [n2, n3]
		return tr
	}

	tests := []struct {
		name    string
		corrupt func(tr *Tree)
	}{
		{"zero width", func(tr *Tree) { tr.nodes["n2"].Bounds.Right = 0 }},
		{"gap between children", func(tr *Tree) { tr.nodes["n2"].Bounds.Right = 0.4 }},
		{"partial cross axis", func(tr *Tree) { tr.nodes["n3"].Bounds.Bottom = 0.9 }},
		{"wrong parent", func(tr *Tree) { tr.nodes["n3"].Parent = "n2" }},
		{"missing child", func(tr *Tree) { delete(tr.nodes, "n3") }},
		{"orphan", func(tr *Tree) { tr.nodes["x"] = &Node{Key: "x", Bounds: Full, Body: Leaf{}} }},
		{"nil body", func(tr *Tree) { tr.nodes["n2"].Body = nil }},
		{"leaf orientation split", func(tr *Tree) {
			tr.nodes["n1"].Body = Split{Orientation: OrientationLeaf, Children: [2]Key{"n2", "n3"}}
		}},
		{"root has parent", func(tr *Tree) { tr.nodes["n1"].Parent = "n2" }},
		{"empty root with nodes", func(tr *Tree) { tr.root = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build(t)
			mustValid(t, tr)
			tt.corrupt(tr)
			err := tr.Validate()
			if !errs.Is(err, errs.ErrCodeCorruptTree) {
				t.Errorf("Validate() = %v, want CORRUPT_TREE", err)
			}
		})
	}
}

func TestOrientationText(t *testing.T) {
	for _, o := range []Orientation{OrientationLeaf, OrientationRow, OrientationColumn} {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", o, err)
		}
		var back Orientation
		if err := back.UnmarshalText(b); err != nil || back != o {
			t.Errorf("round trip %v -> %q -> %v (%v)", o, b, back, err)
		}
	}
	var o Orientation
	if err := o.UnmarshalText([]byte("block")); err != nil || o != OrientationLeaf {
		t.Errorf("block should decode as leaf, got %v, %v", o, err)
	}
	if err := o.UnmarshalText([]byte("diagonal")); err == nil {
		t.Error("expected error for unknown orientation")
	}
}
