package dock

import (
	"testing"

	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

func TestInsertRemoveRoundTrip(t *testing.T) {
	vp := geom.RectFromLTWH(0, 0, 800, 600)
	tr := newTestTree()
	p, _ := HitTest(tr, vp, geom.Pt(400, 300))
	a, err := tr.Insert(p, Content{ID: "a", Name: "A"})
	if err != nil {
		t.Fatal(err)
	}
	before := tr.Clone()

	p, ok := HitTest(tr, vp, geom.Pt(50, 300))
	if !ok || p.Orientation != OrientationRow || p.Side != SideLeft || p.Ratio != 0.5 {
		t.Fatalf("placement = %+v", p)
	}
	b, err := tr.Insert(p, Content{ID: "b", Name: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 3 {
		t.Fatalf("Len = %d after insert, want 3", tr.Len())
	}

	got, err := tr.Remove(b)
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Errorf("Remove returned %q, want %q", got, a)
	}
	mustValid(t, tr)
	if !tr.Equal(before) {
		t.Error("insert then remove did not restore the tree")
	}
	root, _ := tr.Root()
	if c, ok := root.Content(); !ok || c.ID != "a" || root.Bounds != Full {
		t.Errorf("root = %+v, want leaf a at (0,0,1,1)", root)
	}
}

func TestRemoveLastLeaf(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	got, err := tr.Remove(a)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" || !tr.Empty() || tr.Len() != 0 {
		t.Errorf("Remove(root) = %q, tree empty=%v len=%d", got, tr.Empty(), tr.Len())
	}
	mustValid(t, tr)
}

func TestRemoveAdoptsSplitSibling(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	b := mustSplit(t, tr, a, SideRight, "b") // n1 row [n2=a, n3=b]
	mustSplit(t, tr, b, SideBottom, "c")     // n3 column [n4=b, n5=c]

	got, err := tr.Remove("n2")
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Errorf("Remove returned %q, want %q", got, a)
	}
	mustValid(t, tr)

	root, _ := tr.Root()
	kids, ok := root.Children()
	if !ok || root.Orientation() != OrientationColumn || kids != [2]Key{"n4", "n5"} {
		t.Fatalf("root = %+v, want column [n4 n5]", root)
	}
	for _, k := range kids {
		if n, _ := tr.Node(k); n.Parent != a {
			t.Errorf("%s parent = %q, want %q", k, n.Parent, a)
		}
	}
	if tr.Has(b) || tr.Has("n2") {
		t.Error("removed leaf and absorbed sibling should be gone")
	}
}

func TestRemoveErrors(t *testing.T) {
	tr := newTestTree()
	a := mustRoot(t, tr, "a")
	mustSplit(t, tr, a, SideRight, "b")

	if _, err := tr.Remove("zz"); !errs.Is(err, errs.ErrCodeInvalidTarget) {
		t.Errorf("Remove(missing) = %v", err)
	}
	if _, err := tr.Remove(a); !errs.Is(err, errs.ErrCodeInvalidTarget) {
		t.Errorf("Remove(split) = %v", err)
	}
}

func TestMove(t *testing.T) {
	t.Run("onto sibling", func(t *testing.T) {
		tr := newTestTree()
		a := mustRoot(t, tr, "a")
		b := mustSplit(t, tr, a, SideRight, "b") // n1 row [n2=a, n3=b]

		k, err := tr.Move(b, Placement{Target: "n2", Side: SideTop, Orientation: OrientationColumn, Ratio: 0.5})
		if err != nil {
			t.Fatal(err)
		}
		mustValid(t, tr)
		root, _ := tr.Root()
		kids, _ := root.Children()
		if root.Key != a || root.Orientation() != OrientationColumn || kids[0] != k {
			t.Errorf("root = %+v, moved leaf %s", root, k)
		}
		if n, _ := tr.Node(k); n.Bounds != (Bounds{0, 0, 1, 0.5}) {
			t.Errorf("moved bounds = %+v", n.Bounds)
		}
		if c, _ := tr.FindContent("b"); c.Key != k {
			t.Errorf("content b lives at %s, want %s", c.Key, k)
		}
	})

	t.Run("onto itself", func(t *testing.T) {
		tr := newTestTree()
		a := mustRoot(t, tr, "a")
		b := mustSplit(t, tr, a, SideRight, "b")
		before := tr.Clone()
		k, err := tr.Move(b, Placement{Target: b, Side: SideLeft, Orientation: OrientationRow, Ratio: 0.5})
		if err != nil || k != b {
			t.Fatalf("Move = %q, %v", k, err)
		}
		if !tr.Equal(before) || tr.Revision() != before.Revision() {
			t.Error("self move changed the tree")
		}
	})

	t.Run("across subtrees", func(t *testing.T) {
		tr := newTestTree()
		a := mustRoot(t, tr, "a")
		b := mustSplit(t, tr, a, SideRight, "b") // n1 row [n2=a, n3=b]
		mustSplit(t, tr, b, SideBottom, "c")     // n3 column [n4=b, n5=c]

		k, err := tr.Move("n2", Placement{Target: "n5", Side: SideBottom, Orientation: OrientationColumn, Ratio: 0.5})
		if err != nil {
			t.Fatal(err)
		}
		mustValid(t, tr)
		if n, _ := tr.Node(k); n.Parent != "n5" {
			t.Errorf("moved leaf parent = %q, want n5", n.Parent)
		}
		if len(tr.Leaves()) != 3 {
			t.Errorf("leaves = %d, want 3", len(tr.Leaves()))
		}
	})

	t.Run("only leaf re-roots", func(t *testing.T) {
		tr := newTestTree()
		a := mustRoot(t, tr, "a")
		k, err := tr.Move(a, Placement{Orientation: OrientationLeaf, Bounds: Full})
		if err != nil {
			t.Fatal(err)
		}
		if tr.RootKey() != k || tr.Len() != 1 {
			t.Errorf("root = %q, len %d", tr.RootKey(), tr.Len())
		}
	})

	t.Run("failure leaves tree untouched", func(t *testing.T) {
		tr := newTestTree()
		a := mustRoot(t, tr, "a")
		b := mustSplit(t, tr, a, SideRight, "b")
		before := tr.Clone()
		_, err := tr.Move(b, Placement{Target: "missing", Side: SideLeft, Orientation: OrientationRow, Ratio: 0.5})
		if !errs.Is(err, errs.ErrCodeInvalidTarget) {
			t.Errorf("Move = %v, want INVALID_TARGET", err)
		}
		if !tr.Equal(before) {
			t.Error("failed move mutated the tree")
		}
		if _, err := tr.Move(a, Placement{Target: "n2", Side: SideLeft, Orientation: OrientationRow, Ratio: 0.5}); !errs.Is(err, errs.ErrCodeInvalidTarget) {
			t.Errorf("moving a split = %v", err)
		}
	})
}
