package dock

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/dockyard/pkg/geom"
)

// seqKeys returns a key generator producing n1, n2, ...
func seqKeys() func() Key {
	i := 0
	return func() Key {
		i++
		return Key(fmt.Sprintf("n%d", i))
	}
}

func newTestTree() *Tree {
	return New(Options{NewKey: seqKeys()})
}

// mustRoot docks a single leaf into an empty tree.
func mustRoot(t *testing.T, tr *Tree, id string) Key {
	t.Helper()
	k, err := tr.Insert(Placement{Orientation: OrientationLeaf, Bounds: Full}, Content{ID: id})
	if err != nil {
		t.Fatalf("Insert root: %v", err)
	}
	return k
}

// mustSplit docks id against the given side of target at the default ratio.
func mustSplit(t *testing.T, tr *Tree, target Key, side Side, id string) Key {
	t.Helper()
	k, err := tr.Insert(Placement{
		Target:      target,
		Side:        side,
		Orientation: side.Orientation(),
		Ratio:       DefaultSplitRatio,
	}, Content{ID: id})
	if err != nil {
		t.Fatalf("Insert %s of %s: %v", side, target, err)
	}
	return k
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func rectApprox(a, b geom.Rect) bool {
	return approx(a.Left, b.Left) && approx(a.Top, b.Top) && approx(a.Right, b.Right) && approx(a.Bottom, b.Bottom)
}

func mustValid(t *testing.T, tr *Tree) {
	t.Helper()
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
