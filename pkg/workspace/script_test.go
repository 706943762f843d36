package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

const sampleScript = `
[viewport]
width = 250
height = 100

[[panels]]
id = "a"

[[panels]]
id = "b"

[[panels]]
id = "c"

[[steps]]
action = "drop"
panel = "a"
at = [125, 50]

[[steps]]
action = "drop"
panel = "b"
at = [240, 50]

[[steps]]
action = "resize"
at = [125, 50]
delta = -25

[[steps]]
action = "resize"
at = [125, 50]
delta = 20

[[steps]]
action = "viewport"
width = 500
height = 100

[[steps]]
action = "drop"
panel = "c"
at = [400, 5]

[[steps]]
action = "remove"
panel = "a"
`

func TestScriptRun(t *testing.T) {
	s, err := ParseScript(sampleScript)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Steps) != 7 || s.Steps[0].At != [2]float64{125, 50} {
		t.Fatalf("steps = %+v", s.Steps)
	}

	w, res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied != 6 || res.Rejected != 1 {
		t.Errorf("result = %+v, want 6 applied, 1 rejected", res)
	}
	if err := w.Tree().Validate(); err != nil {
		t.Fatal(err)
	}
	if w.Viewport() != geom.RectFromLTWH(0, 0, 500, 100) {
		t.Errorf("viewport = %+v", w.Viewport())
	}
	snap := w.Snapshot()
	if _, ok := snap.Leaf("a"); ok {
		t.Error("a should have been removed")
	}
	b, okB := snap.Leaf("b")
	c, okC := snap.Leaf("c")
	if !okB || !okC {
		t.Fatalf("leaves = %+v", snap.Nodes)
	}
	if c.Inner.Bottom > b.Inner.Top {
		t.Errorf("c should sit above b: c=%+v b=%+v", c.Inner, b.Inner)
	}
}

func TestScriptMove(t *testing.T) {
	s, err := ParseScript(`
[[panels]]
id = "a"
[[panels]]
id = "b"
[[steps]]
action = "drop"
panel = "a"
at = [640, 400]
[[steps]]
action = "drop"
panel = "b"
at = [10, 400]
[[steps]]
action = "move"
panel = "b"
at = [1270, 400]
[[steps]]
action = "lock"
[[steps]]
action = "unlock"
`)
	if err != nil {
		t.Fatal(err)
	}
	w, res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Applied != 5 {
		t.Errorf("applied = %d", res.Applied)
	}
	a, _ := w.Snapshot().Leaf("a")
	b, _ := w.Snapshot().Leaf("b")
	if a.Inner.Right > b.Inner.Left {
		t.Errorf("b should now be right of a: a=%+v b=%+v", a.Inner, b.Inner)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"unknown action", "[[steps]]\naction = \"explode\"", errs.ErrCodeInvalidConfig},
		{"unknown key", "[[steps]]\naction = \"drop\"\npanl = \"a\"", errs.ErrCodeInvalidConfig},
		{"bad layout", "[layout]\nsplit_ratio = 2", errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript(tt.body); !errs.Is(err, tt.code) {
				t.Errorf("ParseScript = %v, want %s", err, tt.code)
			}
		})
	}

	s, err := ParseScript("[[steps]]\naction = \"remove\"\npanel = \"editor\"")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Run(context.Background(), nil); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Run = %v, want NOT_FOUND", err)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	if err := os.WriteFile(path, []byte(sampleScript), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Config.Viewport.Width != 250 || len(s.Config.Panels) != 3 {
		t.Errorf("config = %+v", s.Config)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.toml")); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("LoadScript(missing) = %v", err)
	}
}
