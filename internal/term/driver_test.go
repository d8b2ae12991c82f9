package term

import (
	"strings"
	"testing"

	"sander/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

func newTestDriver(t *testing.T) (*Driver, *sand.World, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 12)
	world := sand.New(16, 10)
	return New(screen, world, 60, 1, nil), world, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestQuitKeys(t *testing.T) {
	d, _, _ := newTestDriver(t)
	if d.HandleEvent(key('q')) {
		t.Fatal("q should quit")
	}
	if d.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
	if !d.HandleEvent(key('x')) {
		t.Fatal("unbound key must not quit")
	}
}

func TestPauseAndSingleStep(t *testing.T) {
	d, world, _ := newTestDriver(t)
	d.HandleEvent(key(' '))
	if !d.Paused() {
		t.Fatal("space should pause")
	}
	d.Advance(3)
	if world.Frame() != 0 {
		t.Fatalf("paused driver stepped to frame %d", world.Frame())
	}
	d.HandleEvent(key('n'))
	d.Advance(0)
	if world.Frame() != 1 {
		t.Fatalf("single step should advance one frame, got %d", world.Frame())
	}
	d.HandleEvent(key(' '))
	d.Advance(2)
	if world.Frame() != 3 {
		t.Fatalf("expected frame 3 after resuming, got %d", world.Frame())
	}
}

func TestMaterialAndBrushKeys(t *testing.T) {
	d, world, _ := newTestDriver(t)
	d.HandleEvent(key('2'))
	if world.Material() != int(sand.KindWater) {
		t.Fatalf("expected water selected, got %d", world.Material())
	}
	d.HandleEvent(key('9'))
	if world.Material() != int(sand.KindWater) {
		t.Fatal("out of range material key should be ignored")
	}
	before := world.BrushRadius()
	d.HandleEvent(key('+'))
	if world.BrushRadius() != before+1 {
		t.Fatalf("expected brush %d, got %d", before+1, world.BrushRadius())
	}
	d.HandleEvent(key('-'))
	if world.BrushRadius() != before {
		t.Fatalf("expected brush %d, got %d", before, world.BrushRadius())
	}
}

func TestMousePaintsAndErases(t *testing.T) {
	d, world, _ := newTestDriver(t)
	world.SetBrushRadius(1)
	d.HandleEvent(tcell.NewEventMouse(4, 3, tcell.Button1, tcell.ModNone))
	if got := world.Counts()[sand.KindSand]; got != 1 {
		t.Fatalf("expected one sand particle, got %d", got)
	}
	d.HandleEvent(tcell.NewEventMouse(4, 3, tcell.Button2, tcell.ModNone))
	if got := world.Counts()[sand.KindSand]; got != 0 {
		t.Fatalf("erase should remove the particle, got %d", got)
	}
}

func TestDrawUsesParticleColor(t *testing.T) {
	d, world, screen := newTestDriver(t)
	world.SetBrushRadius(1)
	world.Paint(5, 5)
	d.Draw()

	c, _ := world.Grid().Coord(5, 5)
	p, ok := world.Grid().Value(c)
	if !ok {
		t.Fatal("expected painted particle")
	}
	_, _, style, _ := screen.GetContent(5, 5)
	_, bg, _ := style.Decompose()
	want := tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))
	if bg != want {
		t.Fatalf("expected background %v, got %v", want, bg)
	}
}

func TestStatusLine(t *testing.T) {
	d, _, screen := newTestDriver(t)
	d.HandleEvent(key(' '))
	d.Draw()

	var sb strings.Builder
	for x := 0; x < 20; x++ {
		r, _, _, _ := screen.GetContent(x, 10)
		sb.WriteRune(r)
	}
	line := sb.String()
	if !strings.HasPrefix(line, "sand | [1] sand") {
		t.Fatalf("unexpected status line %q", line)
	}
	if !strings.Contains(d.statusLine(), "paused") {
		t.Fatalf("status should report pause: %q", d.statusLine())
	}
}

func TestCellStyleTransparent(t *testing.T) {
	if got := cellStyle([]byte{10, 20, 30, 0}); got != emptyStyle {
		t.Fatalf("transparent pixel should use the empty style, got %v", got)
	}
	_, bg, _ := cellStyle([]byte{10, 20, 30, 255}).Decompose()
	if bg != tcell.NewRGBColor(10, 20, 30) {
		t.Fatalf("unexpected background %v", bg)
	}
}
