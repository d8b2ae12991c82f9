// Package term runs a simulation in a terminal, one character cell per grid
// cell, with mouse painting and keyboard controls.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"time"

	"sander/internal/core"
	"sander/internal/render"

	"github.com/gdamore/tcell/v2"
)

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	emptyStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
)

// Driver couples a sim to a tcell screen.
type Driver struct {
	screen tcell.Screen
	sim    core.Sim
	brush  core.Brush
	timer  *core.FixedStep
	logger *slog.Logger

	seed     int64
	paused   bool
	tickOnce bool
	buf      []byte
}

// New constructs a driver stepping sim at tps ticks per second on an
// initialised screen. The caller owns the screen and calls Fini.
func New(screen tcell.Screen, sim core.Sim, tps int, seed int64, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Driver{
		screen: screen,
		sim:    sim,
		timer:  core.NewFixedStep(tps),
		logger: logger,
		seed:   seed,
		buf:    make([]byte, 4*sim.Size().Area()),
	}
	d.brush, _ = sim.(core.Brush)
	return d
}

// Paused reports whether stepping is suspended.
func (d *Driver) Paused() bool { return d.paused }

// Run loops until the user quits or ctx is done.
func (d *Driver) Run(ctx context.Context) {
	d.screen.EnableMouse()
	d.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(d.timer.Interval())
	defer ticker.Stop()
	d.Draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !d.HandleEvent(ev) {
				d.logger.Info("quit", "frame", frameOf(d.sim))
				return
			}
		case now := <-ticker.C:
			d.Advance(d.timer.Due(now))
			d.Draw()
		}
	}
}

// Advance steps the sim n times unless paused. A pending single step runs
// even when paused.
func (d *Driver) Advance(n int) {
	if d.paused {
		n = 0
	}
	if d.tickOnce && n == 0 {
		n = 1
	}
	d.tickOnce = false
	for range n {
		d.sim.Step()
	}
}

// HandleEvent applies one input event and reports whether to keep running.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return true
}

func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	r := ev.Rune()
	switch {
	case r == 'q':
		return false
	case r == ' ':
		d.paused = !d.paused
	case r == 'n':
		d.tickOnce = true
	case r == 'r':
		d.reset(d.seed)
	case r == 's':
		d.reset(time.Now().UnixNano())
	case r >= '1' && r <= '9':
		if d.brush != nil {
			d.brush.SetMaterial(int(r - '1'))
		}
	case r == '+' || r == '=':
		if d.brush != nil {
			d.brush.SetBrushRadius(d.brush.BrushRadius() + 1)
		}
	case r == '-':
		if d.brush != nil {
			d.brush.SetBrushRadius(d.brush.BrushRadius() - 1)
		}
	}
	return true
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	if d.brush == nil {
		return
	}
	x, y := ev.Position()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		d.brush.Paint(x, y)
	case buttons&tcell.Button2 != 0:
		d.brush.Erase(x, y)
	case buttons&tcell.WheelUp != 0:
		d.brush.SetBrushRadius(d.brush.BrushRadius() + 1)
	case buttons&tcell.WheelDown != 0:
		d.brush.SetBrushRadius(d.brush.BrushRadius() - 1)
	}
}

func (d *Driver) reset(seed int64) {
	d.seed = seed
	d.sim.Reset(seed)
	d.logger.Info("reset", "seed", seed)
}

// Draw renders the grid and a status line below it.
func (d *Driver) Draw() {
	size := d.sim.Size()
	render.FillSim(d.buf, d.sim, color.White, color.Black)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			i := 4 * (y*size.W + x)
			d.screen.SetContent(x, y, ' ', nil, cellStyle(d.buf[i:i+4]))
		}
	}
	d.drawStatus(size.H)
	d.screen.Show()
}

func (d *Driver) drawStatus(row int) {
	width, _ := d.screen.Size()
	line := []rune(d.statusLine())
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		d.screen.SetContent(x, row, r, nil, statusStyle)
	}
}

func (d *Driver) statusLine() string {
	parts := []string{d.sim.Name()}
	if d.brush != nil {
		materials := d.brush.Materials()
		if m := d.brush.Material(); m >= 0 && m < len(materials) {
			parts = append(parts, fmt.Sprintf("[%d] %s", m+1, materials[m]))
		}
		parts = append(parts, fmt.Sprintf("brush %d", d.brush.BrushRadius()))
	}
	if provider, ok := d.sim.(core.ParameterProvider); ok {
		if p, ok := provider.Parameters().Lookup("frame"); ok {
			parts = append(parts, "frame "+p.Value)
		}
	}
	if d.paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, " | ")
}

// cellStyle maps one RGBA pixel to the background of a blank terminal cell.
// Transparent pixels use the terminal's black.
func cellStyle(px []byte) tcell.Style {
	if px[3] == 0 {
		return emptyStyle
	}
	return emptyStyle.Background(tcell.NewRGBColor(int32(px[0]), int32(px[1]), int32(px[2])))
}

func frameOf(sim core.Sim) string {
	provider, ok := sim.(core.ParameterProvider)
	if !ok {
		return "?"
	}
	if p, ok := provider.Parameters().Lookup("frame"); ok {
		return p.Value
	}
	return "?"
}
