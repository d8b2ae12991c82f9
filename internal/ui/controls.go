package ui

import (
	"image"
	"math"
	"strconv"

	"sander/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 30
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	textLine       = 16
)

// controlState tracks one HUD-adjustable parameter and its button layout.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refresh pulls the control's current value from a parameter snapshot.
func (s *controlState) refresh(snap core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snap.Lookup(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
		s.hasValue = true
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control, parsed)
		s.hasValue = true
	}
}

// target returns the value one step in direction, clamped to the control's
// bounds, and whether that differs from the current value.
func (s *controlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	ctrl := s.control
	var current, next float64
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		current = float64(s.intValue)
		next = float64(s.intValue + direction*step)
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		current = s.floatValue
		next = s.floatValue + float64(direction)*step
	default:
		return 0, false
	}
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	if ctrl.Type == core.ParamTypeInt {
		next = math.Round(next)
	}
	if math.Abs(next-current) < 1e-9 {
		return 0, false
	}
	return next, true
}

// apply adjusts the parameter through whichever setter the sim offers.
func (s *controlState) apply(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	next, ok := s.target(direction)
	if !ok {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(s.control.Key, int(next)) {
			return false
		}
		s.intValue = int(next)
		s.floatValue = next
		s.value = strconv.Itoa(s.intValue)
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, next) {
			return false
		}
		s.floatValue = next
		s.value = formatFloat(s.control, next)
	default:
		return false
	}
	return true
}

// layoutControls stacks the controls from top with +/- buttons right-aligned
// within width.
func layoutControls(states []controlState, top, width int) {
	for i := range states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = rowTop
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}
