package ui

import (
	"math"
	"strconv"

	"flightsim/internal/core"
)

// Row is one adjustable parameter as shown on the panel.
type Row struct {
	Control  core.ParameterControl
	Value    string
	HasValue bool

	intValue   int
	floatValue float64
}

// Panel tracks the adjustable parameters of a simulation and applies
// increments through its setters. It holds no drawing state.
type Panel struct {
	provider    core.ParameterProvider
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter

	Rows     []Row
	Snapshot core.ParameterSnapshot
}

// NewPanel inspects target for the parameter interfaces it implements.
func NewPanel(target any) *Panel {
	p := &Panel{}
	if provider, ok := target.(core.ParameterProvider); ok {
		p.provider = provider
	}
	if provider, ok := target.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		p.Rows = make([]Row, len(controls))
		for i, ctrl := range controls {
			p.Rows[i] = Row{Control: ctrl, Value: "--"}
		}
	}
	if setter, ok := target.(core.IntParameterSetter); ok {
		p.intSetter = setter
	}
	if setter, ok := target.(core.FloatParameterSetter); ok {
		p.floatSetter = setter
	}
	return p
}

// Refresh re-reads the snapshot and the current value of every row.
func (p *Panel) Refresh() {
	if p.provider == nil {
		p.Snapshot = core.ParameterSnapshot{}
		return
	}
	p.Snapshot = p.provider.Parameters()
	for i := range p.Rows {
		row := &p.Rows[i]
		row.HasValue = false
		row.Value = "--"
		param, ok := p.Snapshot.Lookup(row.Control.Key)
		if !ok {
			continue
		}
		switch row.Control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			row.intValue = parsed
			row.floatValue = float64(parsed)
			row.Value = strconv.Itoa(parsed)
			row.HasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			row.floatValue = parsed
			row.Value = FormatFloat(row.Control, parsed)
			row.HasValue = true
		}
	}
}

// CanAdjust reports whether row i can move one step in direction.
func (p *Panel) CanAdjust(i, direction int) bool {
	_, ok := p.next(i, direction)
	return ok
}

// Adjust moves row i one step in direction, clamped to the control bounds,
// and reports whether the simulation accepted the new value.
func (p *Panel) Adjust(i, direction int) bool {
	target, ok := p.next(i, direction)
	if !ok {
		return false
	}
	row := &p.Rows[i]
	switch row.Control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(target))
		if !p.intSetter.SetIntParameter(row.Control.Key, v) {
			return false
		}
		row.intValue = v
		row.floatValue = float64(v)
		row.Value = strconv.Itoa(v)
	case core.ParamTypeFloat:
		if !p.floatSetter.SetFloatParameter(row.Control.Key, target) {
			return false
		}
		row.floatValue = target
		row.Value = FormatFloat(row.Control, target)
	}
	return true
}

// next returns the clamped value one step away, and false when there is no
// setter or the value would not change.
func (p *Panel) next(i, direction int) (float64, bool) {
	if i < 0 || i >= len(p.Rows) || direction == 0 {
		return 0, false
	}
	row := p.Rows[i]
	if !row.HasValue {
		return 0, false
	}
	ctrl := row.Control
	step := ctrl.Step
	current := row.floatValue
	switch ctrl.Type {
	case core.ParamTypeInt:
		if p.intSetter == nil {
			return 0, false
		}
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
		current = float64(row.intValue)
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	target := current + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return 0, false
	}
	return target, true
}

// FormatFloat prints value with a precision that suits the control step.
func FormatFloat(ctrl core.ParameterControl, value float64) string {
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
