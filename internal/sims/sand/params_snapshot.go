package sand

import "sander/internal/core"

// Parameters reports the world's current tunables for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	counts := w.Counts()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("frame", "Frame", w.frame),
				core.IntParam("moves", "Moves", w.lastMoves),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				core.IntParam("material", "Material", int(w.material)),
				core.StringParam("material_name", "Material name", w.material.String()),
				core.IntParam("brush_radius", "Brush radius", w.brush),
				core.BoolParam("overwrite", "Overwrite", params.Overwrite),
			},
		},
		{
			Name: "Scene",
			Params: []core.Parameter{
				core.FloatParam("initial_fill", "Initial fill", params.InitialFill),
				core.FloatParam("water_ratio", "Water ratio", params.WaterRatio),
				core.IntParam("ledges", "Wood ledges", params.Ledges),
				core.IntParam("ledge_width", "Ledge width", params.LedgeWidth),
			},
		},
		{
			Name: "Particles",
			Params: []core.Parameter{
				core.IntParam("count_sand", "Sand", counts[KindSand]),
				core.IntParam("count_water", "Water", counts[KindWater]),
				core.IntParam("count_wood", "Wood", counts[KindWood]),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable from the HUD. Scene values
// take effect on the next Reset.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "material", Label: "Material", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: float64(kindCount - 1), HasMin: true, HasMax: true},
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: maxBrush, HasMin: true, HasMax: true},
		{Key: "initial_fill", Label: "Initial fill", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "water_ratio", Label: "Water ratio", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "ledges", Label: "Wood ledges", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "material":
		return w.SetMaterial(value)
	case "brush_radius":
		w.SetBrushRadius(value)
		return true
	case "ledges":
		if value < 0 {
			return false
		}
		w.cfg.Params.Ledges = value
		return true
	case "ledge_width":
		if value < 1 {
			return false
		}
		w.cfg.Params.LedgeWidth = value
		return true
	}
	return false
}

// SetFloatParameter updates a floating point tunable, clamped to [0, 1].
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "initial_fill":
		w.cfg.Params.InitialFill = clamp01(value)
		return true
	case "water_ratio":
		w.cfg.Params.WaterRatio = clamp01(value)
		return true
	}
	return false
}
