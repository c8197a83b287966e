package level

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level/formats"
)

// ToDocument converts levels back into the file schema, so a pack can be
// re-encoded in any supported format.
func ToDocument(levels []Level) formats.Document {
	list := make([]any, 0, len(levels))
	for _, l := range levels {
		list = append(list, levelMap(l))
	}
	return formats.Document{"levels": list}
}

func levelMap(l Level) map[string]any {
	platforms := make([]any, 0, len(l.Platforms))
	for _, p := range l.Platforms {
		platforms = append(platforms, map[string]any{
			"x":     p.Rect.X,
			"y":     p.Rect.Y,
			"w":     p.Rect.W,
			"h":     p.Rect.H,
			"color": p.Color.Hex(),
			"type":  string(p.Type),
		})
	}

	enemies := make([]any, 0, len(l.Enemies))
	for _, e := range l.Enemies {
		enemies = append(enemies, enemyMap(e))
	}

	m := map[string]any{
		"name": l.Name,
		"ground": map[string]any{
			"y":       l.Ground.Y,
			"start_x": l.Ground.StartX,
			"end_x":   l.Ground.EndX,
		},
		"goal":  rectMap(l.Goal),
		"spawn": map[string]any{"x": l.Spawn.X, "y": l.Spawn.Y},
	}
	if len(platforms) > 0 {
		m["platforms"] = platforms
	}
	if len(enemies) > 0 {
		m["enemies"] = enemies
	}
	return m
}

func enemyMap(e EnemyTemplate) map[string]any {
	m := map[string]any{"x": e.X, "y": e.Y}
	if e.Type != "" {
		m["type"] = e.Type
	}
	put := func(key string, v *float64) {
		if v != nil {
			m[key] = *v
		}
	}
	put("radius", e.Radius)
	put("w", e.Width)
	put("h", e.Height)
	put("speed", e.Speed)
	put("dir", e.Dir)
	put("fly_phase", e.FlyPhase)
	put("base_y", e.BaseY)
	put("vel_y", e.VelY)
	if e.HP != nil {
		m["hp"] = *e.HP
	}
	return m
}

func rectMap(r core.Rect) map[string]any {
	return map[string]any{"x": r.X, "y": r.Y, "w": r.W, "h": r.H}
}
