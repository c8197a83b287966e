package level

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level/formats"
)

// FromDocument interprets a decoded level file. Missing or malformed fields
// fall back to d; a document without a non-empty levels list yields the
// synthetic default level. The bool reports whether that fallback was used.
func FromDocument(doc formats.Document, d Defaults) ([]Level, bool) {
	entries, ok := doc.Levels()
	if !ok || len(entries) == 0 {
		return []Level{Default()}, true
	}

	levels := make([]Level, 0, len(entries))
	for i, m := range entries {
		levels = append(levels, parseLevel(m, i, d))
	}
	return levels, false
}

func parseLevel(m map[string]any, index int, d Defaults) Level {
	lvl := Level{
		Name: fmt.Sprintf("Level %d", index+1),
	}
	if name, ok := str(m["name"]); ok && name != "" {
		lvl.Name = name
	}

	g, _ := formats.AsMap(m["ground"])
	lvl.Ground = Ground{
		Y:      numOr(g, "y", d.Ground.Y),
		StartX: numOr(g, "start_x", d.Ground.StartX),
		EndX:   numOr(g, "end_x", d.Ground.EndX),
	}

	if list, ok := formats.AsList(m["platforms"]); ok {
		for _, entry := range list {
			p, ok := formats.AsMap(entry)
			if !ok {
				continue
			}
			lvl.Platforms = append(lvl.Platforms, parsePlatform(p))
		}
	}

	goal, _ := formats.AsMap(m["goal"])
	lvl.Goal = core.NewRect(
		numOr(goal, "x", d.Goal.X),
		numOr(goal, "y", d.Goal.Y),
		numOr(goal, "w", d.Goal.W),
		numOr(goal, "h", d.Goal.H),
	)

	spawn, _ := formats.AsMap(m["spawn"])
	lvl.Spawn = core.V(
		numOr(spawn, "x", d.Spawn.X),
		numOr(spawn, "y", d.Spawn.Y),
	)

	if list, ok := formats.AsList(m["enemies"]); ok {
		for _, entry := range list {
			e, ok := formats.AsMap(entry)
			if !ok {
				continue
			}
			lvl.Enemies = append(lvl.Enemies, parseEnemy(e))
		}
	}

	return lvl
}

func parsePlatform(p map[string]any) Platform {
	color, _ := core.ParseColor(normalizeColor(p["color"]))
	t, _ := str(p["type"])
	return Platform{
		Rect: core.NewRect(
			numOr(p, "x", 0),
			numOr(p, "y", 0),
			firstNonZero(p, "w", "width"),
			firstNonZero(p, "h", "height"),
		),
		Color: color,
		Type:  CanonicalPlatformType(t),
	}
}

func parseEnemy(e map[string]any) EnemyTemplate {
	t, _ := str(e["type"])
	tpl := EnemyTemplate{
		X:        numOr(e, "x", 0),
		Y:        numOr(e, "y", 0),
		Type:     t,
		Radius:   optNum(e, "radius"),
		Width:    optNonZero(e, "w", "width"),
		Height:   optNonZero(e, "h", "height"),
		Speed:    optNum(e, "speed"),
		Dir:      optNum(e, "dir"),
		FlyPhase: optNum(e, "fly_phase"),
		BaseY:    optNum(e, "base_y"),
		VelY:     optNum(e, "vel_y"),
	}
	if hp := optNum(e, "hp"); hp != nil {
		v := int(*hp)
		tpl.HP = &v
	}
	return tpl
}

// normalizeColor turns decoder list shapes into []any for core.ParseColor.
func normalizeColor(v any) any {
	if list, ok := formats.AsList(v); ok {
		return list
	}
	return v
}

// num converts any decoded scalar to float64.
func num(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func str(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case nil:
		return "", false
	default:
		return fmt.Sprint(s), true
	}
}

func numOr(m map[string]any, key string, fallback float64) float64 {
	if m == nil {
		return fallback
	}
	if f, ok := num(m[key]); ok {
		return f
	}
	return fallback
}

func optNum(m map[string]any, key string) *float64 {
	if f, ok := num(m[key]); ok {
		return &f
	}
	return nil
}

// firstNonZero returns the first key holding a non-zero number, else 0.
func firstNonZero(m map[string]any, keys ...string) float64 {
	if f := optNonZero(m, keys...); f != nil {
		return *f
	}
	return 0
}

func optNonZero(m map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		if f, ok := num(m[k]); ok && f != 0 {
			return &f
		}
	}
	return nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
