package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit color used for platforms, particles and HUD elements.
type RGB struct {
	R, G, B uint8
}

// Predefined colors for game elements.
var (
	ColorGray      = RGB{100, 100, 100} // Fallback for unparseable level colors
	ColorWhite     = RGB{255, 255, 255}
	ColorBlack     = RGB{0, 0, 0}
	ColorSky       = RGB{70, 130, 180}
	ColorGround    = RGB{34, 139, 34}
	ColorPlatform  = RGB{101, 67, 33}
	ColorDoor      = RGB{184, 134, 11}
	ColorShirt     = RGB{50, 120, 220}
	ColorSkin      = RGB{255, 220, 177}
	ColorStamina   = RGB{70, 170, 255}
	ColorHeart     = RGB{255, 50, 50}
	ColorExplosion = RGB{255, 50, 50}
	ColorImpact    = RGB{255, 230, 100}
	ColorLanding   = RGB{180, 180, 180}
	ColorDamage    = RGB{255, 255, 100}
	ColorGold      = RGB{255, 215, 0}
)

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale multiplies each channel by f (clamped to [0, 1]).
func (c RGB) Scale(f float64) RGB {
	f = ClampF(f, 0, 1)
	return RGB{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}

// ParseColor accepts "#rgb", "#rrggbb" or a list of at least three numbers
// and returns the color. Anything else returns (ColorGray, false).
func ParseColor(v any) (RGB, bool) {
	switch val := v.(type) {
	case nil:
		return ColorGray, false
	case string:
		return parseHexColor(val)
	case []any:
		if len(val) < 3 {
			return ColorGray, false
		}
		var ch [3]uint8
		for i := 0; i < 3; i++ {
			n, ok := toChannel(val[i])
			if !ok {
				return ColorGray, false
			}
			ch[i] = n
		}
		return RGB{ch[0], ch[1], ch[2]}, true
	case []int:
		if len(val) < 3 {
			return ColorGray, false
		}
		return RGB{
			uint8(Clamp(val[0], 0, 255)),
			uint8(Clamp(val[1], 0, 255)),
			uint8(Clamp(val[2], 0, 255)),
		}, true
	case RGB:
		return val, true
	default:
		return ColorGray, false
	}
}

func parseHexColor(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return ColorGray, false
	}
	s = s[1:]
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) < 6 {
		return ColorGray, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return ColorGray, false
		}
		ch[i] = uint8(n)
	}
	return RGB{ch[0], ch[1], ch[2]}, true
}

// toChannel converts a decoded number (YAML, JSON or TOML) to a color channel.
func toChannel(v any) (uint8, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		f = float64(parsed)
	default:
		return 0, false
	}
	return uint8(Clamp(int(f), 0, 255)), true
}
