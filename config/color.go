package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// HexColor is a color written as "#RRGGBB" or "#RRGGBBAA" in config files.
type HexColor color.NRGBA

// NRGBA returns the color as a color.NRGBA.
func (h HexColor) NRGBA() color.NRGBA {
	return color.NRGBA(h)
}

// String formats the color, omitting alpha when it is opaque.
func (h HexColor) String() string {
	if h.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", h.R, h.G, h.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", h.R, h.G, h.B, h.A)
}

// MarshalText implements encoding.TextMarshaler.
func (h HexColor) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexColor) UnmarshalText(text []byte) error {
	c, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*h = c
	return nil
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA"; the leading '#' is optional.
func ParseHexColor(s string) (HexColor, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return HexColor{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return HexColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return HexColor{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}
