// Package icon draws the Video Downloader Pro application icon: a blue
// disc with a white play button, a green download arrow and a ring of
// orange dots, rendered onto a transparent square canvas.
package icon

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// DefaultOutput is the file name the Tauri CLI expects as icon source.
const DefaultOutput = "app-icon.png"

// ErrInvalidLayout is returned when a Layout cannot produce a drawable icon.
var ErrInvalidLayout = errors.New("invalid icon layout")

// Palette holds the fill colors of the icon.
type Palette struct {
	Primary    color.NRGBA // main circle
	Secondary  color.NRGBA // download arrow
	Accent     color.NRGBA // ring dots
	Foreground color.NRGBA // play button
}

// DefaultPalette returns the blue / green / orange / white palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:    color.NRGBA{R: 33, G: 150, B: 243, A: 255},
		Secondary:  color.NRGBA{R: 76, G: 175, B: 80, A: 255},
		Accent:     color.NRGBA{R: 255, G: 87, B: 34, A: 255},
		Foreground: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Layout holds every dimension used to draw the icon, in pixels.
type Layout struct {
	Size         int // canvas side length
	Margin       int // inset of the main circle from each edge
	TriangleSize int // play button extent
	ArrowOffset  int // arrow reference line below the canvas center
	ArrowWidth   int // arrow head base
	ArrowHeight  int // arrow head is a third of this tall
	ShaftWidth   int
	ShaftAbove   int // shaft extent above the reference line
	ShaftBelow   int // shaft extent below the reference line
	RingInset    int // ring distance from the canvas edge
	RingDepth    int
	DotRadius    int
	DotCount     int

	Palette Palette
}

// DefaultLayout returns the 1024px layout of the application icon.
func DefaultLayout() Layout {
	return Layout{
		Size:         1024,
		Margin:       80,
		TriangleSize: 200,
		ArrowOffset:  150,
		ArrowWidth:   120,
		ArrowHeight:  140,
		ShaftWidth:   40,
		ShaftAbove:   60,
		ShaftBelow:   20,
		RingInset:    20,
		RingDepth:    30,
		DotRadius:    8,
		DotCount:     8,
		Palette:      DefaultPalette(),
	}
}

// Validate checks that the layout describes a drawable icon.
func (l Layout) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"size", l.Size},
		{"triangle_size", l.TriangleSize},
		{"arrow_width", l.ArrowWidth},
		{"arrow_height", l.ArrowHeight},
		{"shaft_width", l.ShaftWidth},
		{"dot_radius", l.DotRadius},
		{"dot_count", l.DotCount},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidLayout, p.name, p.value)
		}
	}

	if l.Margin < 0 || 2*l.Margin >= l.Size {
		return fmt.Errorf("%w: margin %d does not fit a %dpx canvas", ErrInvalidLayout, l.Margin, l.Size)
	}
	if l.ShaftAbove+l.ShaftBelow <= 0 {
		return fmt.Errorf("%w: arrow shaft has no height", ErrInvalidLayout)
	}
	if l.RingInset < 0 || l.RingInset >= l.Size/2 {
		return fmt.Errorf("%w: ring_inset %d does not fit a %dpx canvas", ErrInvalidLayout, l.RingInset, l.Size)
	}
	return nil
}

// Center returns the canvas midpoint, using integer halving.
func (l Layout) Center() (int, int) {
	return l.Size / 2, l.Size / 2
}

// RingRadii returns the radii of the decorative ring. Dots are drawn on
// the outer radius only; the inner radius is not painted.
func (l Layout) RingRadii() (outer, inner int) {
	outer = l.Size/2 - l.RingInset
	inner = outer - l.RingDepth
	return outer, inner
}

// Layers returns the shapes of the icon in drawing order. Later layers
// paint over earlier ones.
func (l Layout) Layers() []Layer {
	cx, cy := l.Center()
	p := l.Palette

	layers := make([]Layer, 0, 4+l.DotCount)

	circleSize := l.Size - 2*l.Margin
	layers = append(layers, Layer{
		Name:  "main-circle",
		Shape: Ellipse{X0: float64(l.Margin), Y0: float64(l.Margin), X1: float64(l.Margin + circleSize), Y1: float64(l.Margin + circleSize)},
		Color: p.Primary,
	})

	ts := l.TriangleSize
	layers = append(layers, Layer{
		Name: "play-button",
		Shape: Polygon{
			{X: float64(cx - ts/3), Y: float64(cy - ts/2)},
			{X: float64(cx - ts/3), Y: float64(cy + ts/2)},
			{X: float64(cx + ts/2), Y: float64(cy)},
		},
		Color: p.Foreground,
	})

	arrowY := cy + l.ArrowOffset
	shaftX := cx - l.ShaftWidth/2
	layers = append(layers, Layer{
		Name:  "arrow-shaft",
		Shape: Rect{X0: shaftX, Y0: arrowY - l.ShaftAbove, X1: shaftX + l.ShaftWidth, Y1: arrowY + l.ShaftBelow},
		Color: p.Secondary,
	})

	layers = append(layers, Layer{
		Name: "arrow-head",
		Shape: Polygon{
			{X: float64(cx - l.ArrowWidth/2), Y: float64(arrowY)},
			{X: float64(cx + l.ArrowWidth/2), Y: float64(arrowY)},
			{X: float64(cx), Y: float64(arrowY + l.ArrowHeight/3)},
		},
		Color: p.Secondary,
	})

	outer, _ := l.RingRadii()
	step := 360.0 / float64(l.DotCount)
	r := float64(l.DotRadius)
	for i := 0; i < l.DotCount; i++ {
		rad := float64(i) * step * math.Pi / 180
		x := float64(cx) + float64(outer)*math.Cos(rad)
		y := float64(cy) + float64(outer)*math.Sin(rad)
		layers = append(layers, Layer{
			Name:  fmt.Sprintf("ring-dot-%d", i),
			Shape: Ellipse{X0: x - r, Y0: y - r, X1: x + r, Y1: y + r},
			Color: p.Accent,
		})
	}

	return layers
}
