package icon

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four curves approximate a circle.
const kappa = 0.5522847498307936

// Shape is a filled region that can be traced onto a rasterizer.
//
// Coordinates follow the usual drawing-library convention of inclusive
// pixel boxes: a box from 0 to 9 covers ten pixels.
type Shape interface {
	Path(z *vector.Rasterizer)
	Bounds() image.Rectangle
}

// Layer is one shape filled with one color.
type Layer struct {
	Name  string
	Shape Shape
	Color color.NRGBA
}

// Point is a vertex in pixel coordinates.
type Point struct {
	X, Y float64
}

// Ellipse fills the ellipse inscribed in an inclusive bounding box.
type Ellipse struct {
	X0, Y0, X1, Y1 float64
}

// Path implements Shape.
func (e Ellipse) Path(z *vector.Rasterizer) {
	cx := float32((e.X0 + e.X1 + 1) / 2)
	cy := float32((e.Y0 + e.Y1 + 1) / 2)
	rx := float32((e.X1 - e.X0 + 1) / 2)
	ry := float32((e.Y1 - e.Y0 + 1) / 2)
	kx, ky := float32(kappa)*rx, float32(kappa)*ry

	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
}

// Bounds implements Shape.
func (e Ellipse) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(e.X0)), int(math.Floor(e.Y0)),
		int(math.Ceil(e.X1+1)), int(math.Ceil(e.Y1+1)),
	)
}

// Polygon fills a closed polygon. Vertices name pixels, so the outline runs
// through pixel centers.
type Polygon []Point

// Path implements Shape.
func (p Polygon) Path(z *vector.Rasterizer) {
	if len(p) < 3 {
		return
	}
	z.MoveTo(float32(p[0].X+0.5), float32(p[0].Y+0.5))
	for _, v := range p[1:] {
		z.LineTo(float32(v.X+0.5), float32(v.Y+0.5))
	}
	z.ClosePath()
}

// Bounds implements Shape.
func (p Polygon) Bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, v := range p[1:] {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX+1)), int(math.Ceil(maxY+1)),
	)
}

// Rect fills an axis-aligned rectangle given by an inclusive pixel box.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Path implements Shape.
func (r Rect) Path(z *vector.Rasterizer) {
	x0, y0 := float32(r.X0), float32(r.Y0)
	x1, y1 := float32(r.X1+1), float32(r.Y1+1)
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

// Bounds implements Shape.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1+1, r.Y1+1)
}
