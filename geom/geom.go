// Package geom holds the pixel and normalized geometry shared by the
// dispatcher and the pane layout.
//
// Every function here is total. Rectangles are not validated: callers are
// expected to clamp widths and heights to non-negative values before handing
// them in, and a malformed rectangle simply produces an empty or inverted
// hit area.
package geom

import (
	"fmt"
	"math"
)

// Point is a pixel position, origin top-left.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inflate grows r by m on every side. A negative m shrinks it.
func (r Rect) Inflate(m int) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Inset shrinks r by m on every side, never below zero size.
func (r Rect) Inset(m int) Rect {
	out := r.Inflate(-m)
	out.Width = max(out.Width, 0)
	out.Height = max(out.Height, 0)
	return out
}

// Contains reports whether p lies in r grown by margin. Both edges are
// inclusive.
func (r Rect) Contains(p Point, margin int) bool {
	return Contains(r, p, margin)
}

// Intersect returns the overlap of r and s, or a zero Rect when they do not
// overlap.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.X, s.X), max(r.Y, s.Y)
	x1, y1 := min(r.Right(), s.Right()), min(r.Bottom(), s.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d %dx%d}", r.X, r.Y, r.Width, r.Height)
}

// Contains is the hit test used everywhere in the toolkit:
//
//	p.X in [r.X-margin, r.X+r.Width+margin] and
//	p.Y in [r.Y-margin, r.Y+r.Height+margin]
//
// Pass the drag anchor instead of the live pointer to keep targeting the
// element a drag started in. Negative margins shrink the hit area, positive
// margins enlarge it.
func Contains(r Rect, p Point, margin int) bool {
	return p.X >= r.X-margin && p.X <= r.X+r.Width+margin &&
		p.Y >= r.Y-margin && p.Y <= r.Y+r.Height+margin
}

// --- Normalized space ---

// Bounds are W/E/N/S edges expressed as fractions of the viewport.
// W <= E and N <= S hold for every bounds produced by the layout.
type Bounds struct {
	W, E, N, S float64
}

// Full covers the whole viewport.
func Full() Bounds { return Bounds{W: 0, E: 1, N: 0, S: 1} }

// Width returns E-W.
func (b Bounds) Width() float64 { return b.E - b.W }

// Height returns S-N.
func (b Bounds) Height() float64 { return b.S - b.N }

// ToRect maps b onto viewport. Edges are rounded independently so two bounds
// sharing an edge value map to rectangles sharing a pixel edge.
func (b Bounds) ToRect(viewport Rect) Rect {
	x0 := viewport.X + Scale(b.W, viewport.Width)
	x1 := viewport.X + Scale(b.E, viewport.Width)
	y0 := viewport.Y + Scale(b.N, viewport.Height)
	y1 := viewport.Y + Scale(b.S, viewport.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (b Bounds) String() string {
	return fmt.Sprintf("{W:%.4f E:%.4f N:%.4f S:%.4f}", b.W, b.E, b.N, b.S)
}

// Normalize maps a pixel point into viewport fractions. A zero-sized
// viewport axis maps to 0.
func Normalize(p Point, viewport Rect) (fx, fy float64) {
	if viewport.Width > 0 {
		fx = float64(p.X-viewport.X) / float64(viewport.Width)
	}
	if viewport.Height > 0 {
		fy = float64(p.Y-viewport.Y) / float64(viewport.Height)
	}
	return fx, fy
}

// PixelsToFraction converts a pixel length along an axis of extent n into
// viewport fractions.
func PixelsToFraction(px, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(px) / float64(n)
}

// Clamp limits v to [lo, hi]. When the interval is inverted the midpoint of
// lo and hi is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}

// ClampInt limits v to [lo, hi]; lo wins when the interval is inverted.
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Scale maps fraction f of an n pixel extent to the nearest pixel.
func Scale(f float64, n int) int {
	return int(math.Round(f * float64(n)))
}
