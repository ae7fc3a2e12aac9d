// Package render provides the software transform-and-rasterization pipeline
// for pixel-rendering.
package render

// Frame is a view over a host-owned RGBA byte buffer, addressed as
// index = (y*Width + x) * 4. A Frame is only valid for the duration of one
// render call; the pipeline never retains one across frames.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// NewFrame wraps a host buffer. The slice must hold at least
// width*height*4 bytes.
func NewFrame(pix []byte, width, height int) Frame {
	return Frame{Pix: pix, Width: width, Height: height}
}

// Clear sets every pixel to opaque black: all bytes zero except alpha, which
// is forced to 255.
func (f Frame) Clear() {
	n := f.Width * f.Height * 4
	if n > len(f.Pix) {
		n = len(f.Pix)
	}
	if n < 4 {
		return
	}
	f.Pix[0], f.Pix[1], f.Pix[2], f.Pix[3] = 0, 0, 0, 255
	// Copy-doubling: fill the rest from what is already cleared.
	for i := 4; i < n; i *= 2 {
		copy(f.Pix[i:n], f.Pix[:i])
	}
}

// SetPixel writes one RGBA pixel at (x, y). Coordinates outside
// [0,Width)x[0,Height) are silently ignored; going off screen is a normal
// occurrence, not an error.
func (f Frame) SetPixel(x, y int, c Color) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// At returns the color at (x, y), or transparent black if out of bounds.
func (f Frame) At(x, y int) Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return Color{}
	}
	i := (y*f.Width + x) * 4
	return Color{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Every pixel on the line is visited exactly once, endpoints
// included, in any octant. Out-of-bounds pixels are skipped individually, not
// pre-clipped.
func (f Frame) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillTriangle fills the triangle with a solid color using integer edge
// functions. Edge ownership follows the top-left rule, so two triangles
// sharing an edge neither double-draw nor leave gaps along it. Winding order
// does not matter; degenerate (collinear) triangles draw nothing.
func (f Frame) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	area := orient2d(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		// Canonicalize so the edge functions are non-negative inside.
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	minX := max(min(x0, min(x1, x2)), 0)
	maxX := min(max(x0, max(x1, x2)), f.Width-1)
	minY := max(min(y0, min(y1, y2)), 0)
	maxY := min(max(y0, max(y1, y2)), f.Height-1)

	// Pixels exactly on an edge belong to the triangle for which that edge is
	// a top or left edge.
	bias0 := topLeftBias(x1, y1, x2, y2)
	bias1 := topLeftBias(x2, y2, x0, y0)
	bias2 := topLeftBias(x0, y0, x1, y1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := orient2d(x1, y1, x2, y2, x, y) + bias0
			w1 := orient2d(x2, y2, x0, y0, x, y) + bias1
			w2 := orient2d(x0, y0, x1, y1, x, y) + bias2
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				f.SetPixel(x, y, c)
			}
		}
	}
}

// orient2d returns twice the signed area of triangle (a, b, c). With y
// growing downward, a positive value means c lies to the left of a->b.
func orient2d(ax, ay, bx, by, cx, cy int) int {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// topLeftBias returns 0 for a top or left edge and -1 otherwise, assuming the
// triangle has been wound so the interior is on the non-negative side. In
// screen coordinates a top edge runs rightward with the interior below it and
// a left edge runs upward.
func topLeftBias(ax, ay, bx, by int) int {
	if by-ay < 0 || (by == ay && bx-ax > 0) {
		return 0
	}
	return -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
