package render

import (
	"fmt"
	"math"
	"time"

	"github.com/amigash/pixel-rendering/pkg/math3d"
	"github.com/amigash/pixel-rendering/pkg/models"
)

// ErrPresentation marks failures to deliver a finished frame, such as a host
// handing over a buffer that does not match its stated dimensions.
var ErrPresentation = fmt.Errorf("render: presentation failure")

// Pipeline renders a mesh through a camera into RGBA frames. Triangles are
// backface-culled in world space, projected to the screen, and any triangle
// with a vertex falling outside the viewport is dropped whole rather than
// clipped. Survivors are filled in mesh order, with no depth buffering.
type Pipeline struct {
	camera *Camera
	mesh   models.Mesh

	// Wireframe draws triangle edges instead of filled faces.
	Wireframe bool

	start time.Time
}

// screenTri is a projected triangle in pixel coordinates, ready to draw.
type screenTri struct {
	ax, ay, bx, by, cx, cy int
}

// NewPipeline creates a pipeline rendering mesh through camera. The mesh
// color animation is timed from this moment.
func NewPipeline(camera *Camera, mesh models.Mesh) *Pipeline {
	return &Pipeline{
		camera: camera,
		mesh:   mesh,
		start:  time.Now(),
	}
}

// Render draws one frame into pix, which must hold width*height*4 bytes of
// RGBA data. The previous contents are discarded.
func (p *Pipeline) Render(pix []byte, width, height int) error {
	if need := width * height * 4; len(pix) < need {
		return fmt.Errorf("%w: buffer is %d bytes, need %d for %dx%d",
			ErrPresentation, len(pix), need, width, height)
	}

	frame := NewFrame(pix, width, height)
	frame.Clear()

	matrix := p.camera.Matrix()
	tint := frameColor(time.Since(p.start).Seconds())

	// Cull and project first, then draw, so the draw pass works from an
	// explicit list of surviving triangles.
	visible := make([]screenTri, 0, len(p.mesh))
	for _, tri := range p.mesh {
		toCamera := p.camera.Position.Sub(tri.Centroid())
		if tri.SurfaceNormal().Dot(toCamera) < 0 {
			continue
		}

		a := projectPoint(matrix, tri.A, width, height)
		b := projectPoint(matrix, tri.B, width, height)
		c := projectPoint(matrix, tri.C, width, height)
		if !onScreen(a, width, height) || !onScreen(b, width, height) || !onScreen(c, width, height) {
			continue
		}

		visible = append(visible, screenTri{
			ax: round(a.X), ay: round(a.Y),
			bx: round(b.X), by: round(b.Y),
			cx: round(c.X), cy: round(c.Y),
		})
	}

	for _, t := range visible {
		if p.Wireframe {
			frame.DrawLine(t.ax, t.ay, t.bx, t.by, tint)
			frame.DrawLine(t.bx, t.by, t.cx, t.cy, tint)
			frame.DrawLine(t.cx, t.cy, t.ax, t.ay, tint)
		} else {
			frame.FillTriangle(t.ax, t.ay, t.bx, t.by, t.cx, t.cy, tint)
		}
	}

	drawAxes(frame, matrix, width, height)
	frame.SetPixel(width/2, height/2, ColorWhite)
	return nil
}

// projectPoint takes a world-space point through the view-projection matrix
// to pixel coordinates. X and Y are remapped from NDC to [0, width] and
// [0, height], with Y flipped so it grows downward; Z keeps the NDC depth.
func projectPoint(m math3d.Mat4, p math3d.Vec3, width, height int) math3d.Vec3 {
	ndc := m.MulVec4(math3d.V4FromV3(p, 1)).PerspectiveDivide()
	return math3d.V3(
		(ndc.X+1)*0.5*float64(width),
		(1-ndc.Y)*0.5*float64(height),
		ndc.Z,
	)
}

// onScreen reports whether a projected point lands strictly inside the
// viewport. The coordinates are truncated, so a point in the left or top
// border pixel is rejected while the right and bottom edges admit anything
// short of the full dimension.
func onScreen(v math3d.Vec3, width, height int) bool {
	return onScreenInt(int(v.X), int(v.Y), width, height)
}

func onScreenInt(x, y, width, height int) bool {
	return x > 0 && y > 0 && x < width && y < height
}

// drawAxes draws the world axis gizmo: unit lines from the origin along +X,
// +Y, +Z in red, green, blue. Each line needs both its endpoints on screen or
// it is skipped.
func drawAxes(frame Frame, matrix math3d.Mat4, width, height int) {
	axes := []struct {
		dir   math3d.Vec3
		color Color
	}{
		{math3d.V3(1, 0, 0), ColorRed},
		{math3d.V3(0, 1, 0), ColorGreen},
		{math3d.V3(0, 0, 1), ColorBlue},
	}

	origin := projectPoint(matrix, math3d.Zero3(), width, height)
	ox, oy := round(origin.X), round(origin.Y)
	for _, axis := range axes {
		end := projectPoint(matrix, axis.dir, width, height)
		ex, ey := round(end.X), round(end.Y)
		if !onScreenInt(ox, oy, width, height) || !onScreenInt(ex, ey, width, height) {
			continue
		}
		frame.DrawLine(ox, oy, ex, ey, axis.color)
	}
}

// frameColor cycles through the color wheel once per second: each channel is
// a sine of elapsed time, phase-shifted a third of a turn from the previous.
func frameColor(elapsed float64) Color {
	var rgb [3]uint8
	for i := range rgb {
		phase := 2 * math.Pi * (elapsed + float64(i)/3)
		rgb[i] = uint8(math.Round(math.Sin(phase)*127.5 + 127.5))
	}
	return RGB(rgb[0], rgb[1], rgb[2])
}

func round(v float64) int {
	return int(math.Round(v))
}
