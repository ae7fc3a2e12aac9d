package render

import (
	"math"

	"github.com/amigash/pixel-rendering/pkg/math3d"
)

// Key identifies one of the held movement controls. The hosts translate
// their own input events into Keys so the camera stays device-agnostic.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// maxPitch keeps the camera just short of straight up or down so the view
// never flips over the pole.
const maxPitch = 89.0 * math.Pi / 180.0

// Camera is a first-person perspective camera with yaw/pitch orientation.
// It starts at the world origin looking down -Z.
type Camera struct {
	Position    math3d.Vec3
	Yaw         float64 // radians, around world Y
	Pitch       float64 // radians, clamped to (-90°, 90°)
	AspectRatio float64

	cfg Config
}

// NewCamera creates a camera at the origin with zero rotation. The aspect
// ratio starts at 1; hosts set the real value once they know the surface
// size.
func NewCamera(cfg Config) *Camera {
	return &Camera{AspectRatio: 1, cfg: cfg}
}

// SetAspectRatio updates the projection aspect ratio (width / height).
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect > 0 {
		c.AspectRatio = aspect
	}
}

// Update moves the camera for one frame given the set of currently held keys
// and the frame time in seconds. Horizontal movement follows the yaw heading
// only, so looking up or down never changes ground speed; up and down move
// along the world Y axis. Simultaneous keys combine and the result is
// normalized, so diagonals are no faster than a single direction.
func (c *Camera) Update(keys []Key, dt float64) {
	if len(keys) == 0 {
		return
	}

	var local math3d.Vec3
	for _, key := range keys {
		switch key {
		case KeyForward:
			local = local.Add(math3d.Forward())
		case KeyBack:
			local = local.Sub(math3d.Forward())
		case KeyLeft:
			local = local.Sub(math3d.Right())
		case KeyRight:
			local = local.Add(math3d.Right())
		case KeyUp:
			local = local.Add(math3d.Up())
		case KeyDown:
			local = local.Sub(math3d.Up())
		}
	}
	if local.LenSq() == 0 {
		// Opposing keys cancel out.
		return
	}

	dir := math3d.RotateY(c.Yaw).MulVec3Dir(local.Normalize())
	c.Position = c.Position.Add(dir.Scale(c.cfg.MoveSpeed * dt))
}

// Rotate applies a pointer-motion delta in device units. Positive dx turns
// right, positive dy (pointer moving down) pitches the view down. Yaw wraps
// around; pitch clamps at just under vertical.
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw = math.Mod(c.Yaw+dx*c.cfg.MouseSensitivity, 2*math.Pi)
	c.Pitch -= dy * c.cfg.MouseSensitivity
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	} else if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Matrix returns the combined view-projection matrix: translate the world by
// the camera's negated position, undo yaw then pitch, then apply the
// perspective projection.
func (c *Camera) Matrix() math3d.Mat4 {
	proj := math3d.Perspective(c.cfg.FOV, c.AspectRatio, c.cfg.Near, c.cfg.Far)
	view := math3d.RotateX(-c.Pitch).
		Mul(math3d.RotateY(-c.Yaw)).
		Mul(math3d.Translate(c.Position.Negate()))
	return proj.Mul(view)
}
