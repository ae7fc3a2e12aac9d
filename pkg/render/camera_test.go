package render

import (
	"math"
	"testing"

	"github.com/amigash/pixel-rendering/pkg/math3d"
)

const cameraEpsilon = 1e-9

func vec3Near(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Z-b.Z) < eps
}

func TestCameraStartsAtOrigin(t *testing.T) {
	c := NewCamera(DefaultConfig())
	if c.Position != math3d.Zero3() {
		t.Errorf("Position = %v, want origin", c.Position)
	}
	if c.Yaw != 0 || c.Pitch != 0 {
		t.Errorf("Yaw, Pitch = %v, %v, want 0, 0", c.Yaw, c.Pitch)
	}
}

func TestCameraUpdateNoKeys(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Update(nil, 1.0/60)

	if c.Position != math3d.Zero3() {
		t.Errorf("camera drifted to %v with no keys held", c.Position)
	}
}

func TestCameraUpdateMovement(t *testing.T) {
	cfg := DefaultConfig()
	speed := cfg.MoveSpeed

	tests := []struct {
		name string
		keys []Key
		yaw  float64
		want math3d.Vec3
	}{
		{"forward", []Key{KeyForward}, 0, math3d.V3(0, 0, -speed)},
		{"back", []Key{KeyBack}, 0, math3d.V3(0, 0, speed)},
		{"strafe left", []Key{KeyLeft}, 0, math3d.V3(-speed, 0, 0)},
		{"strafe right", []Key{KeyRight}, 0, math3d.V3(speed, 0, 0)},
		{"rise", []Key{KeyUp}, 0, math3d.V3(0, speed, 0)},
		{"fall", []Key{KeyDown}, 0, math3d.V3(0, -speed, 0)},
		{"forward after quarter turn", []Key{KeyForward}, math.Pi / 2, math3d.V3(-speed, 0, 0)},
		{"rise ignores yaw", []Key{KeyUp}, math.Pi / 2, math3d.V3(0, speed, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(cfg)
			c.Yaw = tt.yaw
			c.Update(tt.keys, 1.0)

			if !vec3Near(c.Position, tt.want, cameraEpsilon) {
				t.Errorf("Position = %v, want %v", c.Position, tt.want)
			}
		})
	}
}

func TestCameraUpdateOpposingKeysCancel(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Update([]Key{KeyForward, KeyBack, KeyLeft, KeyRight}, 1.0)

	if c.Position != math3d.Zero3() {
		t.Errorf("opposing keys moved the camera to %v", c.Position)
	}
}

func TestCameraUpdateDiagonalNotFaster(t *testing.T) {
	cfg := DefaultConfig()
	c := NewCamera(cfg)
	c.Update([]Key{KeyForward, KeyRight}, 1.0)

	if got := c.Position.Len(); math.Abs(got-cfg.MoveSpeed) > cameraEpsilon {
		t.Errorf("diagonal displacement = %v, want %v", got, cfg.MoveSpeed)
	}
}

func TestCameraUpdatePitchDoesNotAffectSpeed(t *testing.T) {
	cfg := DefaultConfig()
	c := NewCamera(cfg)
	c.Pitch = 1.0
	c.Update([]Key{KeyForward}, 1.0)

	// Horizontal movement tracks the yaw heading only.
	want := math3d.V3(0, 0, -cfg.MoveSpeed)
	if !vec3Near(c.Position, want, cameraEpsilon) {
		t.Errorf("Position = %v, want %v", c.Position, want)
	}
}

func TestCameraRotatePitchClamps(t *testing.T) {
	c := NewCamera(DefaultConfig())

	c.Rotate(0, -1e9)
	if c.Pitch != maxPitch {
		t.Errorf("Pitch = %v, want clamp at %v", c.Pitch, maxPitch)
	}

	// Further rotation holds at the clamp instead of wrapping over the pole.
	c.Rotate(0, -1e9)
	if c.Pitch != maxPitch {
		t.Errorf("Pitch = %v after second rotation, want %v", c.Pitch, maxPitch)
	}

	c.Rotate(0, 1e9)
	c.Rotate(0, 1e9)
	if c.Pitch != -maxPitch {
		t.Errorf("Pitch = %v, want clamp at %v", c.Pitch, -maxPitch)
	}
}

func TestCameraRotateYawWraps(t *testing.T) {
	c := NewCamera(DefaultConfig())
	for range 10000 {
		c.Rotate(100, 0)
	}

	if math.Abs(c.Yaw) >= 2*math.Pi {
		t.Errorf("Yaw = %v, want wrapped into (-2π, 2π)", c.Yaw)
	}
}

func TestCameraRotateZeroDelta(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Yaw, c.Pitch = 0.5, -0.25

	c.Rotate(0, 0)
	if c.Yaw != 0.5 || c.Pitch != -0.25 {
		t.Errorf("Yaw, Pitch = %v, %v, want unchanged", c.Yaw, c.Pitch)
	}
}

func TestSetAspectRatio(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.SetAspectRatio(16.0 / 9.0)
	if c.AspectRatio != 16.0/9.0 {
		t.Errorf("AspectRatio = %v, want 16/9", c.AspectRatio)
	}

	c.SetAspectRatio(0)
	if c.AspectRatio != 16.0/9.0 {
		t.Errorf("non-positive aspect ratio overwrote the previous value")
	}
}

func TestCameraMatrixMovesWorldOpposite(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.Position = math3d.V3(0, 0, 5)

	// A point 5 units in front of the camera should sit on the view axis
	// with positive clip W.
	clip := c.Matrix().MulVec4(math3d.V4FromV3(math3d.Zero3(), 1))
	if math.Abs(clip.X) > cameraEpsilon || math.Abs(clip.Y) > cameraEpsilon {
		t.Errorf("origin off axis: clip = %+v", clip)
	}
	if math.Abs(clip.W-5) > cameraEpsilon {
		t.Errorf("clip.W = %v, want 5", clip.W)
	}
}
