package render

import "math"

// Config carries the tunables shared by the camera and the hosts.
type Config struct {
	// Scale divides the host surface size to get the framebuffer size, so a
	// scale of 4 renders at quarter resolution and presents chunky pixels.
	Scale int

	FOV  float64 // vertical field of view, radians
	Near float64
	Far  float64

	MoveSpeed        float64 // world units per second
	MouseSensitivity float64 // radians per pointer unit
}

// DefaultConfig returns the stock viewer settings.
func DefaultConfig() Config {
	return Config{
		Scale:            4,
		FOV:              math.Pi / 3,
		Near:             0.1,
		Far:              100.0,
		MoveSpeed:        5.0,
		MouseSensitivity: 0.0025,
	}
}
