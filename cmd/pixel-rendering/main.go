// pixel-rendering - real-time software 3D model viewer
// Fly a first-person camera around OBJ and GLB models, rasterized entirely on
// the CPU, in a desktop window or straight in the terminal.
//
// Controls:
//
//	W/A/S/D     - Move forward/left/back/right
//	Space/Shift - Rise / fall
//	Mouse       - Look around (drag in terminal mode)
//	Esc         - Quit
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/amigash/pixel-rendering/pkg/math3d"
	"github.com/amigash/pixel-rendering/pkg/models"
	"github.com/amigash/pixel-rendering/pkg/render"
)

var (
	terminalMode = flag.Bool("terminal", false, "Render to the terminal instead of a window")
	windowWidth  = flag.Int("width", 1280, "Window width in pixels")
	windowHeight = flag.Int("height", 720, "Window height in pixels")
	fullscreen   = flag.Bool("fullscreen", false, "Start the window fullscreen")
	wireframe    = flag.Bool("wireframe", false, "Draw triangle edges instead of filled faces")
	scaleFactor  = flag.Int("scale", 0, "Downscale factor for the render surface (default 4)")
	targetFPS    = flag.Int("fps", 60, "Target frames per second")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pixel-rendering - real-time software 3D model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pixel-rendering [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Move forward/left/back/right\n")
		fmt.Fprintf(os.Stderr, "  Space/Shift - Rise / fall\n")
		fmt.Fprintf(os.Stderr, "  Mouse       - Look around (drag in terminal mode)\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	mesh, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	cfg := render.DefaultConfig()
	if *scaleFactor > 0 {
		cfg.Scale = *scaleFactor
	}

	camera := render.NewCamera(cfg)
	frameCamera(camera, mesh, cfg.FOV)

	pipeline := render.NewPipeline(camera, mesh)
	pipeline.Wireframe = *wireframe

	fmt.Fprintf(os.Stderr, "Loaded %s (%d triangles)\n", filepath.Base(modelPath), len(mesh))

	if *terminalMode {
		return runTerminal(pipeline, camera, cfg)
	}
	return runWindow(pipeline, camera, cfg)
}

// frameCamera backs the camera away from the mesh along +Z until the whole
// bounding box fits the vertical field of view, so any model is in view on
// startup.
func frameCamera(camera *render.Camera, mesh models.Mesh, fov float64) {
	bounds := models.ComputeBounds(mesh)
	size := bounds.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	dist := 5.0
	if maxDim > 0 {
		dist = maxDim/(2*math.Tan(fov/2)) + maxDim/2
	}
	camera.Position = bounds.Center().Add(math3d.V3(0, 0, dist))
}
