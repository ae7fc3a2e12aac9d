package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/amigash/pixel-rendering/pkg/math3d"
	"github.com/amigash/pixel-rendering/pkg/render"
)

// runWindow opens a desktop window, renders into a downscaled offscreen
// buffer every tick, and lets ebiten stretch it to the window. It blocks
// until the window closes or Escape is pressed.
func runWindow(pipeline *render.Pipeline, camera *render.Camera, cfg render.Config) error {
	g := &windowGame{
		pipeline: pipeline,
		camera:   camera,
		scale:    cfg.Scale,
	}

	ebiten.SetWindowTitle("pixel-rendering")
	ebiten.SetWindowSize(*windowWidth, *windowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	ebiten.SetTPS(*targetFPS)
	return ebiten.RunGame(g)
}

type windowGame struct {
	pipeline *render.Pipeline
	camera   *render.Camera
	scale    int

	width, height int
	pix           []byte
	img           *ebiten.Image

	lastCursor  math3d.Vec2
	cursorValid bool
}

// Update polls input and renders the next frame. Rendering happens here
// rather than in Draw so pipeline errors can stop the game loop.
func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.camera.Update(heldKeys(), 1.0/float64(ebiten.TPS()))

	// The cursor is captured, so its position only means anything as a delta
	// from the previous tick.
	x, y := ebiten.CursorPosition()
	cursor := math3d.V2(float64(x), float64(y))
	if g.cursorValid {
		delta := cursor.Sub(g.lastCursor)
		g.camera.Rotate(delta.X, delta.Y)
	}
	g.lastCursor = cursor
	g.cursorValid = true

	if g.width == 0 || g.height == 0 {
		return nil
	}
	if len(g.pix) != g.width*g.height*4 {
		g.pix = make([]byte, g.width*g.height*4)
	}
	return g.pipeline.Render(g.pix, g.width, g.height)
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if len(g.pix) == 0 {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != g.width || g.img.Bounds().Dy() != g.height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(g.width, g.height)
	}
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

// Layout renders at a fraction of the window size; ebiten scales the result
// back up, which is what gives the output its chunky pixels.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(outsideWidth/g.scale, 1)
	h := max(outsideHeight/g.scale, 1)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.camera.SetAspectRatio(float64(w) / float64(h))
	}
	return w, h
}

func heldKeys() []render.Key {
	bindings := []struct {
		key  ebiten.Key
		held render.Key
	}{
		{ebiten.KeyW, render.KeyForward},
		{ebiten.KeyS, render.KeyBack},
		{ebiten.KeyA, render.KeyLeft},
		{ebiten.KeyD, render.KeyRight},
		{ebiten.KeySpace, render.KeyUp},
		{ebiten.KeyShiftLeft, render.KeyDown},
		{ebiten.KeyShiftRight, render.KeyDown},
	}

	var keys []render.Key
	for _, b := range bindings {
		if ebiten.IsKeyPressed(b.key) {
			keys = append(keys, b.held)
		}
	}
	return keys
}
