package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/amigash/pixel-rendering/pkg/render"
)

// keyTTL is how long a key counts as held after its last press event.
// Terminals repeat key presses while a key is down but rarely report
// releases, so holds are inferred from repeat timing.
const keyTTL = 200 * time.Millisecond

// keyState is the held movement-key set, shared between the event goroutine
// and the frame loop.
type keyState struct {
	mu   sync.Mutex
	last map[render.Key]time.Time
}

func newKeyState() *keyState {
	return &keyState{last: make(map[render.Key]time.Time)}
}

func (k *keyState) press(key render.Key, at time.Time) {
	k.mu.Lock()
	k.last[key] = at
	k.mu.Unlock()
}

// held returns the keys pressed within keyTTL of now.
func (k *keyState) held(now time.Time) []render.Key {
	k.mu.Lock()
	defer k.mu.Unlock()

	var keys []render.Key
	for key, at := range k.last {
		if now.Sub(at) < keyTTL {
			keys = append(keys, key)
		}
	}
	return keys
}

// lookAxis tracks look velocity on one axis with spring decay, so a mouse
// drag keeps turning briefly after release instead of stopping dead.
type lookAxis struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func newLookAxis(fps int) lookAxis {
	// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
	return lookAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// step returns the current velocity and decays it toward zero.
func (a *lookAxis) step() float64 {
	v := a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	return v
}

// runTerminal renders into the terminal using half-block cells, two pixels
// per cell vertically. It blocks until Escape, Ctrl+C, or a signal.
func runTerminal(pipeline *render.Pipeline, camera *render.Camera, cfg render.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	fbWidth, fbHeight := width, height*2
	pix := make([]byte, fbWidth*fbHeight*4)
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	keys := newKeyState()

	// mu guards everything else the event goroutine shares with the frame
	// loop: the buffer and its dimensions, the camera, the pipeline mode, the
	// look springs, and the mouse state.
	var mu sync.Mutex
	yawLook := newLookAxis(*targetFPS)
	pitchLook := newLookAxis(*targetFPS)

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				mu.Lock()
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fbWidth, fbHeight = width, height*2
				pix = make([]byte, fbWidth*fbHeight*4)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
				mu.Unlock()

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					keys.press(render.KeyForward, time.Now())
				case ev.MatchString("s", "down"):
					keys.press(render.KeyBack, time.Now())
				case ev.MatchString("a", "left"):
					keys.press(render.KeyLeft, time.Now())
				case ev.MatchString("d", "right"):
					keys.press(render.KeyRight, time.Now())
				case ev.MatchString("space"):
					keys.press(render.KeyUp, time.Now())
				case ev.MatchString("c"):
					keys.press(render.KeyDown, time.Now())
				case ev.MatchString("x"):
					mu.Lock()
					pipeline.Wireframe = !pipeline.Wireframe
					mu.Unlock()
				}

			case uv.MouseClickEvent:
				mu.Lock()
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y
				mu.Unlock()

			case uv.MouseReleaseEvent:
				mu.Lock()
				mouseDown = false
				mu.Unlock()

			case uv.MouseMotionEvent:
				mu.Lock()
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					// Cells are two pixels tall, so vertical motion counts double.
					yawLook.velocity += float64(dx) * 3
					pitchLook.velocity += float64(dy) * 6
					lastMouseX, lastMouseY = ev.X, ev.Y
				}
				mu.Unlock()
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		// Rendering happens under the lock so a resize can't swap the buffer
		// or its dimensions mid-frame.
		mu.Lock()
		camera.Update(keys.held(now), dt)
		camera.Rotate(yawLook.step(), pitchLook.step())
		if err := pipeline.Render(pix, fbWidth, fbHeight); err != nil {
			mu.Unlock()
			cleanup()
			return err
		}
		frame := render.NewFrame(pix, fbWidth, fbHeight)
		area := uv.Rect(0, 0, width, height)
		mu.Unlock()

		frame.Draw(term, area)
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
