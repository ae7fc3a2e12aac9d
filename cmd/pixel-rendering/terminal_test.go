package main

import (
	"sync"
	"testing"
	"time"

	"github.com/amigash/pixel-rendering/pkg/render"
)

func TestKeyStateTTL(t *testing.T) {
	k := newKeyState()
	now := time.Now()

	k.press(render.KeyForward, now)
	if held := k.held(now); len(held) != 1 || held[0] != render.KeyForward {
		t.Fatalf("held = %v, want [KeyForward]", held)
	}

	// Repeat timing: without a fresh press event the key expires after keyTTL.
	if held := k.held(now.Add(keyTTL)); len(held) != 0 {
		t.Errorf("held after TTL = %v, want none", held)
	}

	k.press(render.KeyForward, now.Add(keyTTL))
	if held := k.held(now.Add(keyTTL)); len(held) != 1 {
		t.Errorf("held after re-press = %v, want [KeyForward]", held)
	}
}

func TestKeyStateConcurrentPressAndHold(t *testing.T) {
	// The event goroutine presses while the frame loop iterates the held set;
	// both must be safe to run at once.
	k := newKeyState()
	keys := []render.Key{
		render.KeyForward, render.KeyBack,
		render.KeyLeft, render.KeyRight,
		render.KeyUp, render.KeyDown,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			k.press(keys[i%len(keys)], time.Now())
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			k.held(time.Now())
		}
	}()
	wg.Wait()

	if held := k.held(time.Now()); len(held) != len(keys) {
		t.Errorf("got %d held keys, want %d", len(held), len(keys))
	}
}
