package scene

// InputState is the explicit, per-frame input snapshot polled from
// core.Window once per frame. It is passed through the render loop rather
// than read from package-level globals; drag state lives as struct fields
// polled once per frame, with only scroll staying callback-driven.
type InputState struct {
	// Orbit drag: populated from cursor-position deltas while a mouse
	// button is held.
	Dragging   bool
	DragDeltaX float32
	DragDeltaY float32

	// ScrollDelta accumulates scroll-callback events since the last poll;
	// reset to zero after each frame consumes it.
	ScrollDelta float32

	// GravityEnabled toggles on right-mouse-button or the G key; neither
	// cmd/blackhole nor cmd/particledemo reads it, so toggling it changes
	// nothing on screen.
	GravityEnabled bool

	// FreeFly toggles between OrbitCamera and FreeFlyCamera control; WASD
	// move the free-fly camera, QE move it vertically.
	FreeFly                        bool
	MoveForward, MoveRight, MoveUp float32

	// CloseRequested is not set by any InputState method; the render loop
	// checks the ESC key on the window directly.
	CloseRequested bool

	lastCursorX, lastCursorY float64
	cursorInitialized        bool
	prevGravityKey           bool
	prevFreeFlyKey           bool
}

// BeginFrame resets the per-frame deltas that accumulate from callbacks or
// polling since the previous frame; call once at the top of the frame
// before polling window state.
func (in *InputState) BeginFrame() {
	in.DragDeltaX = 0
	in.DragDeltaY = 0
	in.ScrollDelta = 0
}

// UpdateCursor feeds the current cursor position (from Window.GetCursorPos)
// and whether a drag button is held; it derives DragDeltaX/Y from the
// change since the last call.
func (in *InputState) UpdateCursor(x, y float64, buttonHeld bool) {
	if !in.cursorInitialized {
		in.lastCursorX, in.lastCursorY = x, y
		in.cursorInitialized = true
	}
	dx := x - in.lastCursorX
	dy := y - in.lastCursorY
	in.lastCursorX, in.lastCursorY = x, y

	in.Dragging = buttonHeld
	if buttonHeld {
		in.DragDeltaX = float32(dx)
		in.DragDeltaY = float32(dy)
	}
}

// OnScroll is registered as the GLFW scroll callback.
func (in *InputState) OnScroll(_, yoff float64) {
	in.ScrollDelta += float32(yoff)
}

// UpdateToggles polls edge-triggered toggles (gravity, free-fly) from
// current key/button states, flipping the corresponding flag only on the
// rising edge.
func (in *InputState) UpdateToggles(gravityKeyDown, freeFlyKeyDown bool) {
	if gravityKeyDown && !in.prevGravityKey {
		in.GravityEnabled = !in.GravityEnabled
	}
	in.prevGravityKey = gravityKeyDown

	if freeFlyKeyDown && !in.prevFreeFlyKey {
		in.FreeFly = !in.FreeFly
	}
	in.prevFreeFlyKey = freeFlyKeyDown
}
