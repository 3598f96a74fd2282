package ui2d

// InputState holds the mouse state the UI reacts to. The owner sets the raw
// fields from window events; Update derives the per-frame edges.
type InputState struct {
	// Mouse position in window points
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	MouseLeftDown bool

	// Edges, valid between Update and EndFrame
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked latches a press delivered by an event so that a press
	// and release inside one frame is not lost. Cleared by EndFrame.
	MouseLeftClicked bool

	// Wheel steps this frame, positive away from the user
	ScrollY float32

	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
func (i *InputState) EndFrame() {
	i.ScrollY = 0
	i.MouseLeftClicked = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}
