package ui2d

import "fmt"

// Layout metrics in points.
const (
	textScale   = float32(1)
	titleBarH   = float32(20)
	padding     = float32(8)
	defaultRowH = float32(18)
	checkboxBox = float32(14)
)

// Context is the main UI context that manages rendering and input.
type Context struct {
	renderer *Renderer
	input    *InputState

	// Widget holding the mouse button, if any
	activeWidget string

	windows   map[string]*WindowState
	listBoxes map[string]*ListBoxState

	currentWindow  *WindowState
	currentListBox *ListBoxState

	// mouseOver is collected while drawing; wantsMouse is the value of the
	// last finished frame.
	mouseOver  bool
	wantsMouse bool

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool
}

// NewContext creates a UI context drawing with OpenGL.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return newContext(r), nil
}

// NewHeadlessContext creates a context that lays out and handles input but
// never touches OpenGL.
func NewHeadlessContext(width, height int) *Context {
	return newContext(newRenderer(width, height))
}

func newContext(r *Renderer) *Context {
	return &Context{
		renderer:  r,
		input:     &InputState{},
		windows:   make(map[string]*WindowState),
		listBoxes: make(map[string]*ListBoxState),
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// WantsMouse reports whether the mouse was over a window, or dragging one,
// when the last frame ended. Callers skip their own mouse handling then.
func (c *Context) WantsMouse() bool {
	return c.wantsMouse
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.mouseOver = false
}

// End finishes the UI frame.
func (c *Context) End() {
	c.renderer.End()
	c.wantsMouse = c.mouseOver || c.activeWidget != ""
	c.input.EndFrame()
}

// BeginWindow starts a window. x and y place it the first time only; after
// that it stays where the user dragged it. Returns false if the window is
// closed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, Open: true}
		c.windows[id] = ws
	}
	ws.W, ws.H = w, h
	if !ws.Open {
		return false
	}

	c.currentWindow = ws
	in := c.input

	titleBar := Rect{ws.X, ws.Y, ws.W, titleBarH}
	// The press frame only grabs; motion applies from the next frame.
	switch {
	case in.MouseLeftPressed && titleBar.Contains(in.MouseX, in.MouseY):
		ws.Moving = true
		c.activeWidget = id + "_titlebar"
	case ws.Moving && in.MouseLeftDown:
		ws.X += in.MouseDeltaX
		ws.Y += in.MouseDeltaY
	}
	if in.MouseLeftReleased {
		ws.Moving = false
		if c.activeWidget == id+"_titlebar" {
			c.activeWidget = ""
		}
	}
	if (Rect{ws.X, ws.Y, ws.W, ws.H}).Contains(in.MouseX, in.MouseY) {
		c.mouseOver = true
	}

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)
	_, textH := c.renderer.MeasureText(title, textScale)
	c.renderer.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)

	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0
	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Window returns the state of window id, or nil before its first
// BeginWindow.
func (c *Context) Window(id string) *WindowState {
	return c.windows[id]
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.renderer.DrawText(c.cursorX, c.cursorY, text, textScale, color)
	w, _ := c.renderer.MeasureText(text, textScale)
	c.cursorX += w + 4
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	x := c.currentWindow.X + padding
	c.renderer.DrawRect(x, c.cursorY, c.currentWindow.W-2*padding, 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}

// clicked reports a left press inside r this frame and makes id active.
func (c *Context) clicked(id string, r Rect) (hovered, clicked bool) {
	in := c.input
	hovered = r.Contains(in.MouseX, in.MouseY)
	if !hovered {
		return false, false
	}
	if in.MouseLeftPressed || in.MouseLeftClicked {
		c.activeWidget = id
		// Consume the click so only one widget gets it
		in.MouseLeftClicked = false
		in.MouseLeftPressed = false
		return true, true
	}
	return true, false
}

// release clears the active widget once the button is up.
func (c *Context) release(id string) {
	if c.activeWidget == id && !c.input.MouseLeftDown {
		c.activeWidget = ""
	}
}

// Checkbox draws a checkbox and returns its new state. It toggles on press.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x, y := c.cursorX, c.cursorY
	labelW, textH := c.renderer.MeasureText(label, textScale)
	fullID := c.currentWindow.ID + "_" + id

	// The label is part of the hit area.
	hovered, clicked := c.clicked(fullID, Rect{x, y, checkboxBox + 8 + labelW, checkboxBox})
	if clicked {
		checked = !checked
	}
	c.release(fullID)

	bg := ColorInputBg
	if hovered {
		bg = ColorButtonHover
	}
	c.renderer.DrawRect(x, y, checkboxBox, checkboxBox, bg)
	c.renderer.DrawRectOutline(x, y, checkboxBox, checkboxBox, 1, ColorPanelBorder)
	if checked {
		inner := float32(3)
		c.renderer.DrawRect(x+inner, y+inner, checkboxBox-2*inner, checkboxBox-2*inner, ColorHighlight)
	}
	c.renderer.DrawText(x+checkboxBox+8, y+(checkboxBox-textH)/2, label, textScale, ColorText)

	c.cursorX += checkboxBox + 8 + labelW + 8
	return checked
}

// Selectable draws a full-width selectable row and returns true if it was
// clicked. Inside a list box, rows scrolled out of view are skipped.
func (c *Context) Selectable(id string, label string, selected bool) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y := c.cursorX, c.cursorY
	h := c.rowH
	if h == 0 {
		h = defaultRowH
	}

	width := c.currentWindow.W - 2*padding
	lb := c.currentListBox
	if lb != nil {
		width = lb.W - 8
	}

	// Advance first; the row may be clipped.
	c.cursorY += h
	if lb != nil {
		c.cursorX = lb.X + 4
		if y < lb.Y || y+h > lb.Y+lb.H {
			return false
		}
	} else {
		c.cursorX = c.currentWindow.X + padding
	}

	fullID := c.currentWindow.ID + "_" + id
	hovered, clicked := c.clicked(fullID, Rect{x, y, width, h})
	c.release(fullID)

	var bg Color
	switch {
	case selected:
		bg = ColorHighlight.WithAlpha(0.5)
	case c.activeWidget == fullID:
		bg = ColorButtonActive
	case hovered:
		bg = ColorButtonHover
	default:
		bg = ColorTransparent
	}
	if bg.A > 0 {
		c.renderer.DrawRect(x, y, width, h, bg)
	}

	_, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+4, y+(h-textH)/2, label, textScale, ColorText)
	return clicked
}

// ListBoxState holds state for a list box widget.
type ListBoxState struct {
	ScrollY float32
	X, Y    float32
	W, H    float32

	content float32 // height of the rows drawn last frame
}

// BeginListBox starts a scrolling list box region. The wheel scrolls it
// while the mouse is over it.
func (c *Context) BeginListBox(id string, width, height float32) {
	if c.currentWindow == nil {
		return
	}

	x := c.currentWindow.X + padding
	y := c.cursorY + c.rowH + 4
	if width == 0 {
		width = c.currentWindow.W - 2*padding
	}
	if height == 0 {
		height = 200
	}

	fullID := c.currentWindow.ID + "_" + id
	lb, ok := c.listBoxes[fullID]
	if !ok {
		lb = &ListBoxState{}
		c.listBoxes[fullID] = lb
	}
	lb.X, lb.Y, lb.W, lb.H = x, y, width, height

	if c.input.ScrollY != 0 && c.input.IsMouseInRect(x, y, width, height) {
		lb.ScrollY -= c.input.ScrollY * defaultRowH
	}
	lb.ScrollY = min(max(lb.ScrollY, 0), max(lb.content-height+8, 0))

	c.renderer.DrawRect(x, y, width, height, ColorInputBg)
	c.renderer.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)

	c.currentListBox = lb
	c.cursorX = x + 4
	c.cursorY = y + 4 - lb.ScrollY
	c.rowH = defaultRowH
}

// EndListBox ends a list box region.
func (c *Context) EndListBox() {
	lb := c.currentListBox
	if c.currentWindow == nil || lb == nil {
		return
	}
	lb.content = c.cursorY + lb.ScrollY - (lb.Y + 4)
	c.cursorX = c.currentWindow.X + padding
	c.cursorY = lb.Y + lb.H + 4
	c.rowH = 0
	c.currentListBox = nil
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
