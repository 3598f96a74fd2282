package app

import (
	"fmt"
	"strings"

	"github.com/Faultbox/scenegraph/internal/engine/input"
	"github.com/Faultbox/scenegraph/internal/engine/pass"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/engine/ui2d"
)

// Menu panel geometry in window points.
const (
	menuX, menuY = 10, 10
	menuW        = 320
	menuTreeH    = 220
	menuH        = 380
)

// menu is the "Menu" panel drawn over the scene: frame rate, selection,
// light marker toggle and an outline of the node tree.
type menu struct {
	ui      *ui2d.Context
	stats   pass.Stats
	visible bool
}

// menuState is what the panel shows and may change.
type menuState struct {
	fps        float64
	selected   *scene.Node
	showLights bool
}

func newMenu(ui *ui2d.Context) *menu {
	return &menu{ui: ui, visible: true}
}

// wantsMouse reports whether mouse events belong to the panel.
func (m *menu) wantsMouse() bool {
	return m.visible && m.ui.WantsMouse()
}

// feed forwards a window event to the UI input state.
func (m *menu) feed(e input.Event) {
	in := m.ui.Input()
	switch e.Type {
	case input.EventMouseMove:
		in.MouseX, in.MouseY = float32(e.MouseX), float32(e.MouseY)
	case input.EventMouseDown:
		in.MouseX, in.MouseY = float32(e.MouseX), float32(e.MouseY)
		if e.Button == input.ButtonLeft {
			in.MouseLeftDown = true
			in.MouseLeftClicked = true
		}
	case input.EventMouseUp:
		in.MouseX, in.MouseY = float32(e.MouseX), float32(e.MouseY)
		if e.Button == input.ButtonLeft {
			in.MouseLeftDown = false
		}
	case input.EventMouseWheel:
		in.ScrollY += float32(e.DeltaY)
	}
}

// draw lays out one frame of the panel and returns the state after the
// user's clicks. Nothing is queued when the panel is hidden.
func (m *menu) draw(s *scene.Scene, st menuState) menuState {
	m.ui.Begin()
	defer m.ui.End()
	if !m.visible {
		return st
	}

	s.Accept(&m.stats)

	if !m.ui.BeginWindow("menu", menuX, menuY, menuW, menuH, "Menu") {
		return st
	}
	defer m.ui.EndWindow()

	m.ui.Row(14)
	m.ui.Label(fmt.Sprintf("%.0f FPS", st.fps))

	m.ui.Row(14)
	m.ui.LabelColored("Selected:", ui2d.ColorTextDim)
	if st.selected != nil {
		m.ui.Label(st.selected.Name())
	} else {
		m.ui.LabelColored("none", ui2d.ColorTextDim)
	}

	m.ui.Row(14)
	st.showLights = m.ui.Checkbox("lights", "Light markers", st.showLights)

	m.ui.Row(14)
	m.ui.LabelColored(fmt.Sprintf("%d nodes, %d meshes, %d tris, %d materials",
		m.stats.Nodes, m.stats.Meshes, m.stats.Triangles, m.stats.Materials()), ui2d.ColorTextDim)

	m.ui.Separator()
	m.ui.Row(14)
	m.ui.Label("Scene")

	m.ui.BeginListBox("tree", 0, menuTreeH)
	for i, row := range m.stats.Rows() {
		label := strings.Repeat("  ", row.Depth) + row.Label
		picked := row.Mesh == nil && row.Node == st.selected
		if m.ui.Selectable(fmt.Sprintf("row%d", i), label, picked) {
			st.selected = row.Node
		}
	}
	m.ui.EndListBox()

	return st
}

// Close releases the UI renderer.
func (m *menu) Close() {
	m.ui.Close()
}
