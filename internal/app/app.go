// Package app implements the viewer: window, frame loop and input handling
// around a scene graph.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/config"
	"github.com/Faultbox/scenegraph/internal/engine/camera"
	"github.com/Faultbox/scenegraph/internal/engine/debug"
	"github.com/Faultbox/scenegraph/internal/engine/input"
	"github.com/Faultbox/scenegraph/internal/engine/pass"
	"github.com/Faultbox/scenegraph/internal/engine/picking"
	"github.com/Faultbox/scenegraph/internal/engine/renderer"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/engine/screenshot"
	"github.com/Faultbox/scenegraph/internal/engine/ui2d"
	"github.com/Faultbox/scenegraph/internal/engine/window"
	"github.com/Faultbox/scenegraph/internal/logger"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	lit   *renderer.Effect
	decal *renderer.Effect
	unlit *renderer.Effect

	scene *scene.Scene
	base  math.Mat4 // root transform before spinning
	rig   *lightRig

	camera *camera.Camera
	orbit  *camera.Orbit

	menu *menu
	fps  float64

	capture  *screenshot.Capture
	shoot    bool // capture after the next frame is drawn
	selected *scene.Node
	press    struct {
		x, y  int
		moved bool
	}

	elapsed float64
}

// clickSlop is how far, in points, the mouse may move between press and
// release for the release to count as a click.
const clickSlop = 3

// New loads the scene and creates the window, renderer and effects.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}

	a.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Load before opening a window so a bad file fails fast.
	var err error
	a.scene, err = LoadScene(cfg.Scene)
	if err != nil {
		return nil, err
	}
	a.base = a.scene.RootNode().LocalTransform()
	bounds := pass.NewBounds()
	a.scene.Accept(bounds)
	box, _ := bounds.Box()
	a.rig = newLightRig(box)

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist
	width, height := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{
		Width:        width,
		Height:       height,
		ClearColor:   cfg.ClearColor(),
		FlipTextures: !cfg.Scene.LeftHanded,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, e := range []struct {
		dst     **renderer.Effect
		variant renderer.Variant
	}{
		{&a.lit, renderer.Lit},
		{&a.decal, renderer.Decal},
		{&a.unlit, renderer.Unlit},
	} {
		*e.dst, err = renderer.NewEffect(e.variant, a.rig.buffer, a.renderer)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create effect: %w", err)
		}
	}

	ui, err := ui2d.NewContext(a.window.PointSize())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	a.menu = newMenu(ui)

	a.input = input.New()
	a.capture = screenshot.New(cfg.Render.ScreenshotDir, "scenegraph")
	a.camera = camera.New()
	a.orbit = camera.NewOrbit()
	a.resetCamera()

	a.log.Info("viewer initialized successfully")
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		if err := a.handleInput(); err != nil {
			return fmt.Errorf("input error: %w", err)
		}

		a.update(dt)
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if since := time.Since(fpsTimer); since >= time.Second {
			a.fps = float64(frameCount) / since.Seconds()
			a.window.SetTitle(a.title(a.fps))
			a.log.Debug("fps",
				zap.Float64("fps", a.fps),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Int("draws", a.renderer.DrawCalls()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases everything New created. It is safe on a partially
// initialized App.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.menu != nil {
		a.menu.Close()
	}
	for _, e := range []*renderer.Effect{a.lit, a.decal, a.unlit} {
		if e != nil {
			e.Close()
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleInput() error {
	for _, event := range a.input.Events() {
		a.menu.feed(event)

		switch event.Type {
		case input.EventWindowResize:
			a.resize(event.Width, event.Height)

		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_F11:
				if err := a.window.ToggleFullscreen(); err != nil {
					return err
				}
			case sdl.SCANCODE_F:
				a.fitCamera()
			case sdl.SCANCODE_HOME:
				a.resetCamera()
			case sdl.SCANCODE_L:
				a.cfg.Render.ShowLights = !a.cfg.Render.ShowLights
			case sdl.SCANCODE_M:
				a.menu.visible = !a.menu.visible
			case sdl.SCANCODE_F12:
				a.shoot = true
			}

		case input.EventMouseDown:
			if event.Button == input.ButtonLeft {
				// A press on the panel never becomes a pick.
				a.press.x, a.press.y, a.press.moved = event.MouseX, event.MouseY, a.menu.wantsMouse()
			}

		case input.EventMouseMove:
			if abs(event.MouseX-a.press.x) > clickSlop || abs(event.MouseY-a.press.y) > clickSlop {
				a.press.moved = true
			}

		case input.EventMouseUp:
			if event.Button == input.ButtonLeft && !a.press.moved {
				a.selectAt(event.MouseX, event.MouseY)
			}
		}
	}

	if a.menu.wantsMouse() {
		return nil
	}

	dx, dy := a.input.Drag()
	switch {
	case (dx != 0 || dy != 0) && a.input.IsButtonDown(input.ButtonLeft):
		a.orbit.HandleDrag(float32(dx), float32(dy))
		a.orbit.Apply(a.camera)
	case (dx != 0 || dy != 0) && (a.input.IsButtonDown(input.ButtonRight) || a.input.IsButtonDown(input.ButtonMiddle)):
		a.orbit.Pan(a.camera, float32(dx), float32(dy))
	}

	if steps := a.input.Wheel(); steps != 0 {
		a.orbit.HandleZoom(float32(steps))
		a.orbit.Apply(a.camera)
	}
	return nil
}

// selectAt picks the node under the given window point.
func (a *App) selectAt(x, y int) {
	w, h := a.window.PointSize()
	hit, ok := pickAt(a.camera, a.scene, x, y, w, h)
	if !ok {
		if a.selected != nil {
			a.log.Info("selection cleared")
		}
		a.selected = nil
		return
	}
	a.selected = hit.Node
	a.log.Info("node picked",
		zap.String("node", hit.Node.Name()),
		zap.String("mesh", hit.Mesh.Name),
		zap.Float32("distance", hit.Distance),
		logger.Vec3("point", hit.Point),
		zap.Int("depth", hit.Node.Depth()),
	)
}

// selectNode makes n the selection; nil clears it.
func (a *App) selectNode(n *scene.Node) {
	a.selected = n
	if n == nil {
		a.log.Info("selection cleared")
		return
	}
	a.log.Info("node selected", zap.String("node", n.Name()), zap.Int("depth", n.Depth()))
}

// pickAt casts a ray through point (x, y) of a w by h window.
func pickAt(cam *camera.Camera, s *scene.Scene, x, y, w, h int) (picking.Hit, bool) {
	if w <= 0 || h <= 0 {
		return picking.Hit{}, false
	}
	inv := cam.ViewMatrix().Then(cam.ProjectionMatrix()).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)
	return picking.Pick(s, ray)
}

func (a *App) takeScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.capture.FromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) title(fps float64) string {
	title := fmt.Sprintf("%s - %.0f FPS", a.cfg.Window.Title, fps)
	if a.selected != nil {
		title += " - " + a.selected.Name()
	}
	return title
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (a *App) resize(width, height int) {
	// Event sizes are in window points; the viewport wants pixels.
	if w, h := a.window.Size(); w > 0 && h > 0 {
		width, height = w, h
	}
	a.renderer.Resize(width, height)
	a.menu.ui.Resize(a.window.PointSize())
	a.camera.SetProjection(a.cfg.Camera.FoV, a.renderer.AspectRatio(), a.cfg.Camera.Near, a.cfg.Camera.Far)
}

// resetCamera restores the configured look-at pose.
func (a *App) resetCamera() {
	eye, target := a.cfg.EyePosition(), a.cfg.TargetPosition()
	a.camera.SetLookAt(eye, target, a.cfg.UpVector())
	a.camera.SetProjection(a.cfg.Camera.FoV, a.renderer.AspectRatio(), a.cfg.Camera.Near, a.cfg.Camera.Far)
	a.orbit.FromEye(eye, target)
	a.log.Debug("camera reset",
		logger.Vec3("eye", eye),
		logger.Vec3("target", target),
		logger.Matrix("view", a.camera.ViewMatrix()),
	)
}

// fitCamera frames the whole scene, including its current spin.
func (a *App) fitCamera() {
	bounds := pass.NewBounds()
	a.scene.Accept(bounds)
	if box, ok := bounds.Box(); ok {
		a.orbit.FitToBounds(box)
		a.orbit.Apply(a.camera)
	}
}

func (a *App) update(dt float64) {
	a.elapsed += dt
	t := float32(a.elapsed)

	angle := math.ToRadians(a.cfg.Scene.SpinSpeed) * t
	a.scene.RootNode().SetLocalTransform(spinTransform(a.base, a.cfg.SpinAxis(), angle))

	a.rig.update(t)
	a.rig.buffer.UpdateView(a.camera.ViewMatrix())
}

func (a *App) render() {
	a.renderer.Begin()

	// Opaque first, then transparent meshes over the filled depth buffer.
	a.scene.Accept(pass.New(a.renderer, a.camera, a.lit, false))
	a.scene.Accept(pass.New(a.renderer, a.camera, a.decal, true))

	if a.cfg.Render.ShowLights {
		markers := pass.New(a.renderer, a.camera, a.unlit, false)
		for _, m := range a.rig.markers() {
			m.Accept(markers)
		}
	}

	if a.selected != nil {
		a.drawSelection()
	}

	// The panel goes on top of everything, and into screenshots.
	st := a.menu.draw(a.scene, menuState{fps: a.fps, selected: a.selected, showLights: a.cfg.Render.ShowLights})
	a.cfg.Render.ShowLights = st.showLights
	if st.selected != a.selected {
		a.selectNode(st.selected)
	}

	a.renderer.End()

	if a.shoot {
		a.shoot = false
		a.takeScreenshot()
	}
}

// drawSelection outlines the selected node's mesh box in its world frame.
func (a *App) drawSelection() {
	if len(a.selected.Meshes()) == 0 {
		return
	}
	a.unlit.SetViewMatrix(a.camera.ViewMatrix())
	a.unlit.SetProjectionMatrix(a.camera.ProjectionMatrix())
	a.unlit.SetWorldMatrix(math.Identity())
	a.unlit.SetMaterial(scene.Green)
	a.unlit.Apply(a.renderer)
	a.renderer.DrawLines(debug.BoxWireframe(a.selected.AABB(), a.selected.WorldTransform(), debug.SelectionPadding))
}
