package app

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/config"
	"github.com/Faultbox/scenegraph/internal/engine/geometry"
	"github.com/Faultbox/scenegraph/internal/engine/importer"
	"github.com/Faultbox/scenegraph/internal/engine/lighting"
	"github.com/Faultbox/scenegraph/internal/engine/pass"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/logger"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// LoadScene imports the configured model, or builds a unit cube when no
// file is configured.
func LoadScene(cfg config.SceneConfig) (*scene.Scene, error) {
	log := logger.Named("app")

	if cfg.File == "" {
		cube := geometry.Cube(1)
		cube.Material = scene.NewMaterial("Cube")
		log.Info("no scene file configured, using a cube")
		return geometry.NewScene(cube), nil
	}

	imp := importer.New(importer.Options{
		LeftHanded:     cfg.LeftHanded,
		SmoothingAngle: cfg.SmoothingAngle,
	})

	next := float32(0)
	s, err := imp.LoadFile(cfg.File, func(f float32) bool {
		if f >= next {
			log.Debug("loading scene", zap.String("file", cfg.File), zap.Float32("progress", f))
			next = f + 0.25
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	for _, w := range imp.Warnings() {
		log.Warn("scene import", zap.String("warning", w))
	}

	var stats pass.Stats
	s.Accept(&stats)
	log.Info("scene loaded",
		zap.String("file", cfg.File),
		zap.Int("nodes", stats.Nodes),
		zap.Int("meshes", stats.Meshes),
		zap.Int("triangles", stats.Triangles),
		zap.Int("transparent", stats.Transparent),
	)
	return s, nil
}

// spinTransform rotates about axis by angle radians in the node's own frame
// before base is applied.
func spinTransform(base math.Mat4, axis math.Vec3, angle float32) math.Mat4 {
	return math.RotateAxis(axis, angle).Then(base)
}

// Light marker sizes relative to the rig radius.
const (
	markerScale   = 0.05
	orbitSpeed    = 0.5 // radians per second
	spotConeAngle = 20  // degrees
)

// lightRig animates the point lights around the scene and keeps a marker
// scene per light in sync with it.
type lightRig struct {
	buffer *lighting.Buffer
	center math.Vec3
	radius float32

	points []*scene.Scene
	spots  []*scene.Scene
}

func newLightRig(bounds scene.BoundingBox) *lightRig {
	r := &lightRig{
		center: bounds.Center(),
		radius: max(bounds.Extents().Length(), 1) * 1.5,
	}

	sun := lighting.NewDirectionalLight(
		lighting.Direction(math.ToRadians(-45), math.ToRadians(45)),
		math.Vec4{X: 0.6, Y: 0.6, Z: 0.55, W: 1},
	)
	r.buffer = lighting.NewBuffer(sun)

	for _, m := range []*scene.Material{scene.Red, scene.Green, scene.Blue} {
		light := lighting.NewPointLight(r.center, m.Properties.Emissive)
		light.LinearAttenuation = 0.08
		light.QuadraticAttenuation = 0.01
		r.buffer.AddLight(light)

		sphere := geometry.Sphere(1, 12)
		sphere.Material = m
		r.points = append(r.points, geometry.NewScene(sphere))
	}

	above := r.center.Add(math.Vec3{Y: r.radius})
	spot := lighting.NewSpotLight(above, r.center.Sub(above), math.ToRadians(spotConeAngle),
		math.Vec4{X: 1, Y: 1, Z: 1, W: 1})
	r.buffer.AddSpot(spot)

	cone := geometry.Cone(0.5, 1, 16)
	cone.Material = scene.White
	r.spots = append(r.spots, geometry.NewScene(cone))

	r.update(0)
	return r
}

// update places the lights for the given time in seconds.
func (r *lightRig) update(elapsed float32) {
	n := len(r.buffer.Lights)
	size := r.radius * markerScale

	for i := range r.buffer.Lights {
		angle := elapsed*orbitSpeed + float32(i)*2*math32.Pi/float32(n)
		pos := r.center.Add(math.Vec3{
			X: r.radius * math32.Cos(angle),
			Y: r.radius * 0.3,
			Z: r.radius * math32.Sin(angle),
		})
		r.buffer.Lights[i].PositionWS = pos.Vec4(1)
		r.points[i].RootNode().SetLocalTransform(math.Scale(size, size, size).Then(math.TranslateVec(pos)))
	}

	for i := range r.buffer.Spots {
		// The cone mesh points along +Y; turn it onto the light's +Z.
		r.spots[i].RootNode().SetLocalTransform(math.RotateX(math32.Pi / 2).Then(r.buffer.Spots[i].World(size * 2)))
	}
}

// markers returns the marker scenes, point lights first.
func (r *lightRig) markers() []*scene.Scene {
	return append(append([]*scene.Scene(nil), r.points...), r.spots...)
}
