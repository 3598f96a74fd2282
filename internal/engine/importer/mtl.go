package importer

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// textureStatements are the map statements obj.Decoder drops or keeps
// without options. map_Kd is listed so its -bm and path resolution match the
// other maps.
var textureStatements = map[string]scene.TextureType{
	"map_Ka":   scene.TextureAmbient,
	"map_Kd":   scene.TextureDiffuse,
	"map_Ks":   scene.TextureSpecular,
	"map_Ke":   scene.TextureEmissive,
	"map_Ns":   scene.TextureSpecularPower,
	"map_d":    scene.TextureOpacity,
	"map_bump": scene.TextureBump,
	"map_Bump": scene.TextureBump,
	"bump":     scene.TextureBump,
	"norm":     scene.TextureNormal,
}

// extras is what a library states about one material beyond the fields of
// obj.Material.
type extras struct {
	textures map[scene.TextureType]string
	bump     float32
	hasBump  bool
	tr       float32
	hasTr    bool
	present  map[string]bool // statements obj.Decoder read
}

// library is a material library split into the part obj.Decoder reads and
// the statements kept aside for the post-pass.
type library struct {
	src    string
	order  []string
	extras map[string]*extras
}

// splitMTL blanks out the statements obj.Decoder does not carry and records
// them per material. Blank lines keep the decoder's line numbers aligned with
// the file.
func (l *loader) splitMTL(data []byte, file string) (*library, error) {
	lib := &library{extras: make(map[string]*extras)}
	dir := path.Dir(file)

	lines := strings.Split(string(data), "\n")
	var cur *extras
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				continue
			}
			name := fields[1]
			if _, ok := lib.extras[name]; !ok {
				lib.extras[name] = &extras{
					textures: make(map[scene.TextureType]string),
					present:  make(map[string]bool),
				}
				lib.order = append(lib.order, name)
			}
			cur = lib.extras[name]
			continue
		}
		if cur == nil {
			continue
		}

		keep := false
		switch fields[0] {
		case "Tr":
			if len(fields) < 2 {
				return nil, lineError(file, i+1, "'Tr' with no value")
			}
			tr, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, lineError(file, i+1, err.Error())
			}
			cur.tr, cur.hasTr = float32(tr), true
		case "Tf":
			// Transmission filters are not rendered.
		default:
			t, ok := textureStatements[fields[0]]
			if !ok {
				cur.present[fields[0]] = true
				keep = true
				break
			}
			if len(fields) < 2 {
				return nil, lineError(file, i+1, fmt.Sprintf("%q with no file", fields[0]))
			}
			cur.textures[t] = l.texturePath(fields[len(fields)-1], dir)
			if bm, ok := bumpMultiplier(fields[1 : len(fields)-1]); ok {
				cur.bump, cur.hasBump = bm, true
			}
		}
		if !keep {
			lines[i] = ""
		}
	}

	lib.src = strings.Join(lines, "\n")
	return lib, nil
}

// bumpMultiplier finds "-bm value" among texture options.
func bumpMultiplier(opts []string) (float32, bool) {
	for i := 0; i+1 < len(opts); i++ {
		if opts[i] != "-bm" {
			continue
		}
		v, err := strconv.ParseFloat(opts[i+1], 32)
		if err != nil {
			return 0, false
		}
		return float32(v), true
	}
	return 0, false
}

// loadLibrary reads the material library name, relative to the OBJ file
// directory base, and converts it to scene materials in file order.
func (l *loader) loadLibrary(name string) ([]*scene.Material, error) {
	libPath := path.Join(l.base, name)
	data, err := fs.ReadFile(l.fsys, libPath)
	if err != nil {
		return nil, err
	}

	lib, err := l.splitMTL(data, libPath)
	if err != nil {
		return nil, err
	}
	dec, err := obj.DecodeReader(strings.NewReader(""), strings.NewReader(lib.src))
	if err != nil {
		return nil, malformed(libPath, err)
	}
	for _, w := range dec.Warnings {
		l.imp.warn(libPath, w)
	}

	materials := make([]*scene.Material, 0, len(lib.order))
	for _, name := range lib.order {
		m := scene.NewMaterial(name)
		if src, ok := dec.Materials[name]; ok {
			applyMaterial(m, src, lib.extras[name])
		}
		materials = append(materials, m)
	}
	return materials, nil
}

// applyMaterial copies the statements a library actually gave, leaving
// scene defaults for the rest.
func applyMaterial(m *scene.Material, src *obj.Material, ex *extras) {
	p := &m.Properties
	color := func(key string, dst *math.Vec4, r, g, b float32) {
		if ex.present[key] {
			*dst = math.Vec4{X: r, Y: g, Z: b, W: 1}
		}
	}
	color("Ka", &p.Ambient, src.Ambient.R, src.Ambient.G, src.Ambient.B)
	color("Kd", &p.Diffuse, src.Diffuse.R, src.Diffuse.G, src.Diffuse.B)
	color("Ks", &p.Specular, src.Specular.R, src.Specular.G, src.Specular.B)
	color("Ke", &p.Emissive, src.Emissive.R, src.Emissive.G, src.Emissive.B)

	if ex.present["Ns"] {
		p.SpecularPower = src.Shininess
	}
	if ex.present["Ni"] {
		p.IndexOfRefraction = src.Refraction
	}
	switch {
	case ex.present["d"]:
		p.Opacity = src.Opacity
	case ex.hasTr:
		p.Opacity = 1 - ex.tr
	}
	if ex.hasBump {
		p.BumpIntensity = ex.bump
	}
	for t, file := range ex.textures {
		m.SetTexture(t, file)
	}
}

// texturePath resolves file against the library directory and, when loading
// from disk, the host directory of the OBJ file.
func (l *loader) texturePath(file, dir string) string {
	file = filepath.ToSlash(file)
	if path.IsAbs(file) || filepath.IsAbs(file) {
		return filepath.FromSlash(file)
	}
	p := path.Join(dir, file)
	if l.texDir == "" {
		return p
	}
	return filepath.Join(l.texDir, filepath.FromSlash(p))
}

func lineError(file string, line int, msg string) error {
	return &ParseError{File: file, Line: line, Err: fmt.Errorf("%w: %s", ErrMalformed, msg)}
}
