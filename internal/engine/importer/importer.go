// Package importer builds scenes from Wavefront OBJ files and their MTL
// material libraries.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/logger"
)

// Import errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	ErrCanceled          = errors.New("import canceled")
	ErrMalformed         = errors.New("malformed input")
)

// ParseError reports malformed input. Line is 0 when the position is not
// known, as for face indices checked after decoding.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Progress is called while a file is parsed with the fraction done, from 0
// to 1. Returning false cancels the import.
type Progress func(fraction float32) bool

// Options control how geometry is converted.
type Options struct {
	// LeftHanded mirrors Z, flips the V texture coordinate and reverses
	// triangle winding, converting right-handed OBJ data for the
	// left-handed camera.
	LeftHanded bool

	// SmoothingAngle limits which faces contribute to a generated normal, in
	// degrees. Faces meeting at a sharper angle keep separate normals.
	// Zero smooths across all faces sharing a position.
	SmoothingAngle float32
}

// Importer loads scene files.
type Importer struct {
	opts     Options
	warnings []string
	log      *zap.Logger
}

// New creates an importer.
func New(opts Options) *Importer {
	return &Importer{opts: opts, log: logger.Named("importer")}
}

// Warnings returns the non-fatal problems found by the last load.
func (imp *Importer) Warnings() []string {
	return imp.warnings
}

// LoadFile loads the scene at path. Material libraries and textures are
// resolved relative to the file's directory.
func (imp *Importer) LoadFile(filePath string, progress Progress) (*scene.Scene, error) {
	dir, name := filepath.Split(filePath)
	if dir == "" {
		dir = "."
	}
	s, err := imp.load(os.DirFS(dir), name, dir, progress)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filePath, err)
	}
	return s, nil
}

// LoadFS loads the scene called name from fsys.
func (imp *Importer) LoadFS(fsys fs.FS, name string, progress Progress) (*scene.Scene, error) {
	return imp.load(fsys, name, "", progress)
}

// LoadString parses src as the given format ("obj"). Material libraries
// referenced by src cannot be resolved and are reported as warnings.
func (imp *Importer) LoadString(src, format string) (*scene.Scene, error) {
	if !supported(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	imp.warnings = nil
	l := &loader{imp: imp, file: "<string>", base: "."}
	return l.run([]byte(src), "Scene", nil)
}

func (imp *Importer) load(fsys fs.FS, name, texDir string, progress Progress) (*scene.Scene, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if !supported(ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	imp.warnings = nil
	l := &loader{imp: imp, fsys: fsys, texDir: texDir, file: name, base: path.Dir(name)}
	s, err := l.run(data, strings.TrimSuffix(path.Base(name), path.Ext(name)), progress)
	if err != nil {
		return nil, err
	}
	imp.log.Debug("imported scene",
		zap.String("file", name),
		zap.Int("meshes", len(s.Meshes())),
		zap.Int("materials", len(s.Materials())),
		zap.Int("warnings", len(imp.warnings)),
	)
	return s, nil
}

// loader holds the state of one import.
type loader struct {
	imp    *Importer
	fsys   fs.FS  // nil when loading from a string
	texDir string // host directory prepended to texture paths
	file   string
	base   string // directory of the OBJ file inside fsys
}

func (l *loader) run(data []byte, rootName string, progress Progress) (*scene.Scene, error) {
	dec, err := decodeOBJ(data, l.file, progress)
	if err != nil {
		return nil, err
	}
	if progress != nil && !progress(1) {
		return nil, ErrCanceled
	}
	for _, w := range dec.Warnings {
		l.imp.warn(l.file, w)
	}

	var materials []*scene.Material
	if dec.Matlib != "" {
		if l.fsys == nil {
			l.imp.warn(l.file, "cannot resolve material library "+dec.Matlib)
		} else if materials, err = l.loadLibrary(dec.Matlib); err != nil {
			l.imp.warn(l.file, fmt.Sprintf("material library: %v", err))
		}
	}
	return l.build(dec, materials, rootName)
}

func (imp *Importer) warn(file, msg string) {
	w := file + ": " + msg
	imp.warnings = append(imp.warnings, w)
	imp.log.Debug("import warning", zap.String("warning", w))
}

func supported(format string) bool {
	return strings.EqualFold(format, "obj")
}
