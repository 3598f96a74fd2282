package importer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

// progressReader reports the fraction of the source consumed before every
// read and fails the read once the callback cancels.
type progressReader struct {
	r        *bytes.Reader
	total    int
	progress Progress
	canceled bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	if p.progress != nil {
		done := p.total - p.r.Len()
		if !p.progress(float32(done) / float32(max(p.total, 1))) {
			p.canceled = true
			return 0, ErrCanceled
		}
	}
	return p.r.Read(b)
}

// decodeOBJ parses the geometry statements of an OBJ file. The material
// library it names is decoded separately by loadLibrary.
func decodeOBJ(data []byte, file string, progress Progress) (*obj.Decoder, error) {
	pr := &progressReader{r: bytes.NewReader(data), total: len(data), progress: progress}
	dec, err := obj.DecodeReader(pr, strings.NewReader(""))
	if pr.canceled {
		return nil, ErrCanceled
	}
	if err != nil {
		return nil, malformed(file, err)
	}
	return dec, nil
}

func malformed(file string, err error) error {
	return &ParseError{
		File: file,
		Line: lineOf(err),
		Err:  fmt.Errorf("%w: %v", ErrMalformed, err),
	}
}

// lineOf extracts the line number the decoder appends to its format errors
// ("... in line:N"), or 0.
func lineOf(err error) int {
	msg := err.Error()
	i := strings.LastIndex(msg, "in line:")
	if i < 0 {
		return 0
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(msg[i+len("in line:"):]))
	if convErr != nil {
		return 0
	}
	return n
}
