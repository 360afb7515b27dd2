// Package kryoflux loads KryoFlux stream files from disk into the core
// pipeline's input shape. File I/O is out of scope as anything but a thin
// interface per the pipeline's design, so this package is deliberately
// small: it owns the stream-file naming convention and nothing else. The
// byte-level opcode/OOB decoding lives in internal/flux, not here — this
// package used to also own that byte-level decode, but the slot/phase-table
// pipeline now owns it instead.
package kryoflux

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirSource reads per-track stream files from a directory using the
// KryoFlux host software's naming convention: "<prefix>NN.S.raw" for
// cylinder NN, head S.
type DirSource struct {
	Dir    string
	Prefix string // e.g. "track", the default KryoFlux DTC prefix
}

// NewDirSource returns a DirSource rooted at dir using the default "track"
// file prefix.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir, Prefix: "track"}
}

func (d *DirSource) filename(cylinder, head int) string {
	prefix := d.Prefix
	if prefix == "" {
		prefix = "track"
	}
	return filepath.Join(d.Dir, fmt.Sprintf("%s%02d.%d.raw", prefix, cylinder, head))
}

// Track implements decode.Source, reading one track's raw stream file.
func (d *DirSource) Track(cylinder, head int) ([]byte, bool) {
	raw, err := os.ReadFile(d.filename(cylinder, head))
	if err != nil {
		return nil, false
	}
	return raw, true
}
