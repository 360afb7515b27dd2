// Package decode orchestrates the full flux-to-bits pipeline: parsing a raw
// stream, walking its physical blocks, and running the DPLL/byte-framer
// retry loop to recover ZDS FM sector records. It is grounded on
// flux2track()'s overall shape plus a per-track read loop over a disk's
// (cylinder, head) geometry.
package decode

import (
	"fmt"

	"github.com/fluxvault/decoder/internal/flux"
	"github.com/fluxvault/decoder/internal/framer"
	"github.com/fluxvault/decoder/internal/logging"
)

// TrackResult is one physical track's decode outcome.
type TrackResult struct {
	Cylinder int
	Head     int
	Sectors  []framer.Sector
	Missing  []int
}

// NominalCellNS is the ZDS FM profile's nominal DPLL cell period: 1000ns.
// At 500kbps FM each bit contributes two cells (clock, then data), so the
// cell period is half the 2000ns bit period.
const NominalCellNS = 1000

// Track parses raw stream bytes for one physical track and runs the DPLL/
// framer retry loop over every physical block it contains, using schedule
// for the retry loop's (init_sync, resync) parameter pairs.
func Track(cylinder, head int, raw []byte, log *logging.Logger, schedule framer.Schedule) (*TrackResult, error) {
	logf := func(format string, args ...any) { log.Minimal(format, args...) }
	s, err := flux.Parse(raw, logf)
	if err != nil && s == nil {
		return nil, fmt.Errorf("decode: track %d/%d: %w", cylinder, head, err)
	}
	if err != nil {
		log.Errorf("%v", err)
	}

	it := flux.NewIterator(s)
	table := framer.DecodeTrack(it, NominalCellNS, log, schedule)

	res := &TrackResult{Cylinder: cylinder, Head: head, Sectors: table.Sectors(), Missing: table.Missing()}
	if len(res.Missing) >= 3 {
		log.Minimal("track %d/%d: %d sectors missing", cylinder, head, len(res.Missing))
	}
	return res, nil
}

// Disk holds every track's decode result for a complete disk image.
type Disk struct {
	Tracks []*TrackResult
}

// Source supplies one physical track's raw stream bytes, letting Disk stay
// agnostic of whether tracks come from individual KryoFlux stream files, an
// SCP trace, or an in-memory test fixture.
type Source interface {
	// Track returns the raw stream bytes for (cylinder, head), and whether
	// that track exists in the source.
	Track(cylinder, head int) ([]byte, bool)
}

// Geometry bounds how many cylinders/heads a Disk decode walks.
type Geometry struct {
	Cylinders int
	Heads     int
}

// DecodeDisk runs Track over every (cylinder, head) pair in geom, skipping
// tracks the source doesn't have.
func DecodeDisk(src Source, geom Geometry, log *logging.Logger, schedule framer.Schedule) (*Disk, error) {
	d := &Disk{}
	for c := 0; c < geom.Cylinders; c++ {
		for h := 0; h < geom.Heads; h++ {
			raw, ok := src.Track(c, h)
			if !ok {
				continue
			}
			res, err := Track(c, h, raw, log.WithTarget(fmt.Sprintf("track %d.%d", c, h)), schedule)
			if err != nil {
				return d, err
			}
			d.Tracks = append(d.Tracks, res)
		}
	}
	return d, nil
}
