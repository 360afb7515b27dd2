// Package scp reads SuperCard Pro trace files: a track-indexed table of
// per-revolution flux-interval arrays. It gives the DPLL/framer stages the
// same nanosecond-interval abstraction the KryoFlux stream path produces, so
// they stay source-agnostic. The device-control opcodes (SCPCMD_*
// motor/seek/select) a raw SCP client would also carry are dropped, since
// they only make sense against live hardware.
package scp

import (
	"encoding/binary"
	"fmt"
)

const (
	signature   = "SCP"
	headerSize  = 16
	maxTracks   = 168
	trackMarker = "TRK"
)

// Header holds the file-level parameters from an SCP trace's fixed header.
type Header struct {
	Version     byte
	DiskType    byte
	Revolutions byte
	StartTrack  byte
	EndTrack    byte
	Flags       byte
	CellWidth   byte // 0 = 16-bit flux entries
	Heads       byte
	Resolution  byte // time resolution = (Resolution+1) * 25ns
}

// timeUnitNS returns the duration, in nanoseconds, of one flux-entry tick.
func (h Header) timeUnitNS() int64 {
	return 25 * (int64(h.Resolution) + 1)
}

// Track holds one physical track's per-revolution flux-interval data, each
// revolution already expanded into nanosecond intervals.
type Track struct {
	Number     int
	Revolution [][]int64
}

// Trace is a parsed SCP file: header plus every present track.
type Trace struct {
	Header Header
	Tracks map[int]*Track
}

// Parse reads an SCP trace from raw file bytes.
func Parse(raw []byte) (*Trace, error) {
	if len(raw) < headerSize || string(raw[0:3]) != signature {
		return nil, fmt.Errorf("scp: not an SCP trace (bad signature)")
	}
	h := Header{
		Version:     raw[3],
		DiskType:    raw[4],
		Revolutions: raw[5],
		StartTrack:  raw[6],
		EndTrack:    raw[7],
		Flags:       raw[8],
		CellWidth:   raw[9],
		Heads:       raw[10],
		Resolution:  raw[11],
	}
	if headerSize+maxTracks*4 > len(raw) {
		return nil, fmt.Errorf("scp: truncated track offset table")
	}

	t := &Trace{Header: h, Tracks: make(map[int]*Track)}
	for i := 0; i < maxTracks; i++ {
		offPos := headerSize + i*4
		off := binary.LittleEndian.Uint32(raw[offPos : offPos+4])
		if off == 0 {
			continue
		}
		track, err := parseTrack(raw, int(off), h)
		if err != nil {
			return nil, fmt.Errorf("scp: track %d: %w", i, err)
		}
		t.Tracks[i] = track
	}
	return t, nil
}

func parseTrack(raw []byte, off int, h Header) (*Track, error) {
	if off+4 > len(raw) || string(raw[off:off+3]) != trackMarker {
		return nil, fmt.Errorf("missing TRK marker at offset %d", off)
	}
	num := int(raw[off+3])
	revCount := int(h.Revolutions)
	if revCount == 0 {
		revCount = 1
	}

	track := &Track{Number: num}
	entryBase := off + 4
	for r := 0; r < revCount; r++ {
		entryPos := entryBase + r*12
		if entryPos+12 > len(raw) {
			return nil, fmt.Errorf("truncated revolution table entry %d", r)
		}
		length := binary.LittleEndian.Uint32(raw[entryPos+4 : entryPos+8])
		dataOff := binary.LittleEndian.Uint32(raw[entryPos+8 : entryPos+12])
		dataStart := off + int(dataOff)
		dataEnd := dataStart + int(length)*2
		if dataEnd > len(raw) {
			return nil, fmt.Errorf("truncated flux data for revolution %d", r)
		}
		intervals := decodeFluxEntries(raw[dataStart:dataEnd], h.timeUnitNS())
		track.Revolution = append(track.Revolution, intervals)
	}
	return track, nil
}

// decodeFluxEntries converts a run of big-endian 16-bit SCP flux entries
// into nanosecond intervals. An entry of 0 means "add 65536 ticks and keep
// reading" (overflow extension), matching the SCP flux-data convention.
func decodeFluxEntries(data []byte, tickNS int64) []int64 {
	var out []int64
	var overflow int64
	for i := 0; i+1 < len(data); i += 2 {
		v := int64(binary.BigEndian.Uint16(data[i : i+2]))
		if v == 0 {
			overflow += 65536
			continue
		}
		out = append(out, (v+overflow)*tickNS)
		overflow = 0
	}
	return out
}

// Source adapts one revolution's interval slice to the dpll.Source /
// flux.Iterator-shaped NextFlux() contract.
type Source struct {
	intervals []int64
	pos       int
}

// NewSource returns a Source walking one track revolution's flux intervals.
func NewSource(intervals []int64) *Source {
	return &Source{intervals: intervals}
}

// NextFlux returns the next flux interval in nanoseconds.
func (s *Source) NextFlux() (int64, bool) {
	if s.pos >= len(s.intervals) {
		return 0, false
	}
	v := s.intervals[s.pos]
	s.pos++
	return v, true
}

// SeekBlock supports exactly one block (0), the revolution this Source
// wraps; SCP traces don't carry KryoFlux-style index-segmented blocks, so
// each revolution is itself the unit of work.
func (s *Source) SeekBlock(num int) (int, bool) {
	if num != 0 {
		return 0, false
	}
	s.pos = 0
	return 0, true
}
