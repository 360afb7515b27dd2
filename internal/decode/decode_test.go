package decode

import (
	"testing"

	"github.com/fluxvault/decoder/internal/framer"
	"github.com/fluxvault/decoder/internal/logging"
	"github.com/stretchr/testify/require"
)

const cellWidthNS = int64(NominalCellNS)

// fmCellBits returns the FM clock/data cell-bit sequence for data, assuming
// a clock pulse present in every cell (the ZDS "no markers" simplification):
// for each byte, bit positions MSB-first, each contributing a clock cell
// (always 1) followed by a data cell (1 iff the bit is set).
func fmCellBits(data []byte) []int {
	bits := make([]int, 0, len(data)*16)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, 1)
			if (b>>uint(i))&1 != 0 {
				bits = append(bits, 1)
			} else {
				bits = append(bits, 0)
			}
		}
	}
	return bits
}

// fmFluxIntervals converts a cell-bit sequence into the flux-interval list a
// real recording would produce: one interval per transition, measured from
// the previous transition (or from a virtual transition one cell before the
// stream start, for the first).
func fmFluxIntervals(bits []int) []int64 {
	var intervals []int64
	lastIdx := -1
	for i, b := range bits {
		if b == 0 {
			continue
		}
		intervals = append(intervals, int64(i-lastIdx)*cellWidthNS)
		lastIdx = i
	}
	return intervals
}

type fixedSource struct {
	intervals []int64
	pos       int
}

func (f *fixedSource) SeekBlock(num int) (int, bool) {
	if num != 0 {
		return 0, false
	}
	f.pos = 0
	return 0, true
}

func (f *fixedSource) NextFlux() (int64, bool) {
	if f.pos >= len(f.intervals) {
		return 0, false
	}
	v := f.intervals[f.pos]
	f.pos++
	return v, true
}

func buildRecord(id, track byte) []byte {
	rec := make([]byte, framer.RecordWords)
	rec[0] = 0x80 | id // high bit set so the sync prologue test fires on this byte
	rec[1] = track
	for i := 0; i < framer.SectorSize; i++ {
		rec[2+i] = byte(i)
	}
	crc := framer.ComputeCRC(rec[:len(rec)-2])
	rec[len(rec)-2] = byte(crc >> 8)
	rec[len(rec)-1] = byte(crc)
	return rec
}

func TestFramerRecoversSyntheticFMSector(t *testing.T) {
	preamble := make([]byte, 8) // zero bytes: clock pulses only, sync's required run of zero data
	rec := buildRecord(5, 12)

	stream := append(append([]byte{}, preamble...), rec...)
	intervals := fmFluxIntervals(fmCellBits(stream))

	src := &fixedSource{intervals: intervals}
	log := logging.New(logging.Always, "test")

	table := framer.DecodeTrack(src, NominalCellNS, log, framer.DefaultSchedule())
	sectors := table.Sectors()
	require.Len(t, sectors, 1)
	require.Equal(t, byte(5), sectors[0].ID)
	require.Equal(t, byte(12), sectors[0].Track)
	require.Equal(t, byte(0), sectors[0].Data[0])
	require.Equal(t, byte(127), sectors[0].Data[127])
}
