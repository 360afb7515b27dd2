package flux

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func kfInfoBlock(hc int, sck, ick float64) []byte {
	text := []byte("hc=0, sck=24027428.5714285, ick=3003428.5714285625, host_date=2024.01.01, host_time=00:00:00\x00")
	if hc != 0 {
		text = []byte("hc=1, sck=24027428.5714285, ick=3003428.5714285625\x00")
	}
	hdr := make([]byte, 4)
	hdr[0] = opOOB
	hdr[1] = oobKFInfo
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(len(text)))
	return append(hdr, text...)
}

func TestParseSoftSectorStream(t *testing.T) {
	var raw []byte
	raw = append(raw, kfInfoBlock(0, 0, 0)...)
	// a handful of FLUX1 (single-byte) opcodes, values in [0x0e,0xff]
	raw = append(raw, 0x20, 0x30, 0x40)

	s, err := Parse(raw, nil)
	require.NoError(t, err)
	require.Len(t, s.Data, 3)
	require.Equal(t, []byte{0x20, 0x30, 0x40}, s.Data)
	require.Equal(t, 0, s.Params.HardSectors)
}

func TestIteratorBiasFreeConversion(t *testing.T) {
	var raw []byte
	raw = append(raw, kfInfoBlock(0, 0, 0)...)
	// three FLUX1 opcodes of value 24 samples each; at the default sample
	// clock (~24.0274 MHz) this should convert to ~999ns per 24-sample cell.
	raw = append(raw, 24, 24, 24)

	s, err := Parse(raw, nil)
	require.NoError(t, err)

	it := NewIterator(s)
	sector, ok := it.SeekBlock(0)
	require.True(t, ok)
	require.Equal(t, 0, sector)

	var total int64
	for i := 0; i < 3; i++ {
		ns, ok := it.NextFlux()
		require.True(t, ok)
		total += ns
	}
	_, ok = it.NextFlux()
	require.False(t, ok)
	require.InDelta(t, 2995, total, 5)
}

func TestParseKFInfoHardSectorCount(t *testing.T) {
	var raw []byte
	raw = append(raw, kfInfoBlock(1, 0, 0)...)
	raw = append(raw, 0x20, 0x30)

	s, err := Parse(raw, nil)
	require.NoError(t, err)
	require.Equal(t, 1, s.Params.HardSectors)
}
