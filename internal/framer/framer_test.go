package framer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRCRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	crc := ComputeCRC(payload)
	full := append(append([]byte{}, payload...), byte(crc>>8), byte(crc))
	require.True(t, CheckCRC(full))

	full[0] ^= 0xff
	require.False(t, CheckCRC(full))
}

func TestSectorTableFirstWriteWins(t *testing.T) {
	table := NewTable()
	sec := Sector{ID: 3, Track: 1}
	require.Empty(t, table.Record(sec))
	require.Empty(t, table.Record(sec)) // identical re-read confirms

	sectors := table.Sectors()
	require.Len(t, sectors, 1)
	require.True(t, sectors[0].Confirmed)
}

func TestSectorTableConflictReported(t *testing.T) {
	table := NewTable()
	require.Empty(t, table.Record(Sector{ID: 3, Track: 1, Data: [128]byte{0: 0xAA}}))
	note := table.Record(Sector{ID: 3, Track: 1, Data: [128]byte{0: 0xBB}})
	require.NotEmpty(t, note)
}

func TestSectorTableMissingReportsID(t *testing.T) {
	table := NewTable()
	require.Empty(t, table.Record(Sector{ID: 0, Track: 0}))
	missing := table.Missing()
	require.Contains(t, missing, 1)
	require.NotContains(t, missing, 0)
}

func TestSlotAllocatorAdvancesAcrossMissingSectors(t *testing.T) {
	a := NewSlotAllocator(24.0, 40, 200)
	slot, _ := a.Slot(IndexHoleMark, 0)
	require.Equal(t, 0, slot)

	slot, _ = a.Slot(IDAddressMark, int64(200*24))
	require.Equal(t, 1, slot)

	slot, skipped := a.Slot(IDAddressMark, int64(3*200*24))
	require.Equal(t, 3, slot)
	require.GreaterOrEqual(t, skipped, 1)
}
