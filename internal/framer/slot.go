package framer

// JitterAllowance is the byte-position tolerance used when deciding how many
// sector slots a gap between markers spans, matching JITTER_ALLOWANCE.
const JitterAllowance = 20

// MarkerKind identifies which address mark triggered a slot-allocator update.
type MarkerKind int

const (
	IndexHoleMark MarkerKind = iota
	IndexAddressMark
	IDAddressMark
	DataAddressMark
	DeletedAddressMark
)

// SlotAllocator tracks byte position on a track and assigns each marker to a
// sector slot, tolerating missing sectors without losing alignment, matching
// getSlot/slotInfo.
type SlotAllocator struct {
	ByteClock            float64 // bytes per raw flux sample, format-dependent
	InterMarkerByteCount int     // ID-AM to Data-AM byte span
	InterSectorByteCount int     // nominal byte span between consecutive sector ID marks

	slotByteNumber int
	slot           int
}

// NewSlotAllocator returns an allocator for one track using the given format
// timing constants.
func NewSlotAllocator(byteClock float64, interMarkerByteCount, interSectorByteCount int) *SlotAllocator {
	return &SlotAllocator{ByteClock: byteClock, InterMarkerByteCount: interMarkerByteCount, InterSectorByteCount: interSectorByteCount}
}

// timeToByte converts a raw sample-clock timestamp to a byte offset on the
// track, matching time2Byte.
func (a *SlotAllocator) timeToByte(sampleTime int64) int {
	return int(float64(sampleTime)/a.ByteClock + 0.5)
}

// Slot returns the slot number for a marker observed at sampleTime, and the
// number of slots it advanced to get there: one more than the number of
// sectors missed in between (for missing-sector diagnostics — flux2track
// logs a warning when this exceeds 3, i.e. when 3 or more are missing).
func (a *SlotAllocator) Slot(kind MarkerKind, sampleTime int64) (slot int, skipped int) {
	t := a.timeToByte(sampleTime)

	switch kind {
	case IndexHoleMark:
		a.slotByteNumber = 0
		a.slot = 0
		return a.slot, 0
	case DataAddressMark, DeletedAddressMark:
		if t-a.slotByteNumber < SectorSize {
			return a.slot, 0
		}
		t -= a.InterMarkerByteCount
		fallthrough
	case IDAddressMark:
		if a.slotByteNumber == 0 {
			a.slotByteNumber = t
			for a.slotByteNumber > a.InterSectorByteCount {
				a.slotByteNumber -= a.InterSectorByteCount
			}
			a.slot = 0
		}
		inc := 0
		for t-a.slotByteNumber > a.InterSectorByteCount-JitterAllowance {
			a.slotByteNumber += a.InterSectorByteCount
			inc++
		}
		a.slot += inc
		if inc != 0 {
			a.slotByteNumber = t
		}
		return a.slot, inc
	}
	return a.slot, 0
}
