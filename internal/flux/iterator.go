package flux

// Iterator walks a Stream's physical blocks and converts the block's raw
// opcode-tagged byte run into a sequence of flux intervals in nanoseconds.
// All position state lives here, scoped per iterator instance, rather than in
// package globals (the original's inPtr/endPtr/totalSampleCnt/prevNsCnt).
type Iterator struct {
	s *Stream

	blockIdx  int
	rawIdx    int
	blkNumber int
	inPos     int
	endPos    int

	totalSampleCnt uint64
	prevNsCnt      uint64
	fluxScaler     float64
}

// NewIterator returns an Iterator positioned before the first usable block.
func NewIterator(s *Stream) *Iterator {
	return &Iterator{s: s, blockIdx: -1, fluxScaler: 1.0e9 / s.Params.SampleClock}
}

// skipToUsable advances past blocks that carry no decodable data: on
// hard-sectored media, blocks whose IndexCount was zeroed by the merge pass,
// and on any media, zero-length blocks.
func (it *Iterator) skipToUsable(idx int) int {
	for idx < len(it.s.Blocks) && isUnused(it.s.Params.HardSectors, it.s.Blocks[idx]) {
		idx++
	}
	return idx
}

// SeekBlock positions the iterator at block number num in the stream's
// Blocks list (skipping blocks that resolveHardSectors marked unused) and
// returns the block's physical sector number (0 for soft-sectored media) and
// whether that block exists. Mirrors seekBlock's rewind-then-scan-forward
// shape rather than a direct index, since blkNumber counts only blocks seen
// while scanning, not raw list position.
func (it *Iterator) SeekBlock(num int) (physSector int, ok bool) {
	idx, blkNumber := 0, 0
	if it.blockIdx >= 0 && num >= it.blkNumber {
		idx, blkNumber = it.rawIdx, it.blkNumber
	}
	idx = it.skipToUsable(idx)
	if idx >= len(it.s.Blocks) {
		it.blockIdx = -1
		return 0, false
	}
	for num > blkNumber && idx+1 < len(it.s.Blocks) {
		idx++
		idx = it.skipToUsable(idx)
		if idx >= len(it.s.Blocks) {
			it.blockIdx = -1
			return 0, false
		}
		blkNumber++
	}
	if num != blkNumber {
		it.blockIdx = -1
		return 0, false
	}
	b := it.s.Blocks[idx]
	it.blockIdx = idx
	it.rawIdx = idx
	it.blkNumber = blkNumber
	it.inPos = int(b.Start)
	it.endPos = int(b.End)
	it.totalSampleCnt = 0
	it.prevNsCnt = 0
	return int(b.PhysSector), true
}

// BlockStartOffset returns the current block's start position as a raw
// stream byte offset, or 0 if no block is positioned. This lets a caller
// derive a track-relative byte position for a block without needing to
// replay its flux intervals, e.g. framer.SlotAllocator's independent
// sector-slot cross-check.
func (it *Iterator) BlockStartOffset() int64 {
	if it.blockIdx < 0 {
		return 0
	}
	return int64(it.s.Blocks[it.blockIdx].Start)
}

// NextFlux returns the next flux interval in nanoseconds within the current
// block, or ok=false once the block is exhausted. The ns conversion
// accumulates the running raw sample total before scaling so rounding error
// never compounds across a long run (mirrors getNextFlux's totalSampleCnt/
// prevNsCnt bookkeeping).
func (it *Iterator) NextFlux() (ns int64, ok bool) {
	data := it.s.Data
	var ovl uint32
	for it.inPos < it.endPos {
		t := data[it.inPos]
		it.inPos++
		var c uint32
		switch {
		case t >= opFLUX1Min:
			c = uint32(t)
		case t <= opFLUX2Max:
			if it.inPos >= it.endPos {
				return 0, false
			}
			c = (uint32(t) << 8) + uint32(data[it.inPos])
			it.inPos++
		case t == opFLUX3:
			if it.inPos+1 >= it.endPos {
				return 0, false
			}
			c = uint32(data[it.inPos])<<8 + uint32(data[it.inPos+1])
			it.inPos += 2
		case t == opOVL16:
			ovl += 0x10000
			continue
		default: // NOP1-3
			skip := int(t) - opNOP1
			it.inPos += skip
			continue
		}
		c += ovl
		ovl = 0
		it.totalSampleCnt += uint64(c)
		newNsCnt := uint64(it.fluxScaler*float64(it.totalSampleCnt) + 0.5)
		delta := int64(newNsCnt - it.prevNsCnt)
		it.prevNsCnt = newNsCnt
		return delta, true
	}
	return 0, false
}
