package framer

import (
	"github.com/fluxvault/decoder/internal/dpll"
	"github.com/fluxvault/decoder/internal/logging"
)

// BlockSource is a flux source that can be repositioned to the start of a
// given physical block and then walked one interval at a time, satisfied by
// *flux.Iterator.
type BlockSource interface {
	SeekBlock(num int) (physSector int, ok bool)
	NextFlux() (ns int64, ok bool)
}

// Schedule is the retry loop's two parameter lists, widest search first,
// matching flux2track's "for initSync=16;...;+=16" / "for resync=2048;...;
// /=2" nesting. Callers typically source this from internal/config so an
// operator can widen or narrow the search without recompiling.
type Schedule struct {
	InitSync []int
	Resync   []int
}

// DefaultSchedule reproduces flux2track's literal retry bounds.
func DefaultSchedule() Schedule {
	return Schedule{
		InitSync: []int{16, 32, 48, 64, 80, 96},
		Resync:   []int{2048, 1024, 512, 256, 128, 64, 32},
	}
}

// resyncPercent maps a resync-schedule entry onto the DPLL's cell-clamp
// percentage: the original's resync parameter governs a different bit
// decoder (getFMBit's clock-reestimation window) that this package doesn't
// carry forward, since the DPLL stage (internal/dpll) already implements the
// slot/phase-table decoder for both the first and retry attempts. Scaling it
// down to a percent keeps the schedule's "wide then narrow" search character:
// later, narrower resync values tighten the clamp on how far cell_ticks may
// drift from the nominal cell period.
func resyncPercent(resync int) int64 {
	p := int64(resync) / 100
	if p < 1 {
		p = 1
	}
	return p
}

// blockOffsetSource is satisfied by sources (like *flux.Iterator) that can
// report a block's raw byte position on the track, letting DecodeTrack run
// an independent slot cross-check alongside the decoded sector ID.
type blockOffsetSource interface {
	BlockStartOffset() int64
}

// DecodeTrack walks every physical block of src, attempting to lock and read
// one ZDS FM sector record per block across the retry schedule, and returns
// the resulting sector table. nominalCellNS is the DPLL's nominal bit-cell
// period in nanoseconds for the track's encoding rate.
func DecodeTrack(src BlockSource, nominalCellNS int64, log *logging.Logger, schedule Schedule) *Table {
	table := NewTable()

	// ZDS FM packs ID and data into a single RecordWords-byte record rather
	// than separate ID/Data address marks, so the allocator only ever sees
	// IDAddressMark events here; the Data/Deleted-mark byte-gap logic in
	// SlotAllocator.Slot exists for two-mark formats and is unused by this
	// profile.
	allocator := NewSlotAllocator(1.0, 0, RecordWords)
	offsetSrc, hasOffsets := src.(blockOffsetSource)

	for blk := 0; ; blk++ {
		if _, ok := src.SeekBlock(blk); !ok {
			break
		}
		decoded := false
		for _, initSync := range schedule.InitSync {
			if decoded {
				break
			}
			for _, resync := range schedule.Resync {
				if decoded {
					break
				}
				if _, ok := src.SeekBlock(blk); !ok {
					break
				}
				state := dpll.New(src, nominalCellNS)
				if !state.Reset(initSync, resyncPercent(resync)) {
					continue
				}
				raw := make([]byte, 0, RecordWords)
				first, ok := state.GetByte(0)
				if !ok {
					continue
				}
				raw = append(raw, byte(first&0xff))
				complete := true
				for i := 1; i < RecordWords; i++ {
					val, ok := state.GetByte(i)
					if !ok {
						complete = false
						break
					}
					raw = append(raw, byte(val&0xff))
				}
				if !complete || !CheckCRC(raw) {
					log.Verbose("failed blk %d init sync %d resync %d", blk, initSync, resync)
					continue
				}
				sec := record(raw)
				if note := table.Record(sec); note != "" {
					log.Minimal("%s", note)
				}
				if hasOffsets {
					if slot, skipped := allocator.Slot(IDAddressMark, offsetSrc.BlockStartOffset()); skipped > 3 {
						log.Minimal("blk %d: slot allocator advanced %d slots reaching slot %d", blk, skipped, slot)
					}
				}
				decoded = true
			}
		}
	}
	return table
}
