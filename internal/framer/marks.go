package framer

// Address-mark constants for the ZDS FM 500kbps profile: clock bits packed
// in the high byte, data bits in the low byte, as stored in format_t's
// indexAM/idAM/dataAM/deletedAM fields.
const (
	IndexAM   = 0x28fc
	IDAM      = 0x38fe
	DataAM    = 0x38fb
	DeletedAM = 0x38f8
)

// SectorSize is the ZDS FM logical sector payload: 128 bytes.
const SectorSize = 128

// RecordWords is the full on-disk record read per sync: 2 header words
// (sector, track), 128 data words, 4 chain words (fsector/ftrack, bsector/
// btrack), 2 CRC words — matches flux2track's data[2+128+4+2] buffer.
const RecordWords = 2 + SectorSize + 4 + 2

// MaxSector bounds the ZDS sector-id field, matching MAX_SECTOR.
const MaxSector = 31

// state names the byte-framer's conceptual stage within one sync attempt.
// The ZDS profile collapses EXPECT_ID/READ_ID/EXPECT_DATA/READ_DATA into one
// fixed-length record read once sync locks (the original's "simplification,
// as markers are not used for ZDS disks"), but the stages are still named so
// the retry/error reporting can say where a read failed.
type state int

const (
	SeekSync state = iota
	ExpectID
	ReadID
	ExpectData
	ReadData
)

func (s state) String() string {
	switch s {
	case SeekSync:
		return "seek_sync"
	case ExpectID:
		return "expect_id"
	case ReadID:
		return "read_id"
	case ExpectData:
		return "expect_data"
	case ReadData:
		return "read_data"
	default:
		return "unknown"
	}
}
