package main

import (
	"fmt"
	"os"

	"github.com/fluxvault/decoder/internal/decode"
	"github.com/fluxvault/decoder/internal/framer"
	"github.com/fluxvault/decoder/internal/hfe"
	"github.com/fluxvault/decoder/internal/kryoflux"
	"github.com/fluxvault/decoder/internal/scp"
	"github.com/spf13/cobra"
)

var (
	decodeOut       string
	decodeCylinders int
	decodeHeads     int
	decodePrefix    string
)

var decodeCmd = &cobra.Command{
	Use:   "decode SOURCE",
	Short: "Decode a KryoFlux stream directory or an SCP trace file into sectors",
	Long: "Decode reads SOURCE (a directory of KryoFlux \"trackNN.S.raw\" stream\n" +
		"files, or a single SuperCard Pro .scp trace file) and writes every\n" +
		"recovered sector, in track/sector order, to the file named by --out as\n" +
		"a flat binary sector dump.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		schedule := framer.Schedule{InitSync: cfg.Retry.InitSync, Resync: cfg.Retry.Resync}

		info, err := os.Stat(source)
		if err != nil {
			return fmt.Errorf("cannot open source: %w", err)
		}

		var disk *decode.Disk
		if info.IsDir() {
			src := kryoflux.NewDirSource(source)
			if decodePrefix != "" {
				src.Prefix = decodePrefix
			}
			disk, err = decode.DecodeDisk(src, decode.Geometry{Cylinders: decodeCylinders, Heads: decodeHeads}, log, schedule)
			if err != nil {
				return err
			}
		} else {
			disk, err = decodeSCPTrace(source, schedule)
			if err != nil {
				return err
			}
		}

		return hfe.WriteIMG(decodeOut, toImageDisk(disk))
	},
}

// decodeSCPTrace decodes every track an SCP trace carries, treating each
// track's first revolution as the single physical block the framer's retry
// loop walks; SCP traces carry no KryoFlux-style per-sector index
// segmentation ahead of decode. framer.DecodeTrack reads one sector record
// per physical block, so at most one sector is recovered per SCP track; the
// rest of the revolution is not read.
func decodeSCPTrace(path string, schedule framer.Schedule) (*decode.Disk, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SCP trace: %w", err)
	}
	trace, err := scp.Parse(raw)
	if err != nil {
		return nil, err
	}

	d := &decode.Disk{}
	for num, track := range trace.Tracks {
		if len(track.Revolution) == 0 {
			continue
		}
		src := scp.NewSource(track.Revolution[0])
		table := framer.DecodeTrack(src, decode.NominalCellNS, log, schedule)
		d.Tracks = append(d.Tracks, &decode.TrackResult{
			Cylinder: num,
			Sectors:  table.Sectors(),
			Missing:  table.Missing(),
		})
	}
	return d, nil
}

// toImageDisk flattens every decoded track's sectors, in ascending ID
// order, into an hfe.Disk whose TrackData fields hold plain sector bytes
// (not an MFM bitstream) keyed by cylinder, one TrackData per cylinder with
// head 0 in Side0 and head 1 in Side1.
func toImageDisk(disk *decode.Disk) *hfe.Disk {
	byCylinder := make(map[int]*hfe.TrackData)
	maxCylinder := -1
	total := 0

	for _, track := range disk.Tracks {
		td, ok := byCylinder[track.Cylinder]
		if !ok {
			td = &hfe.TrackData{}
			byCylinder[track.Cylinder] = td
		}
		if track.Cylinder > maxCylinder {
			maxCylinder = track.Cylinder
		}

		var buf []byte
		for _, sec := range track.Sectors {
			buf = append(buf, sec.Data[:]...)
			total++
		}
		if track.Head == 0 {
			td.Side0 = buf
		} else {
			td.Side1 = buf
		}
		if len(track.Missing) > 0 {
			log.Minimal("track %d/%d: missing sectors %v", track.Cylinder, track.Head, track.Missing)
		}
	}

	img := &hfe.Disk{Tracks: make([]hfe.TrackData, maxCylinder+1)}
	for c, td := range byCylinder {
		img.Tracks[c] = *td
	}
	log.Minimal("wrote %d sectors across %d tracks", total, len(byCylinder))
	return img
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "floppy.img", "output sector dump path")
	decodeCmd.Flags().IntVar(&decodeCylinders, "cylinders", 77, "cylinder count for a stream directory source")
	decodeCmd.Flags().IntVar(&decodeHeads, "heads", 1, "head count for a stream directory source")
	decodeCmd.Flags().StringVar(&decodePrefix, "prefix", "", "stream filename prefix (default \"track\")")
	rootCmd.AddCommand(decodeCmd)
}
