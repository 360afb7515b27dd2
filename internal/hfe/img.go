package hfe

import (
	"fmt"
	"os"
)

// ReadIMG does not read IMG or IMA files: it always returns an error.
// IMG carries no header: a bare file offers no way to recover track/side
// boundaries without externally-supplied geometry, and ReadIMG takes none
// rather than guessing a geometry the caller never gave it.
func ReadIMG(filename string) (*Disk, error) {
	return nil, fmt.Errorf("IMG format not yet implemented: requires externally-supplied geometry")
}

// WriteIMG writes a Disk structure to an IMG or IMA format file: a flat,
// unencoded sector dump, track by track, side 0 before side 1.
func WriteIMG(filename string, disk *Disk) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	for i, track := range disk.Tracks {
		if _, err := file.Write(track.Side0); err != nil {
			return fmt.Errorf("failed to write track %d side 0: %w", i, err)
		}
		if len(track.Side1) > 0 {
			if _, err := file.Write(track.Side1); err != nil {
				return fmt.Errorf("failed to write track %d side 1: %w", i, err)
			}
		}
	}
	return nil
}
