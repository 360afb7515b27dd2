package hfe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteIMGFlatSectorDump(t *testing.T) {
	disk := &Disk{
		Tracks: []TrackData{
			{Side0: []byte{0x01, 0x02, 0x03}},
			{Side0: []byte{0x04, 0x05}, Side1: []byte{0x06, 0x07}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.img")
	if err := WriteIMG(path, disk); err != nil {
		t.Fatalf("WriteIMG() error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back %s: %v", path, err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	if len(got) != len(want) {
		t.Fatalf("wrote %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = 0x%02x, want 0x%02x", i, got[i], want[i])
		}
	}
}

func TestWriteIMGSkipsEmptySide1(t *testing.T) {
	disk := &Disk{Tracks: []TrackData{{Side0: []byte{0xaa, 0xbb}}}}
	path := filepath.Join(t.TempDir(), "out.img")
	if err := WriteIMG(path, disk); err != nil {
		t.Fatalf("WriteIMG() error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back %s: %v", path, err)
	}
	if len(got) != 2 {
		t.Errorf("got %d bytes, want 2 (no side-1 padding)", len(got))
	}
}

func TestReadIMGUnimplemented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.img")
	if err := os.WriteFile(path, []byte{0x00}, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := ReadIMG(path); err == nil {
		t.Error("ReadIMG() expected an error (no externally-supplied geometry), got nil")
	}
}
