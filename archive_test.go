package pixelpipe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func TestArchive_RoundTrip(t *testing.T) {
	src := randomFrame(50)
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		if err := WriteArchive(&buf, src, compress); err != nil {
			t.Fatalf("compress=%v: %v", compress, err)
		}
		if compress != bytes.HasPrefix(buf.Bytes(), zstdMagic) {
			t.Fatalf("compress=%v: unexpected framing", compress)
		}
		got, err := ReadArchive(&buf)
		if err != nil {
			t.Fatalf("compress=%v: %v", compress, err)
		}
		if *got != *src {
			t.Fatalf("compress=%v: archive round trip changed the frame", compress)
		}
	}
}

func TestArchive_CompressesUniformFrames(t *testing.T) {
	var plain, packed bytes.Buffer
	if err := WriteArchive(&plain, Fill(0x07E0), false); err != nil {
		t.Fatal(err)
	}
	if err := WriteArchive(&packed, Fill(0x07E0), true); err != nil {
		t.Fatal(err)
	}
	if packed.Len() >= plain.Len() {
		t.Fatalf("expected compressed archive to be smaller: %d >= %d", packed.Len(), plain.Len())
	}
}

func TestArchive_Rejects(t *testing.T) {
	tests := []struct {
		name string
		rec  frameRecord
	}{
		{"size", frameRecord{Width: 640, Height: 480, Format: archiveFormat, Pixels: make([]uint16, FrameSize)}},
		{"format", frameRecord{Width: Width, Height: Height, Format: "rgb888", Pixels: make([]uint16, FrameSize)}},
		{"pixels", frameRecord{Width: Width, Height: Height, Format: archiveFormat, Pixels: make([]uint16, 10)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := cbor.Marshal(tc.rec)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := ReadArchive(bytes.NewReader(data)); !errors.Is(err, ErrBadArchive) {
				t.Fatalf("expected ErrBadArchive, got %v", err)
			}
		})
	}

	if _, err := ReadArchive(bytes.NewReader([]byte("not cbor at all"))); !errors.Is(err, ErrBadArchive) {
		t.Fatalf("expected ErrBadArchive for garbage, got %v", err)
	}
}
