package dwarf_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/c64tools/asmlens/dwarf"
)

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func stringOffsetsSection(order byteOrder, version uint16, offsets []uint32) []byte {
	data := []byte{}
	data = order.AppendUint32(data, uint32(4+4*len(offsets)))
	data = order.AppendUint16(data, version)
	data = order.AppendUint16(data, 0)
	for _, o := range offsets {
		data = order.AppendUint32(data, o)
	}
	return data
}

func TestDecodeStringOffsetTable(t *testing.T) {
	for _, order := range []byteOrder{binary.LittleEndian, binary.BigEndian} {
		data := stringOffsetsSection(order, 5, []uint32{0, 7, 0x1234})
		table, err := dwarf.DecodeStringOffsetTable(dwarf.NewSectionReader(data, order))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if table.Len() != 3 {
			t.Fatalf("Expected 3 offsets, got %d", table.Len())
		}
		for i, expected := range []uint64{0, 7, 0x1234} {
			if v, ok := table.Get(i); !ok || v != expected {
				t.Errorf("Expected offset %d to be 0x%x, got 0x%x", i, expected, v)
			}
		}
		if _, ok := table.Get(3); ok {
			t.Errorf("Expected index 3 to be out of range")
		}
	}
}

func TestDecodeStringOffsetTable64(t *testing.T) {
	order := binary.LittleEndian
	data := order.AppendUint32(nil, 0xFFFFFFFF)
	data = order.AppendUint64(data, 4+2*8)
	data = order.AppendUint16(data, 5)
	data = order.AppendUint16(data, 0)
	data = order.AppendUint64(data, 0x100000000)
	data = order.AppendUint64(data, 42)

	table, err := dwarf.DecodeStringOffsetTable(dwarf.NewSectionReader(data, order))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if table.Header.Format != dwarf.Format64 {
		t.Errorf("Expected 64-bit format")
	}
	if v, _ := table.Get(0); v != 0x100000000 {
		t.Errorf("Expected offset 0x100000000, got 0x%x", v)
	}
	if v, _ := table.Get(1); v != 42 {
		t.Errorf("Expected offset 42, got %d", v)
	}
}

// countingReader fails the test if an offset is read.
type countingReader struct {
	t       *testing.T
	version uint16
}

func (r *countingReader) ReadUnitHeader() (dwarf.UnitHeader, error) {
	return dwarf.UnitHeader{UnitLength: 8, Format: dwarf.Format32, Version: r.version, End: 12}, nil
}

func (r *countingReader) Read16() (uint16, error) {
	r.t.Errorf("Expected no padding read for an unsupported version")
	return 0, nil
}

func (r *countingReader) ReadOffset() (uint64, error) {
	r.t.Errorf("Expected no offsets to be read for an unsupported version")
	return 0, nil
}

func (r *countingReader) Offset() int {
	return 4
}

func TestUnsupportedVersion(t *testing.T) {
	table, err := dwarf.DecodeStringOffsetTable(&countingReader{t: t, version: 4})
	if table != nil {
		t.Errorf("Expected no table")
	}
	if !errors.Is(err, dwarf.ErrUnsupportedFormat) {
		t.Fatalf("Expected unsupported format error, got %v", err)
	}

	var versionErr *dwarf.UnsupportedVersionError
	if !errors.As(err, &versionErr) || versionErr.Version != 4 {
		t.Errorf("Expected version 4 in the error, got %v", err)
	}
}

func TestTruncatedSection(t *testing.T) {
	data := stringOffsetsSection(binary.LittleEndian, 5, []uint32{1, 2})
	_, err := dwarf.DecodeStringOffsetTable(dwarf.NewSectionReader(data[:len(data)-2], binary.LittleEndian))
	if !errors.Is(err, dwarf.ErrTruncated) {
		t.Errorf("Expected truncation error, got %v", err)
	}
}
