package dwarf

import (
	"encoding/binary"
	"errors"
)

// Format is the offset size of a DWARF unit.
type Format int

const (
	Format32 Format = 4
	Format64 Format = 8
)

// UnitHeader is the common prefix of a DWARF unit.
type UnitHeader struct {
	UnitLength uint64
	Format     Format
	Version    uint16
	End        int // offset just past the unit
}

// SectionReader is the set of primitives the table decoders consume.
type SectionReader interface {
	ReadUnitHeader() (UnitHeader, error)
	Read16() (uint16, error)
	// ReadOffset reads a 4 or 8 byte offset, as selected by the last unit header.
	ReadOffset() (uint64, error)
	Offset() int
}

var ErrTruncated = errors.New("dwarf: section data truncated")

type byteReader struct {
	data   []byte
	order  binary.ByteOrder
	ofs    int
	format Format
}

// NewSectionReader reads DWARF primitives from the raw contents of a section.
func NewSectionReader(data []byte, order binary.ByteOrder) SectionReader {
	return &byteReader{data: data, order: order, format: Format32}
}

func (r *byteReader) Offset() int {
	return r.ofs
}

func (r *byteReader) take(n int) ([]byte, error) {
	if r.ofs+n > len(r.data) {
		return nil, ErrTruncated
	}
	b := r.data[r.ofs : r.ofs+n]
	r.ofs += n
	return b, nil
}

func (r *byteReader) Read16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *byteReader) read32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *byteReader) read64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

func (r *byteReader) ReadOffset() (uint64, error) {
	if r.format == Format64 {
		return r.read64()
	}
	v, err := r.read32()
	return uint64(v), err
}

func (r *byteReader) ReadUnitHeader() (UnitHeader, error) {
	header := UnitHeader{Format: Format32}

	length, err := r.read32()
	if err != nil {
		return header, err
	}
	if length == 0xFFFFFFFF {
		// 64-bit DWARF, the real length follows
		header.Format = Format64
		header.UnitLength, err = r.read64()
		if err != nil {
			return header, err
		}
	} else {
		header.UnitLength = uint64(length)
	}
	r.format = header.Format

	// the unit length counts everything after the length field
	header.End = r.ofs + int(header.UnitLength)
	if header.End > len(r.data) || header.End < r.ofs {
		return header, ErrTruncated
	}

	header.Version, err = r.Read16()
	return header, err
}
