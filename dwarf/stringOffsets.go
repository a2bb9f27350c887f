package dwarf

import (
	"debug/elf"
	"errors"
	"fmt"
)

const supportedStringOffsetsVersion = 5

var ErrUnsupportedFormat = errors.New("dwarf: unsupported format")

type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("DWARF version %d is not supported, expected %d", e.Version, supportedStringOffsetsVersion)
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// StringOffsetTable maps string indices (DW_FORM_strx) onto offsets into the
// string section.
type StringOffsetTable struct {
	Header  UnitHeader
	offsets []uint64
}

// DecodeStringOffsetTable decodes one .debug_str_offsets contribution. Only
// version 5 units are understood; anything else fails before an offset is read.
func DecodeStringOffsetTable(r SectionReader) (*StringOffsetTable, error) {
	header, err := r.ReadUnitHeader()
	if err != nil {
		return nil, err
	}
	if header.Version != supportedStringOffsetsVersion {
		return nil, &UnsupportedVersionError{Version: header.Version}
	}

	// padding
	if _, err := r.Read16(); err != nil {
		return nil, err
	}

	offsets := []uint64{}
	for r.Offset() < header.End {
		offset, err := r.ReadOffset()
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, offset)
	}

	return &StringOffsetTable{Header: header, offsets: offsets}, nil
}

// Get returns the string section offset stored at index.
func (t *StringOffsetTable) Get(index int) (uint64, bool) {
	if t == nil || index < 0 || index >= len(t.offsets) {
		return 0, false
	}
	return t.offsets[index], true
}

func (t *StringOffsetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.offsets)
}

// LoadStringOffsets reads and decodes the .debug_str_offsets section of an
// ELF file.
func LoadStringOffsets(path string) (*StringOffsetTable, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	section := f.Section(".debug_str_offsets")
	if section == nil {
		return nil, fmt.Errorf("%s: no .debug_str_offsets section", path)
	}

	data, err := section.Data()
	if err != nil {
		return nil, fmt.Errorf("%s: could not read .debug_str_offsets: %w", path, err)
	}

	return DecodeStringOffsetTable(NewSectionReader(data, f.ByteOrder))
}
