// Package bitpack implements the non-byte-aligned bit extraction and
// packing primitives the index codec (§4.4) needs, with no textual
// bit-string intermediate (§9): locate the starting byte, load up to
// five consecutive bytes into a 64-bit accumulator, shift, and mask.
package bitpack

import "github.com/qvdfile/qvd/errs"

// MaxWidth is the largest bit width a single field may occupy. §4.4
// only defines codes up to 32 bits; wider fields are rejected as
// malformed rather than silently truncated.
const MaxWidth = 32

// Extract reads width bits starting at bitOffset (LSB of byte 0 is bit
// 0) from record and returns them as an unsigned integer. record must
// be long enough that byte (bitOffset+width-1)/8 is a valid index.
func Extract(record []byte, bitOffset, width int) (uint64, error) {
	if width == 0 {
		return 0, nil
	}
	if width > MaxWidth {
		return 0, errs.ErrBitWidthTooLarge
	}

	startByte := bitOffset / 8
	shift := bitOffset % 8
	if (bitOffset+width+7)/8 > len(record) {
		return 0, errs.ErrBitRangeOverflow
	}

	var acc uint64
	// Up to 5 bytes cover any width<=32 bits starting at any shift in [0,7].
	end := startByte + 5
	if end > len(record) {
		end = len(record)
	}
	for i := end - 1; i >= startByte; i-- {
		acc = acc<<8 | uint64(record[i])
	}

	acc >>= uint(shift) //nolint:gosec
	mask := uint64(1)<<uint(width) - 1

	return acc & mask, nil
}

// Pack writes the low width bits of value into record at bitOffset,
// leaving all other bits of record untouched. record must already be
// sized to hold the full field range and zero-filled where Pack has
// not yet written (§4.4 "trailing bits of the final byte are
// zero-filled").
func Pack(record []byte, bitOffset, width int, value uint64) error {
	if width == 0 {
		return nil
	}
	if width > MaxWidth {
		return errs.ErrBitWidthTooLarge
	}

	startByte := bitOffset / 8
	shift := bitOffset % 8
	if (bitOffset+width+7)/8 > len(record) {
		return errs.ErrBitRangeOverflow
	}

	mask := uint64(1)<<uint(width) - 1
	value &= mask
	shifted := value << uint(shift) //nolint:gosec

	// The value (after shifting) may straddle up to 5 bytes.
	nBytes := (shift + width + 7) / 8
	for i := 0; i < nBytes; i++ {
		record[startByte+i] |= byte(shifted >> uint(8*i))
	}

	return nil
}

// BitWidth returns the number of bits needed to represent n distinct
// codes (ceil(log2(n))), per §4.4's write-side layout computation. It
// returns 0 for n<=1.
func BitWidth(n int) int {
	if n <= 1 {
		return 0
	}
	w := 0
	for (1 << uint(w)) < n {
		w++
	}

	return w
}
