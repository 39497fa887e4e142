package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackExtractRoundTrip(t *testing.T) {
	for width := 0; width <= 32; width++ {
		for offset := 0; offset <= 63; offset++ {
			recLen := (offset + width + 7) / 8
			if recLen == 0 {
				recLen = 1
			}
			record := make([]byte, recLen)

			var value uint64
			if width > 0 {
				value = (uint64(1)<<uint(width) - 1) ^ 0x5a5a5a5a // arbitrary pattern
				value &= uint64(1)<<uint(width) - 1
			}

			err := Pack(record, offset, width, value)
			require.NoError(t, err)

			got, err := Extract(record, offset, width)
			require.NoError(t, err)
			require.Equal(t, value, got, "width=%d offset=%d", width, offset)
		}
	}
}

func TestExtractMultipleFieldsPacked(t *testing.T) {
	// Three fields: 3 bits, 5 bits, 2 bits, packed with no padding.
	record := make([]byte, 2)
	require.NoError(t, Pack(record, 0, 3, 0b101))
	require.NoError(t, Pack(record, 3, 5, 0b10110))
	require.NoError(t, Pack(record, 8, 2, 0b11))

	v1, err := Extract(record, 0, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(0b101), v1)

	v2, err := Extract(record, 3, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(0b10110), v2)

	v3, err := Extract(record, 8, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(0b11), v3)
}

func TestExtractOverflow(t *testing.T) {
	record := make([]byte, 1)
	_, err := Extract(record, 4, 8)
	require.Error(t, err)
}

func TestBitWidth(t *testing.T) {
	require.Equal(t, 0, BitWidth(0))
	require.Equal(t, 0, BitWidth(1))
	require.Equal(t, 1, BitWidth(2))
	require.Equal(t, 2, BitWidth(3))
	require.Equal(t, 2, BitWidth(4))
	require.Equal(t, 3, BitWidth(5))
}

func TestBitWidthTooLarge(t *testing.T) {
	record := make([]byte, 8)
	_, err := Extract(record, 0, 40)
	require.Error(t, err)
	err = Pack(record, 0, 40, 0)
	require.Error(t, err)
}
