package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjordstone/pbfile/pkg/fault"
)

func TestEncodeHeaderLayout(t *testing.T) {
	header := EncodeHeader("kudukudu")

	require.Len(t, header, HeaderLength)
	assert.Equal(t, []byte("kudukudu"), header[:MagicLength])
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, header[MagicLength:])
}

func TestEncodeHeaderBadMagicLengthPanics(t *testing.T) {
	assert.Panics(t, func() { EncodeHeader("short") })
	assert.Panics(t, func() { EncodeHeader("toolongmagicnum") })
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  []byte
		magic   string
		wantErr error
	}{
		{
			name:   "valid header",
			header: EncodeHeader("kudukudu"),
			magic:  "kudukudu",
		},
		{
			name:    "magic mismatch",
			header:  EncodeHeader("kudukudu"),
			magic:   "somefile",
			wantErr: fault.ErrCorruption,
		},
		{
			name:    "unsupported version",
			header:  append([]byte("kudukudu"), 0x02, 0x00, 0x00, 0x00),
			magic:   "kudukudu",
			wantErr: fault.ErrNotSupported,
		},
		{
			name:    "truncated header",
			header:  EncodeHeader("kudukudu")[:7],
			magic:   "kudukudu",
			wantErr: fault.ErrCorruption,
		},
		{
			name:    "empty header",
			header:  nil,
			magic:   "kudukudu",
			wantErr: fault.ErrCorruption,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := DecodeHeader(tc.header, tc.magic)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDecodeHeaderMismatchReportsBothMagics(t *testing.T) {
	err := DecodeHeader(EncodeHeader("kudukudu"), "somefile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"somefile"`)
	assert.Contains(t, err.Error(), `"kudukudu"`)
}

func TestDecodeHeaderVersionCheckedAfterMagic(t *testing.T) {
	// A wrong magic wins over a wrong version: the file is not ours at all.
	header := append([]byte("othermgc"), 0x02, 0x00, 0x00, 0x00)
	err := DecodeHeader(header, "kudukudu")
	assert.ErrorIs(t, err, fault.ErrCorruption)
}

func TestParseHeader(t *testing.T) {
	magic, version, err := ParseHeader(EncodeHeader("kudukudu"))
	require.NoError(t, err)
	assert.Equal(t, []byte("kudukudu"), magic)
	assert.Equal(t, uint32(1), version)

	_, _, err = ParseHeader([]byte("tiny"))
	assert.ErrorIs(t, err, fault.ErrCorruption)
}
