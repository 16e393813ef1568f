package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := wrapperspb.String("manifest contents")

	data, err := Marshal(in)
	require.NoError(t, err)
	require.Equal(t, proto.Size(in), len(data))

	out := &wrapperspb.StringValue{}
	require.NoError(t, Unmarshal(data, out))
	assert.True(t, proto.Equal(in, out))
}

func TestUnmarshalMalformed(t *testing.T) {
	out := &wrapperspb.StringValue{}
	err := Unmarshal([]byte{0xff, 0xff, 0xff}, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestAppendMessageAppends(t *testing.T) {
	msg := wrapperspb.String("x")
	prefix := []byte{0xde, 0xad}

	out, err := AppendMessage(append([]byte(nil), prefix...), msg, proto.Size(msg))
	require.NoError(t, err)
	assert.Equal(t, prefix, out[:2])

	decoded := &wrapperspb.StringValue{}
	require.NoError(t, Unmarshal(out[2:], decoded))
	assert.Equal(t, "x", decoded.GetValue())
}

// swapFatalf replaces the abort hook with one that records the message
// and panics so the code under test stops, the way the real hook stops
// the process.
func swapFatalf(t *testing.T) *[]string {
	t.Helper()
	var msgs []string
	orig := fatalf
	fatalf = func(format string, args ...any) {
		msgs = append(msgs, fmt.Sprintf(format, args...))
		panic("fatal")
	}
	t.Cleanup(func() { fatalf = orig })
	return &msgs
}

func TestAppendMessageSizeMismatchIsFatal(t *testing.T) {
	msgs := swapFatalf(t)

	// The caller measured one size, marshaling produced another: this
	// must abort, not return an error, because the frame length would
	// no longer match the payload.
	msg := wrapperspb.String("0123456789")
	wrong := proto.Size(msg) + 1

	assert.PanicsWithValue(t, "fatal", func() {
		_, _ = AppendMessage(nil, msg, wrong)
	})
	require.Len(t, *msgs, 1)
	assert.Contains(t, (*msgs)[0], "modified concurrently")
}

func TestByteSizeConsistencyErrorDistinguishesCauses(t *testing.T) {
	msgs := swapFatalf(t)

	assert.PanicsWithValue(t, "fatal", func() {
		byteSizeConsistencyError(10, 11, 10)
	})
	assert.Contains(t, (*msgs)[0], "modified concurrently")

	*msgs = nil
	assert.PanicsWithValue(t, "fatal", func() {
		byteSizeConsistencyError(10, 10, 11)
	})
	assert.Contains(t, (*msgs)[0], "inconsistent")
}
