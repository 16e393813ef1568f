package codec

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "pbfile").Logger()

// fatalf terminates the process. Swapped out in tests.
var fatalf = func(format string, args ...any) {
	logger.Fatal().Msgf(format, args...)
}

// Marshal encodes msg to its wire form. Messages with unset required
// fields are rejected by the protobuf runtime.
func Marshal(msg proto.Message) ([]byte, error) {
	return AppendMessage(nil, msg, proto.Size(msg))
}

// AppendMessage appends msg's wire encoding to dst. size must be a
// proto.Size measurement taken by the caller before encoding; if
// marshaling produces a different number of bytes the on-disk data can
// no longer be trusted to represent any coherent message state, so the
// process is aborted rather than returning an error.
func AppendMessage(dst []byte, msg proto.Message, size int) ([]byte, error) {
	out, err := proto.MarshalOptions{}.MarshalAppend(dst, msg)
	if err != nil {
		return dst, err
	}
	if produced := len(out) - len(dst); produced != size {
		byteSizeConsistencyError(size, proto.Size(msg), produced)
	}
	return out, nil
}

// Unmarshal decodes wire bytes into msg.
func Unmarshal(b []byte, msg proto.Message) error {
	if err := proto.Unmarshal(b, msg); err != nil {
		return fmt.Errorf("parsing %s message: %w", msg.ProtoReflect().Descriptor().FullName(), err)
	}
	return nil
}

// byteSizeConsistencyError reports a mismatch between the byte size
// measured before marshaling and the bytes actually produced. It tries
// to distinguish concurrent modification of the message from an encoder
// bug, then aborts the process either way.
func byteSizeConsistencyError(sizeBefore, sizeAfter, produced int) {
	if sizeBefore != sizeAfter {
		fatalf("message was modified concurrently during marshaling: size was %d bytes, is now %d bytes",
			sizeBefore, sizeAfter)
		return
	}
	fatalf("byte size calculation and marshaling were inconsistent: calculated %d bytes, produced %d bytes; "+
		"this may indicate a bug in the protobuf runtime or concurrent modification of the message",
		sizeBefore, produced)
}
