// Package pbutil persists protobuf messages to paths with crash-safe
// publish semantics.
//
// Two on-disk forms are supported. A single-message file holds the raw
// wire encoding of one message with no framing at all. A container file
// (see the codec and container packages) holds a magic+version header
// followed by length-prefixed, checksummed records.
//
// All writes go through the same atomic protocol: the content is
// written to a uniquely named temp file in the target's directory,
// optionally synced, closed, and renamed onto the final path. A reader
// therefore never observes a torn file: the path either has its prior
// content or the complete new content. When durability is requested the
// temp file's data and the directory's metadata are both synced, so the
// publish survives a crash.
//
// Writers targeting the same path must be serialized by the caller;
// concurrent writers each succeed independently and the last rename
// wins. Readers need no coordination.
package pbutil
