// Package container provides sequential writers and readers for
// protobuf container files.
//
// A Writer appends a header followed by record frames to an open file;
// a Reader replays them from offset zero, validating the header and
// every frame checksum as it goes. Both are bound to a single open file
// handle for their whole lifetime: Init must be called exactly once
// before any append or read, and Close is idempotent and terminal.
//
// Neither type performs any internal locking. A single instance must
// not be used from multiple goroutines; distinct readers over the same
// published file are safe because published files are never mutated in
// place, only wholesale replaced by an atomic rename.
//
// The clean end of a container is reported as io.EOF, distinct from
// every failure. A file that ends in the middle of a frame is reported
// as corruption, never as end of file.
package container
