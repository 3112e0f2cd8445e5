// Package descriptor parses the typed, variable-length records embedded in a
// vbmeta image's descriptor table.
//
// # Overview
//
// A descriptor is a fixed-size big-endian header followed by a variable-length
// body. The input is untrusted: it may come from a tampered or corrupted
// image, so every parse is total: for any byte sequence the package returns
// one of the typed errors below instead of panicking or reading out of
// bounds.
//
// # Key Types
//
//   - Property: a key/value pair baked into the image
//   - Hash: a partition verified by a single digest over the whole image
//   - Hashtree: a partition verified on demand through a dm-verity tree
//   - KernelCmdline: a kernel command line fragment
//   - ChainPartition: verification delegated to a key in another partition
//   - Unknown: an unrecognized tag, preserved so callers can skip it
//
// # Zero-copy views
//
// All variable-length fields in a parsed view alias the input buffer; nothing
// is copied. A view is only valid while the buffer it was parsed from remains
// live and unmodified. Concurrent parsing of shared read-only buffers is
// safe.
//
// # Parsing
//
// Each variant has a constructor taking the raw descriptor range (header
// through body, no surrounding envelope):
//
//	prop, err := descriptor.ParseProperty(raw)
//	if err != nil {
//	    // errors.Is against ErrInvalidHeader, ErrInvalidSize, ...
//	}
//	fmt.Println(prop.Key, prop.Value())
//
// All walks a whole descriptor table, dispatching on each record's tag:
//
//	descs, err := descriptor.All(table)
//
// Headers are only trusted after the validate-and-byteswap routine bound to
// the header's type has approved them; the variant layer still re-checks
// cheap terminal invariants such as NUL termination.
package descriptor
