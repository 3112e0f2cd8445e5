// Package vbmeta provides structural access to vbmeta images: the header,
// the location of the descriptor table, and lookups over the parsed
// descriptors.
//
// Structural means no trust decisions are made here. The package checks
// magic, alignment, and extents so the descriptor table can be located
// safely. Verifying the image's signature and hash, and deciding what a
// verification failure means for boot, belongs to the caller.
//
// Images can be parsed from an in-memory buffer:
//
//	img, err := vbmeta.Parse(data)
//
// or memory-mapped read-only from disk:
//
//	f, err := vbmeta.Open("vbmeta.img", vbmeta.OpenOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	descs, err := f.Image().Descriptors()
//
// Descriptor views alias the mapped region and are invalid after Close.
package vbmeta
