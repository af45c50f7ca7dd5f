// Package engine computes per-row hashes of configured column groups.
//
// An Engine is built from a mapping (see package mapping) and binds it to
// the concrete input and output record shapes on the first row it sees.
// Every row then gets, per group, the digest of the concatenated
// normalized column values written into the group's output field.
//
//	e, err := engine.New(engine.Options{Mapping: "full=first[UT],last[L]"})
//	...
//	written, err := e.ProcessRow(&in, &out, digest.MD5, encode.Hex)
//
// Binding happens once. Feeding rows of a different shape to the same
// engine afterwards is not supported; accessors fail with
// schema.ErrAccessorInvocation or, when names collide, write into the
// wrong field.
package engine
