// Package pipeline drives an engine over a stream of rows.
//
// A Reader yields rows from CSV, JSON Lines or Arrow IPC input. Each row is
// wrapped in an Input envelope, which exposes the row's columns plus the
// synthetic _line and _source fields to the mapping, and hashed into an
// Output envelope whose columns are the input columns followed by one
// column per output group. A Writer serializes the output rows.
//
//	for r.Next() {
//	    in := &Input{Line: n, Source: src, Columns: r.Row()}
//	    ...
//	}
//	if err := r.Err(); err != nil { ... }
package pipeline
