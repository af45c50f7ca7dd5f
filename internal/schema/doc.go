// Package schema resolves field names to read/write accessors over records
// whose shape is only known at runtime.
//
// A record is either a struct (or pointer to one) or a DynamicBag. Struct
// fields are addressed by name, or by the name given in a `rowhash:"..."`
// tag. A struct field holding a DynamicBag is not itself addressable;
// instead each column of the bag becomes a top-level accessor, so a record
// with a bag member carrying columns x and y exposes x and y directly.
//
// Resolution looks at one concrete record instance, because the column list
// of a bag is only known per instance. The resulting Table is meant to be
// reused for every record of the same shape.
package schema
