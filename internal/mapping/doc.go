// Package mapping parses the hash mapping language into an ordered set of
// output groups.
//
// # Syntax
//
// A mapping is a ';' separated list of group definitions. Each definition
// names the output field that receives the digest and the ordered input
// columns that feed it:
//
//	full=first[UT],last[L]; key=id
//
// Whitespace around ';', '=' and ',' is ignored. A trailing ';' is allowed.
//
// # Flags
//
// A column may carry a bracketed, case-insensitive flag list:
//
//   - T: trim leading and trailing whitespace
//   - C: keep the value's case (explicit no-op)
//   - U: upper-case the value
//   - L: lower-case the value
//
// Case flags are checked in the order C, U, L and each one present
// overrides the previous, so "[UL]" lower-cases and "[CU]" upper-cases.
// Case is applied before trimming. Unknown letters are ignored.
//
// # Keys
//
// When the mapping is case-insensitive, group names are folded to upper case
// for lookup while the declared spelling is kept for display. A group
// declared twice keeps its first position and takes the columns of the last
// declaration; a warning is recorded in the configuration's diagnostics.
package mapping
