// Package digest maps algorithm identifiers to hash.Hash constructors.
//
// The built-in table covers the legacy MD5/SHA family plus SHA3-256,
// BLAKE2b-256, BLAKE3 and XXH3. Entries may be replaced or removed at
// runtime with Register and Unregister; computing a digest for an
// algorithm with no registered constructor fails with
// ErrAlgorithmUnavailable rather than falling back to another algorithm.
package digest
