// Package diagnostic collects the non-fatal findings produced while a hash
// mapping is parsed and bound to concrete records.
//
// Typical findings:
//   - a group key declared twice in one mapping (last declaration wins)
//   - an input column skipped because it is missing and ignore mode is on
//   - an output group skipped because the output record has no such field
//   - a dynamic bag that contributed no columns
package diagnostic
