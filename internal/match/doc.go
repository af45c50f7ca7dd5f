// Package match provides the name folding rules shared by the mapping parser
// and the schema resolver, plus edit-distance helpers used to suggest the
// closest known field when a configured column cannot be found.
//
// Key functions:
//   - Key: folds a field or group name into its lookup key
//   - Fold: loose identifier form used for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against a missing one
package match
