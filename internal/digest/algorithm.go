package digest

import (
	"strings"

	"row-hasher/internal/common"
)

// Algorithm identifies a digest function.
type Algorithm int

const (
	MD5 Algorithm = iota // default for unrecognized names
	SHA1
	SHA256
	SHA512
	SHA3_256
	BLAKE2b_256
	BLAKE3
	XXH3

	algorithmTotal = int(iota)
)

var algorithmNames = [algorithmTotal]string{
	MD5:         "MD5",
	SHA1:        "SHA1",
	SHA256:      "SHA256",
	SHA512:      "SHA512",
	SHA3_256:    "SHA3_256",
	BLAKE2b_256: "BLAKE2B_256",
	BLAKE3:      "BLAKE3",
	XXH3:        "XXH3",
}

// the names the JVM-era tooling printed for the same algorithms
var algorithmTexts = [algorithmTotal]string{
	MD5:         "MD5",
	SHA1:        "SHA-1",
	SHA256:      "SHA-256",
	SHA512:      "SHA-512",
	SHA3_256:    "SHA3-256",
	BLAKE2b_256: "BLAKE2b-256",
	BLAKE3:      "BLAKE3",
	XXH3:        "XXH3",
}

// String returns the canonical identifier, e.g. "SHA256".
func (a Algorithm) String() string {
	if !a.IsValid() {
		return common.UnknownStr
	}

	return algorithmNames[a]
}

// Text returns the dashed display name, e.g. "SHA-256".
func (a Algorithm) Text() string {
	if !a.IsValid() {
		return common.UnknownStr
	}

	return algorithmTexts[a]
}

// IsValid reports whether a is one of the declared algorithms.
func (a Algorithm) IsValid() bool {
	return common.IsInRange(0, int(a), algorithmTotal-1)
}

// Algorithms lists every declared algorithm in declaration order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, algorithmTotal)
	for i := range out {
		out[i] = Algorithm(i)
	}

	return out
}

// ParseAlgorithm resolves a name such as "sha-256", "SHA256" or "SHA3_256".
// Matching ignores case, '-', '_' and '/'. Unrecognized names resolve to MD5.
func ParseAlgorithm(name string) Algorithm {
	a, _ := LookupAlgorithm(name)

	return a
}

// LookupAlgorithm is ParseAlgorithm that also reports whether name was recognized.
func LookupAlgorithm(name string) (Algorithm, bool) {
	key := squash(name)
	if key == "" {
		return MD5, false
	}

	for i := range algorithmTotal {
		if squash(algorithmNames[i]) == key || squash(algorithmTexts[i]) == key {
			return Algorithm(i), true
		}
	}

	return MD5, false
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/', ' ':
			return -1
		}

		return r
	}, strings.ToUpper(strings.TrimSpace(s)))
}
