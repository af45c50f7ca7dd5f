// Package encode turns raw digest bytes into printable text.
package encode

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"row-hasher/internal/common"
)

// Encoding selects how digest bytes are rendered.
type Encoding int

const (
	// Plain reinterprets the bytes as UTF-8 text. Invalid sequences become
	// U+FFFD, so the result cannot be decoded back to the digest.
	Plain Encoding = iota
	// Hex is lowercase, two digits per byte.
	Hex
	// Base64 uses the standard alphabet with padding.
	Base64

	encodingTotal = int(iota)
)

var encodingNames = [encodingTotal]string{
	Plain:  "PLAIN",
	Hex:    "HEX",
	Base64: "BASE64",
}

var encoders = [encodingTotal]func([]byte) string{
	Plain:  plain,
	Hex:    hex.EncodeToString,
	Base64: base64.StdEncoding.EncodeToString,
}

func (e Encoding) String() string {
	if !common.IsInRange(0, int(e), encodingTotal-1) {
		return common.UnknownStr
	}

	return encodingNames[e]
}

// Encode renders b. Out-of-range encodings fall back to Plain.
func (e Encoding) Encode(b []byte) string {
	if !common.IsInRange(0, int(e), encodingTotal-1) {
		return plain(b)
	}

	return encoders[e](b)
}

// Encodings lists every declared encoding.
func Encodings() []Encoding {
	return []Encoding{Plain, Hex, Base64}
}

// ParseEncoding resolves a case-insensitive name. Unrecognized names resolve to Plain.
func ParseEncoding(name string) Encoding {
	e, _ := LookupEncoding(name)

	return e
}

// LookupEncoding is ParseEncoding that also reports whether name was recognized.
func LookupEncoding(name string) (Encoding, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))

	for i, n := range encodingNames {
		if n == name {
			return Encoding(i), true
		}
	}

	return Plain, false
}

// plain replaces every byte that is not part of a valid sequence with U+FFFD.
func plain(b []byte) string {
	var sb strings.Builder

	sb.Grow(len(b))

	for _, r := range string(b) {
		sb.WriteRune(r)
	}

	return sb.String()
}
