package encode_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"row-hasher/internal/encode"
)

func Example() {
	digest := []byte{0xde, 0xad, 0xbe, 0xef}

	fmt.Println(encode.Hex.Encode(digest))
	fmt.Println(encode.Base64.Encode(digest))
	fmt.Println(encode.ParseEncoding("hex"), encode.ParseEncoding("nope"))
	// Output:
	// deadbeef
	// 3q2+7w==
	// HEX PLAIN
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "abc", encode.Plain.Encode([]byte("abc")))
	assert.Equal(t, "a\uFFFD\uFFFDb", encode.Plain.Encode([]byte{'a', 0xff, 0xfe, 'b'}))
	assert.Equal(t, "", encode.Plain.Encode(nil))
	assert.Equal(t, "abc", encode.Encoding(42).Encode([]byte("abc")))
}

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		input string
		want  encode.Encoding
		known bool
	}{
		{"HEX", encode.Hex, true},
		{" base64 ", encode.Base64, true},
		{"plain", encode.Plain, true},
		{"", encode.Plain, false},
		{"base32", encode.Plain, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := encode.LookupEncoding(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestEncodingString(t *testing.T) {
	for _, e := range encode.Encodings() {
		assert.Equal(t, e, encode.ParseEncoding(e.String()))
	}

	assert.Equal(t, "unknown", encode.Encoding(-3).String())
}
