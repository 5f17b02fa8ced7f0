package merkle

import (
	"fmt"
	"unicode/utf16"
)

// DigestWidth is the number of hex characters in every Digest.
const DigestWidth = 8

// FNV-1a 32 bit parameters.
const (
	offsetBasis uint32 = 0x811c9dc5
	prime       uint32 = 0x01000193
)

// Digest is a fixed width lowercase hex string produced by Hash. It is NOT
// a cryptographic hash. It exists so the same labels always render the same
// tree, run after run.
type Digest string

// String implements the Stringer interface.
func (d Digest) String() string {
	return string(d)
}

// Short returns the first n characters of the digest for compact display.
func (d Digest) Short(n int) string {
	if n <= 0 || n >= len(d) {
		return string(d)
	}
	return string(d[:n])
}

// Hash folds the input with FNV-1a over its UTF-16 code units and finishes
// with a 16 bit avalanche mix. Every string, including the empty string,
// has a digest.
func Hash(input string) Digest {
	acc := offsetBasis
	for _, c := range utf16.Encode([]rune(input)) {
		acc ^= uint32(c)
		acc *= prime
	}
	acc ^= acc >> 16

	return Digest(fmt.Sprintf("%0*x", DigestWidth, acc))
}

// Combine produces the parent digest for the two child digests by hashing
// their string concatenation. Combine(a, b) and Combine(b, a) differ in
// general.
func Combine(left Digest, right Digest) Digest {
	return Hash(string(left) + string(right))
}
