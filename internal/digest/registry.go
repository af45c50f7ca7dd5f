package digest

import (
	"crypto/md5"  //nolint:gosec // legacy row fingerprints, not a security boundary
	"crypto/sha1" //nolint:gosec // legacy row fingerprints, not a security boundary
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"sync"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// ErrAlgorithmUnavailable is returned when no constructor is registered for an algorithm.
var ErrAlgorithmUnavailable = errors.New("digest algorithm unavailable")

// Constructor creates a fresh hash state.
type Constructor func() hash.Hash

var (
	registryMu sync.RWMutex
	registry   = map[Algorithm]Constructor{
		MD5:    md5.New,
		SHA1:   sha1.New,
		SHA256: sha256.New,
		SHA512: sha512.New,
		SHA3_256: func() hash.Hash {
			return sha3.New256()
		},
		BLAKE2b_256: func() hash.Hash {
			h, err := blake2b.New256(nil)
			if err != nil {
				// only a key longer than 64 bytes can fail
				panic(err)
			}

			return h
		},
		BLAKE3: func() hash.Hash {
			return blake3.New()
		},
		XXH3: func() hash.Hash {
			return xxh3.New()
		},
	}
)

// Register installs or replaces the constructor for alg.
func Register(alg Algorithm, fn Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[alg] = fn
}

// Unregister removes the constructor for alg, returning the previous one (if any).
func Unregister(alg Algorithm) Constructor {
	registryMu.Lock()
	defer registryMu.Unlock()

	prev := registry[alg]
	delete(registry, alg)

	return prev
}

// Available reports whether alg currently has a constructor.
func Available(alg Algorithm) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry[alg] != nil
}

// New returns a fresh hash state for alg.
func New(alg Algorithm) (hash.Hash, error) {
	registryMu.RLock()
	fn := registry[alg]
	registryMu.RUnlock()

	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmUnavailable, alg)
	}

	return fn(), nil
}

// Sum computes the digest of data with alg.
func Sum(alg Algorithm, data []byte) ([]byte, error) {
	h, err := New(alg)
	if err != nil {
		return nil, err
	}

	_, _ = h.Write(data) // hash.Hash.Write never returns an error

	return h.Sum(nil), nil
}
