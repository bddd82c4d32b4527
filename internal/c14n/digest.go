package c14n

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Digest algorithms.
const (
	BLAKE3 = "blake3"
	SHA256 = "sha256"
)

// Digest is a content hash of a canonical form.
type Digest struct {
	Algorithm string
	Sum       []byte
}

// Sum hashes data with the named algorithm.
func Sum(algorithm string, data []byte) (Digest, error) {
	switch algorithm {
	case BLAKE3, "":
		s := blake3.Sum256(data)
		return Digest{Algorithm: BLAKE3, Sum: s[:]}, nil
	case SHA256:
		s := sha256.Sum256(data)
		return Digest{Algorithm: SHA256, Sum: s[:]}, nil
	}
	return Digest{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

// Hex returns the hex-encoded sum.
func (d Digest) Hex() string { return hex.EncodeToString(d.Sum) }

// String renders the digest as algorithm:hex.
func (d Digest) String() string { return d.Algorithm + ":" + d.Hex() }

// IsZero reports whether d holds no sum.
func (d Digest) IsZero() bool { return len(d.Sum) == 0 }

func (d Digest) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Digest) UnmarshalText(b []byte) error {
	parsed, err := ParseDigest(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest reads the algorithm:hex form. A bare hex string is taken as
// blake3.
func ParseDigest(s string) (Digest, error) {
	algo, hexSum, ok := strings.Cut(s, ":")
	if !ok {
		algo, hexSum = BLAKE3, s
	}
	if algo != BLAKE3 && algo != SHA256 {
		return Digest{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	sum, err := hex.DecodeString(hexSum)
	if err != nil {
		return Digest{}, fmt.Errorf("parse digest %q: %w", s, err)
	}
	if len(sum) != 32 {
		return Digest{}, fmt.Errorf("parse digest %q: want 32 bytes, got %d", s, len(sum))
	}
	return Digest{Algorithm: algo, Sum: sum}, nil
}
