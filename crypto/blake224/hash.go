package blake224

import (
	"encoding/hex"

	"github.com/v0d1ch/aiken/errors"
)

// Hash represents a 224-bit content hash.
type Hash [Size]byte

// ErrMismatch means a declared hash does not equal a recomputed hash.
var ErrMismatch = errors.New("hash mismatch")

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText satisfies the TextMarshaler interface.
// It returns the bytes of h encoded in hex,
// for formats that can't hold arbitrary binary data.
// It never returns an error.
func (h Hash) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(b, h[:])
	return b, nil
}

// UnmarshalText satisfies the TextUnmarshaler interface.
// It decodes hex data from b into h.
func (h *Hash) UnmarshalText(b []byte) error {
	if len(b) != hex.EncodedLen(Size) {
		return errors.Wrapf(errors.New("bad hash length"), "got %d hex digits, want %d", len(b), hex.EncodedLen(Size))
	}
	_, err := hex.Decode(h[:], b)
	return err
}

// Verify compares a declared hash against a computed hash.
// It returns ErrMismatch if they differ.
func Verify(declared, computed Hash) error {
	if declared != computed {
		return errors.WithDetailf(ErrMismatch, "declared %s, computed %s", declared, computed)
	}
	return nil
}
