// Package blake224 computes BLAKE2b-224 digests, the content
// identity of compiled validator programs. A freelist of hash
// states avoids allocating a new state per digest.
package blake224

import (
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Size is the size of a BLAKE2b-224 checksum in bytes.
const Size = 28

var pool = &sync.Pool{New: newState}

func newState() interface{} {
	h, err := blake2b.New(Size, nil)
	if err != nil {
		panic(err) // only fails for invalid digest sizes
	}
	return h
}

// Get returns an initialized BLAKE2b-224 hash state.
// The caller should call Put when finished with the returned object.
func Get() hash.Hash {
	return pool.Get().(hash.Hash)
}

// Put resets h and adds it to the freelist.
func Put(h hash.Hash) {
	h.Reset()
	pool.Put(h)
}

// Sum returns the BLAKE2b-224 checksum of data.
func Sum(data []byte) (h Hash) {
	s := Get()
	defer Put(s)
	s.Write(data)
	s.Sum(h[:0])
	return h
}
