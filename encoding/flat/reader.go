package flat

import (
	"math/big"

	"github.com/v0d1ch/aiken/errors"
)

// maxIntChunks bounds the 7-bit chunk count of a single integer
// constant (64 KiB of magnitude), to stop malformed input from
// allocating without limit.
const maxIntChunks = 1 << 16

// A Reader consumes a bit stream most-significant-bit first.
type Reader struct {
	buf []byte
	pos int  // index of the current byte
	bit uint // bits consumed of buf[pos], 0..7
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.pos >= len(r.buf) {
		return false, ErrTruncated
	}
	b := r.buf[r.pos]&(0x80>>r.bit) != 0
	r.bit++
	if r.bit == 8 {
		r.bit = 0
		r.pos++
	}
	return b, nil
}

// ReadBits reads n bits, n <= 8, into the low bits of the result.
func (r *Reader) ReadBits(n uint) (byte, error) {
	var v byte
	for i := uint(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

// ReadNat reads a variable-length natural number: 7-bit chunks,
// least significant first, each preceded by a continuation bit in
// the high bit of the 8-bit group.
func (r *Reader) ReadNat() (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := r.ReadBits(8)
		if err != nil {
			return 0, err
		}
		if shift > 63 || (shift == 63 && b&0x7f > 1) {
			return 0, errors.Wrap(ErrRange, "natural overflows 64 bits")
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}

// ReadBigInt reads a zig-zag encoded arbitrary-precision integer.
func (r *Reader) ReadBigInt() (*big.Int, error) {
	var chunks []byte
	for {
		b, err := r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, b&0x7f)
		if b&0x80 == 0 {
			break
		}
		if len(chunks) == maxIntChunks {
			return nil, errors.Wrap(ErrRange, "integer too large")
		}
	}

	u := new(big.Int)
	for i := len(chunks) - 1; i >= 0; i-- {
		u.Lsh(u, 7)
		u.Or(u, big.NewInt(int64(chunks[i])))
	}
	return unzigzag(u), nil
}

// unzigzag maps 2n to n and 2|n|-1 to -|n|.
func unzigzag(u *big.Int) *big.Int {
	n := new(big.Int)
	if u.Bit(0) == 0 {
		return n.Rsh(u, 1)
	}
	n.Add(u, big.NewInt(1))
	n.Rsh(n, 1)
	return n.Neg(n)
}

// readFiller consumes a padding sequence: zero or more 0 bits
// followed by a 1, ending exactly on a byte boundary. When the
// reader is already aligned, the padding is a whole 0x01 byte.
func (r *Reader) readFiller() error {
	n := 8 - r.bit
	for i := uint(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return errors.Wrap(ErrTruncated, "missing padding")
		}
		if bit {
			if i != n-1 {
				return errors.Wrap(ErrPadding, "padding terminator not on byte boundary")
			}
			return nil
		}
	}
	return errors.Wrap(ErrPadding, "padding has no terminator bit")
}

// ReadBytes reads a byte string: padding to byte alignment, then
// chunks prefixed with a length byte, terminated by a zero length.
func (r *Reader) ReadBytes() ([]byte, error) {
	if err := r.readFiller(); err != nil {
		return nil, err
	}
	out := []byte{}
	for {
		if r.pos >= len(r.buf) {
			return nil, errors.Wrap(ErrTruncated, "missing chunk length")
		}
		n := int(r.buf[r.pos])
		r.pos++
		if n == 0 {
			return out, nil
		}
		if n > len(r.buf)-r.pos {
			return nil, errors.Wrapf(ErrChunkLength, "chunk wants %d bytes, %d remain", n, len(r.buf)-r.pos)
		}
		out = append(out, r.buf[r.pos:r.pos+n]...)
		r.pos += n
	}
}

// Finish consumes the final padding and verifies that the whole
// input was used. Unconsumed bytes are rejected as trailing
// garbage.
func (r *Reader) Finish() error {
	if err := r.readFiller(); err != nil {
		return err
	}
	if r.pos != len(r.buf) {
		return errors.Wrapf(ErrTrailingGarbage, "%d bytes remain", len(r.buf)-r.pos)
	}
	return nil
}
