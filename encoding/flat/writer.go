package flat

import "math/big"

// A Writer produces a bit stream most-significant-bit first.
type Writer struct {
	buf []byte
	cur byte
	bit uint // bits used in cur, 0..7
}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(b bool) {
	if b {
		w.cur |= 0x80 >> w.bit
	}
	w.bit++
	if w.bit == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.bit = 0
	}
}

// WriteBits appends the low n bits of v, most significant first.
func (w *Writer) WriteBits(v byte, n uint) {
	for i := n; i > 0; i-- {
		w.WriteBit(v&(1<<(i-1)) != 0)
	}
}

// WriteNat appends a variable-length natural number.
func (w *Writer) WriteNat(v uint64) {
	for {
		d := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			d |= 0x80
		}
		w.WriteBits(d, 8)
		if v == 0 {
			return
		}
	}
}

// WriteBigInt appends a zig-zag encoded arbitrary-precision
// integer.
func (w *Writer) WriteBigInt(n *big.Int) {
	u := new(big.Int)
	if n.Sign() >= 0 {
		u.Lsh(n, 1)
	} else {
		u.Neg(n)
		u.Lsh(u, 1)
		u.Sub(u, big.NewInt(1))
	}
	w.writeBigNat(u)
}

func (w *Writer) writeBigNat(u *big.Int) {
	if u.IsUint64() {
		w.WriteNat(u.Uint64())
		return
	}
	low := big.NewInt(0x7f)
	t := new(big.Int).Set(u)
	chunk := new(big.Int)
	for {
		chunk.And(t, low)
		t.Rsh(t, 7)
		d := byte(chunk.Uint64())
		if t.Sign() != 0 {
			d |= 0x80
		}
		w.WriteBits(d, 8)
		if t.Sign() == 0 {
			return
		}
	}
}

// WriteFiller appends a padding sequence: 0 bits up to the last bit
// of the current byte, then a 1. On an aligned stream this is a
// whole 0x01 byte.
func (w *Writer) WriteFiller() {
	for w.bit != 7 {
		w.WriteBit(false)
	}
	w.WriteBit(true)
}

// WriteBytes appends a byte string: padding to byte alignment, then
// chunks of at most 255 bytes, each prefixed with its length,
// terminated by a zero length byte.
func (w *Writer) WriteBytes(p []byte) {
	w.WriteFiller()
	for len(p) > 0 {
		n := len(p)
		if n > 255 {
			n = 255
		}
		w.buf = append(w.buf, byte(n))
		w.buf = append(w.buf, p[:n]...)
		p = p[n:]
	}
	w.buf = append(w.buf, 0)
}

// Bytes returns the accumulated bytes. The caller is expected to
// have byte-aligned the stream with WriteFiller; any residual bits
// are flushed zero-padded.
func (w *Writer) Bytes() []byte {
	if w.bit != 0 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.bit = 0
	}
	return w.buf
}
