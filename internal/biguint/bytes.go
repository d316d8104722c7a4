package biguint

// FromBytes constructs a magnitude from a big-endian byte buffer, the fixed
// wire format the surrounding protocol moves numbers in. The buffer length
// need not be a multiple of 4: the 1 to 3 leftover high-order bytes form the
// most significant word. An empty buffer yields zero.
func FromBytes(b []byte) *Nat {
	n := (len(b) + 3) / 4
	if n == 0 {
		return Zero()
	}
	w := make([]uint32, n)
	i := len(b)
	for k := 0; k < n; k++ {
		var v uint32
		for s := uint(0); s < WordBits && i > 0; s += 8 {
			i--
			v |= uint32(b[i]) << s
		}
		w[k] = v
	}
	return (&Nat{w: w}).norm()
}

// Bytes returns the minimal big-endian byte buffer representing x, sized
// from the bit length so no redundant leading zero bytes are emitted. The
// value zero yields an empty buffer.
func (x *Nat) Bytes() []byte {
	nbytes := (x.BitLen() + 7) / 8
	out := make([]byte, nbytes)
	for i := 0; i < nbytes; i++ {
		out[nbytes-1-i] = byte(x.w[i/4] >> (uint(i%4) * 8))
	}
	return out
}
