package biguint

// Add returns x + y as a fresh magnitude. The word-wise sum runs through a
// 64-bit accumulator so the carry out of each word rides in the high half;
// the result buffer reserves one extra word for the final carry.
func Add(x, y *Nat) *Nat {
	if len(x.w) < len(y.w) {
		x, y = y, x
	}
	z := make([]uint32, len(x.w)+1)
	var c uint64
	for i := 0; i < len(y.w); i++ {
		c += uint64(x.w[i]) + uint64(y.w[i])
		z[i] = uint32(c)
		c >>= WordBits
	}
	for i := len(y.w); i < len(x.w); i++ {
		c += uint64(x.w[i])
		z[i] = uint32(c)
		c >>= WordBits
	}
	z[len(x.w)] = uint32(c)
	return (&Nat{w: z}).norm()
}

// AccAdd accumulates y into x in place: x += y. The receiver's logical
// length may grow to absorb the carry. The caller must hold exclusive access
// to x; y is only read and may not alias x's buffer.
func (x *Nat) AccAdd(y *Nat) {
	if len(y.w) > len(x.w) {
		x.grow(len(y.w))
	}
	var c uint64
	for i := 0; i < len(y.w); i++ {
		c += uint64(x.w[i]) + uint64(y.w[i])
		x.w[i] = uint32(c)
		c >>= WordBits
	}
	for i := len(y.w); i < len(x.w) && c != 0; i++ {
		c += uint64(x.w[i])
		x.w[i] = uint32(c)
		c >>= WordBits
	}
	if c != 0 {
		x.w = append(x.w, uint32(c))
	}
	x.norm()
}

// Sub returns x - y as a fresh magnitude, or ErrNegativeResult when x < y.
// The engine never materializes a negative magnitude; callers must establish
// x >= y, via Cmp or by construction.
func Sub(x, y *Nat) (*Nat, error) {
	if x.Cmp(y) < 0 {
		return nil, ErrNegativeResult
	}
	z := make([]uint32, len(x.w))
	var borrow uint64
	for i := 0; i < len(y.w); i++ {
		d := uint64(x.w[i]) - uint64(y.w[i]) - borrow
		z[i] = uint32(d)
		borrow = d >> 63
	}
	for i := len(y.w); i < len(x.w); i++ {
		d := uint64(x.w[i]) - borrow
		z[i] = uint32(d)
		borrow = d >> 63
	}
	return (&Nat{w: z}).norm(), nil
}

// AccSub subtracts y from x in place: x -= y. The precondition x >= y must
// hold by construction at the call site (division and Barrett reduction
// guarantee it); a borrow out of the top word means that invariant was
// broken, which is a bug, so it panics rather than returning an error.
func (x *Nat) AccSub(y *Nat) {
	if len(y.w) > len(x.w) {
		panic("biguint: AccSub underflow")
	}
	var borrow uint64
	for i := 0; i < len(y.w); i++ {
		d := uint64(x.w[i]) - uint64(y.w[i]) - borrow
		x.w[i] = uint32(d)
		borrow = d >> 63
	}
	for i := len(y.w); i < len(x.w) && borrow != 0; i++ {
		d := uint64(x.w[i]) - borrow
		x.w[i] = uint32(d)
		borrow = d >> 63
	}
	if borrow != 0 {
		panic("biguint: AccSub underflow")
	}
	x.norm()
}
