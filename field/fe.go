package field

import (
	"crypto/subtle"
)

// Element represents an element of the field GF(2^255-19).
//
// This type works similarly to [filippo.io/edwards25519/field.Element],
// and all arguments and receivers are allowed to alias.
//
// The zero value is a valid zero element.
type Element struct {
	// An element t represents the integer
	//     t.l0 + t.l1*2^51 + t.l2*2^102 + t.l3*2^153 + t.l4*2^204
	//
	// Limbs set with SetLimbs may use all 64 bits. After WeakReduce
	// they are lower than 2^51 + 19*2^13.
	l0 uint64
	l1 uint64
	l2 uint64
	l3 uint64
	l4 uint64
}

const maskLow51Bits uint64 = (1 << 51) - 1

var feZero = &Element{0, 0, 0, 0, 0}

// Zero sets v = 0, and returns v.
func (v *Element) Zero() *Element {
	*v = *feZero
	return v
}

var feOne = &Element{1, 0, 0, 0, 0}

// One sets v = 1, and returns v.
func (v *Element) One() *Element {
	*v = *feOne
	return v
}

// Set sets v = a, and returns v.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// SetLimbs sets v to l[0] + l[1]*2^51 + l[2]*2^102 + l[3]*2^153 + l[4]*2^204,
// and returns v. The limbs are taken as is and may use all 64 bits.
func (v *Element) SetLimbs(l [5]uint64) *Element {
	v.l0 = l[0]
	v.l1 = l[1]
	v.l2 = l[2]
	v.l3 = l[3]
	v.l4 = l[4]
	return v
}

// Limbs returns the raw limbs of v.
func (v *Element) Limbs() [5]uint64 {
	return [5]uint64{v.l0, v.l1, v.l2, v.l3, v.l4}
}

// WeakReduce sets v = a with every limb brought below 2^51 + 19*2^13, and
// returns v.
//
// The result represents the same value modulo 2^255-19 and is lower than
// 2*(2^255-19), but it is not necessarily the canonical representative.
func (v *Element) WeakReduce(a *Element) *Element {
	// Since the input limbs are bounded by 2^64, the biggest carry-out is
	// bounded by 2^13. The biggest carry-in is c4 * 19, resulting in
	//
	//     2^51 + 19*2^13 < 2^51.0000000001
	//
	// Canonical form is not needed here, only smaller limbs, so all
	// carry-outs are taken from the input limbs at once instead of rippling.
	c0 := a.l0 >> 51
	c1 := a.l1 >> 51
	c2 := a.l2 >> 51
	c3 := a.l3 >> 51
	c4 := a.l4 >> 51

	// 2^255 = 19 mod p, so the carry-out of l4 wraps around into l0.
	v.l0 = a.l0&maskLow51Bits + c4*19
	v.l1 = a.l1&maskLow51Bits + c0
	v.l2 = a.l2&maskLow51Bits + c1
	v.l3 = a.l3&maskLow51Bits + c2
	v.l4 = a.l4&maskLow51Bits + c3
	return v
}

// reduce sets v to its canonical representative in [0, 2^255-19), and
// returns v.
func (v *Element) reduce() *Element {
	v.WeakReduce(v)

	// Now v < 2*(2^255-19) = 2^256-38, so v = q*p + r with q either 0 or 1,
	// and q = 1 exactly when v >= p, that is when v + 19 >= 2^255.
	// q is the carry of v + 19 out of bit 255. It must ripple through
	// every limb: whether l4 overflows depends on the lower limbs.
	q := (v.l0 + 19) >> 51
	q = (v.l1 + q) >> 51
	q = (v.l2 + q) >> 51
	q = (v.l3 + q) >> 51
	q = (v.l4 + q) >> 51

	// r = v - q*p = v + 19*q - 2^255*q
	v.l0 += 19 * q

	v.l1 += v.l0 >> 51
	v.l0 = v.l0 & maskLow51Bits
	v.l2 += v.l1 >> 51
	v.l1 = v.l1 & maskLow51Bits
	v.l3 += v.l2 >> 51
	v.l2 = v.l2 & maskLow51Bits
	v.l4 += v.l3 >> 51
	v.l3 = v.l3 & maskLow51Bits
	// The carry out of l4 is 2^255*q, dropping it completes the subtraction.
	v.l4 = v.l4 & maskLow51Bits

	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
//
// Any limb values are accepted. The result encodes v mod 2^255-19 and its
// most significant bit is always zero.
func (v *Element) Bytes() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	var out [32]byte
	return v.bytes(&out)
}

// FillBytes sets buf to the canonical 32-byte little-endian encoding of v, and returns buf.
// If buf is shorter than 32 bytes, FillBytes will panic.
func (v *Element) FillBytes(buf []byte) []byte {
	v.bytes((*[32]byte)(buf))
	return buf
}

func (v *Element) bytes(out *[32]byte) []byte {
	t := *v
	t.reduce()

	// Limb k holds bits [51k, 51k+51) of the encoding.
	out[0] = byte(t.l0)
	out[1] = byte(t.l0 >> 8)
	out[2] = byte(t.l0 >> 16)
	out[3] = byte(t.l0 >> 24)
	out[4] = byte(t.l0 >> 32)
	out[5] = byte(t.l0 >> 40)
	out[6] = byte(t.l0>>48 | t.l1<<3)
	out[7] = byte(t.l1 >> 5)
	out[8] = byte(t.l1 >> 13)
	out[9] = byte(t.l1 >> 21)
	out[10] = byte(t.l1 >> 29)
	out[11] = byte(t.l1 >> 37)
	out[12] = byte(t.l1>>45 | t.l2<<6)
	out[13] = byte(t.l2 >> 2)
	out[14] = byte(t.l2 >> 10)
	out[15] = byte(t.l2 >> 18)
	out[16] = byte(t.l2 >> 26)
	out[17] = byte(t.l2 >> 34)
	out[18] = byte(t.l2 >> 42)
	out[19] = byte(t.l2>>50 | t.l3<<1)
	out[20] = byte(t.l3 >> 7)
	out[21] = byte(t.l3 >> 15)
	out[22] = byte(t.l3 >> 23)
	out[23] = byte(t.l3 >> 31)
	out[24] = byte(t.l3 >> 39)
	out[25] = byte(t.l3>>47 | t.l4<<4)
	out[26] = byte(t.l4 >> 4)
	out[27] = byte(t.l4 >> 12)
	out[28] = byte(t.l4 >> 20)
	out[29] = byte(t.l4 >> 28)
	out[30] = byte(t.l4 >> 36)
	out[31] = byte(t.l4 >> 44)

	// reduce leaves l4 below 2^51, so bit 255 can only be set if the
	// reduction itself is broken.
	if out[31]&0x80 != 0 {
		panic("field: canonical encoding has the high bit set")
	}

	return out[:]
}

// Equal returns 1 if v and u are equal, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	su, sv := u.Bytes(), v.Bytes()
	return subtle.ConstantTimeCompare(su, sv)
}
