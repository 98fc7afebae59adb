// Package field implements the radix 2^51 representation of elements of
// GF(2^255-19) and their canonical encoding.
//
// [Element] type API follows [filippo.io/edwards25519/field.Element], but it
// only carries the operations needed to take limbs produced elsewhere (for
// example by a hardware multiplier, or by hand-written constant tables) to
// their canonical 32-byte form: weak reduction and encoding.
//
// Both operations are branch-free and run a fixed sequence of
// instructions regardless of the limb values.
package field
