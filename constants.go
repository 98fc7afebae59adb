// Package genconstants generates canonical byte encodings of the
// [curve25519] field constants.
//
// Curve25519 implementations built on radix 2^51 arithmetic, such as
// curve25519-dalek, keep their constants as five 51-bit limbs. Hardware
// back-ends that operate on packed 256-bit registers need the same constants
// as canonical 32-byte little-endian strings instead. This package holds the
// constant table in limb form, encodes it with [field.Element.Bytes], and
// verifies every encoded constant against its mathematical definition using
// [filippo.io/edwards25519] as an independent reference.
//
// [curve25519]: https://datatracker.ietf.org/doc/html/rfc7748#section-4.1
package genconstants

import (
	"fmt"
	"io"

	"github.com/bunnie/genconstants-25519/field"
	"github.com/bunnie/genconstants-25519/internal/rustfmt"
)

// Constant is a named field constant or curve point given in radix 2^51 limbs.
type Constant struct {
	// Name is the Rust identifier of the constant.
	Name string

	// Coordinates names the coordinates of a point constant, in order.
	// It is nil for a single field element.
	Coordinates []string

	// Limbs holds one limb array per coordinate, or exactly one for a
	// single field element.
	Limbs [][5]uint64

	// Doc is a one line description of the constant.
	Doc string
}

// IsPoint returns whether c is an Edwards point rather than a single field element.
func (c *Constant) IsPoint() bool {
	return c.Coordinates != nil
}

// Elements returns the field elements of c, one per coordinate.
func (c *Constant) Elements() []*field.Element {
	fes := make([]*field.Element, len(c.Limbs))
	for i, l := range c.Limbs {
		fes[i] = new(field.Element).SetLimbs(l)
	}
	return fes
}

// Bytes returns the canonical encoding of every coordinate of c.
func (c *Constant) Bytes() [][]byte {
	var out [][]byte
	for _, fe := range c.Elements() {
		out = append(out, fe.Bytes())
	}
	return out
}

var constants = []*Constant{
	{
		Name:  "APLUS2_OVER_FOUR",
		Doc:   "(A + 2) / 4, used in the Montgomery ladder",
		Limbs: [][5]uint64{{121666, 0, 0, 0, 0}},
	},
	{
		Name:  "MONTGOMERY_A",
		Doc:   "Montgomery curve coefficient A = 486662",
		Limbs: [][5]uint64{{486662, 0, 0, 0, 0}},
	},
	{
		Name: "EDWARDS_D",
		Doc:  "Edwards curve coefficient d = -121665/121666",
		Limbs: [][5]uint64{{
			929955233495203,
			466365720129213,
			1662059464998953,
			2033849074728123,
			1442794654840575,
		}},
	},
	{
		Name: "EDWARDS_D2",
		Doc:  "2*d",
		Limbs: [][5]uint64{{
			1859910466990425,
			932731440258426,
			1072319116312658,
			1815898335770999,
			633789495995903,
		}},
	},
	{
		Name: "SQRT_M1",
		Doc:  "sqrt(-1)",
		Limbs: [][5]uint64{{
			1718705420411056,
			234908883556509,
			2233514472574048,
			2117202627021982,
			765476049583133,
		}},
	},
	{
		Name: "INVSQRT_A_MINUS_D",
		Doc:  "1/sqrt(a-d), where a = -1",
		Limbs: [][5]uint64{{
			278908739862762,
			821645201101625,
			8113234426968,
			1777959178193151,
			2118520810568447,
		}},
	},
	{
		Name: "SQRT_AD_MINUS_ONE",
		Doc:  "sqrt(a*d - 1), where a = -1",
		Limbs: [][5]uint64{{
			2241493124984347,
			425987919032274,
			2207028919301688,
			1220490630685848,
			974799131293748,
		}},
	},
	{
		Name:        "ED25519_BASEPOINT_POINT",
		Doc:         "Ed25519 base point in extended coordinates",
		Coordinates: []string{"X", "Y", "Z", "T"},
		Limbs: [][5]uint64{
			{
				1738742601995546,
				1146398526822698,
				2070867633025821,
				562264141797630,
				587772402128613,
			},
			{
				1801439850948184,
				1351079888211148,
				450359962737049,
				900719925474099,
				1801439850948198,
			},
			{1, 0, 0, 0, 0},
			{
				1841354044333475,
				16398895984059,
				755974180946558,
				900171276175154,
				1821297809914039,
			},
		},
	},
}

// Constants returns the constant table in generation order.
func Constants() []*Constant {
	return constants
}

// Lookup returns the constant with the given name, or nil.
func Lookup(name string) *Constant {
	for _, c := range constants {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// WriteRust writes the constant table to w as Rust source, with every field
// element rendered as typeName wrapping its canonical byte array.
func WriteRust(w io.Writer, typeName string) error {
	for _, c := range constants {
		if err := writeRustConstant(w, c, typeName); err != nil {
			return err
		}
	}
	return nil
}

func writeRustConstant(w io.Writer, c *Constant, typeName string) error {
	b := c.Bytes()
	if !c.IsPoint() {
		_, err := fmt.Fprintf(w, "\n/// %s\npub(crate) const %s: %s =\n    %s(%s);\n",
			c.Doc, c.Name, typeName, typeName, rustfmt.Bytes(b[0]))
		return err
	}

	if _, err := fmt.Fprintf(w, "\n/// %s\npub const %s: EdwardsPoint = EdwardsPoint {\n", c.Doc, c.Name); err != nil {
		return err
	}
	for i, coord := range c.Coordinates {
		if _, err := fmt.Fprintf(w, "    %s: %s(%s),\n", coord, typeName, rustfmt.Bytes(b[i])); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "};\n")
	return err
}
