package genconstants

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// definitions maps a constant name to a check of its defining equation.
// Every check receives the canonical encodings decoded by the reference
// implementation, one element per coordinate.
var definitions = map[string]func(c []*field.Element) error{
	"APLUS2_OVER_FOUR": func(c []*field.Element) error {
		// 4*c - 2 = A
		var t field.Element
		t.Mult32(c[0], 4)
		t.Subtract(&t, fieldElementFromUint64(2))
		if t.Equal(_A) != 1 {
			return errors.New("4*c - 2 != A")
		}
		return nil
	},
	"MONTGOMERY_A": func(c []*field.Element) error {
		if c[0].Equal(_A) != 1 {
			return errors.New("c != 2*(a + d)/(a - d)")
		}
		// The Edwards generator must map to the base point u = 9 of the
		// Montgomery curve with coefficient c.
		scale, err := scalingFactor(c[0])
		if err != nil {
			return err
		}
		m := montgomeryFromEdwards(edwards25519.NewGeneratorPoint(), scale)
		if m.x.Equal(&_B.x) != 1 {
			return errors.New("generator does not map to u = 9")
		}
		if !m.onCurve(c[0]) {
			return errors.New("base point is not on v^2 = u^3 + c*u^2 + u")
		}
		return nil
	},
	"EDWARDS_D": func(c []*field.Element) error {
		// 121666*c = -121665
		var lhs, rhs field.Element
		lhs.Mult32(c[0], 121666)
		rhs.Negate(fieldElementFromUint64(121665))
		if lhs.Equal(&rhs) != 1 {
			return errors.New("121666*c != -121665")
		}
		return nil
	},
	"EDWARDS_D2": func(c []*field.Element) error {
		var t field.Element
		t.Add(_d, _d)
		if c[0].Equal(&t) != 1 {
			return errors.New("c != 2*d")
		}
		return nil
	},
	"SQRT_M1": func(c []*field.Element) error {
		var t field.Element
		t.Square(c[0])
		if t.Equal(_a) != 1 {
			return errors.New("c^2 != -1")
		}
		return nil
	},
	"INVSQRT_A_MINUS_D": func(c []*field.Element) error {
		// c^2 * (a - d) = 1
		var t, amd field.Element
		amd.Subtract(_a, _d)
		t.Square(c[0])
		t.Multiply(&t, &amd)
		if t.Equal(_1) != 1 {
			return errors.New("c^2 * (a - d) != 1")
		}
		return nil
	},
	"SQRT_AD_MINUS_ONE": func(c []*field.Element) error {
		var t, adm1 field.Element
		adm1.Multiply(_a, _d)
		adm1.Subtract(&adm1, _1)
		t.Square(c[0])
		if t.Equal(&adm1) != 1 {
			return errors.New("c^2 != a*d - 1")
		}
		return nil
	},
	"ED25519_BASEPOINT_POINT": func(c []*field.Element) error {
		if len(c) != 4 {
			return errors.New("expected extended coordinates X, Y, Z, T")
		}
		// SetExtendedCoordinates rejects points off the curve and
		// inconsistent T = XY/Z.
		p, err := new(edwards25519.Point).SetExtendedCoordinates(c[0], c[1], c[2], c[3])
		if err != nil {
			return err
		}
		if p.Equal(edwards25519.NewGeneratorPoint()) != 1 {
			return errors.New("point is not the Ed25519 generator")
		}
		return nil
	},
}

// Verify checks the canonical encoding of c against the mathematical
// definition of the constant.
func Verify(c *Constant) error {
	check, ok := definitions[c.Name]
	if !ok {
		return fmt.Errorf("%s: no known definition", c.Name)
	}
	if c.IsPoint() && len(c.Coordinates) != len(c.Limbs) {
		return fmt.Errorf("%s: %d coordinates but %d limb arrays", c.Name, len(c.Coordinates), len(c.Limbs))
	}
	if !c.IsPoint() && len(c.Limbs) != 1 {
		return fmt.Errorf("%s: expected one limb array, got %d", c.Name, len(c.Limbs))
	}

	var fes []*field.Element
	for i, b := range c.Bytes() {
		if b[31]&0x80 != 0 {
			return fmt.Errorf("%s: coordinate %d is not canonical", c.Name, i)
		}
		fe, err := new(field.Element).SetBytes(b)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		// The reference re-encoding of a canonical value is the value itself.
		if string(fe.Bytes()) != string(b) {
			return fmt.Errorf("%s: coordinate %d is not canonical", c.Name, i)
		}
		fes = append(fes, fe)
	}

	if err := check(fes); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}

// VerifyAll verifies every constant of the table and returns the joined
// errors of those that fail.
func VerifyAll() error {
	var errs []error
	for _, c := range constants {
		errs = append(errs, Verify(c))
	}
	return errors.Join(errs...)
}
