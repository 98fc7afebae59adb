package genconstants

import (
	"errors"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// Reference curve parameters, computed from their definitions with
// [filippo.io/edwards25519/field] rather than taken from the limb table.
//
// Twisted Edwards curve -x^2 + y^2 = 1 + d*x^2*y^2, a = -1
//
// https://www.rfc-editor.org/rfc/rfc7748.html#section-4.1
var (
	// Constant 1
	_1 = new(field.Element).One()
	// Constant a = -1
	_a = new(field.Element).Negate(_1)
	// Constant d = -121665/121666
	_d = func() *field.Element {
		var t field.Element
		t.Invert(fieldElementFromUint64(121666))
		t.Multiply(&t, fieldElementFromUint64(121665))
		return t.Negate(&t)
	}()
	// Constant A = 2*(a + d)/(a - d) = 486662
	_A = func() *field.Element {
		var n, t field.Element
		n.Add(_a, _d)
		n.Add(&n, &n)
		t.Subtract(_a, _d)
		t.Invert(&t)
		return n.Multiply(&n, &t)
	}()
)

// Montgomery "curve25519" v^2 = u^3 + A*u^2 + u base point
// u = 9, v = 14781619447589544791020593568409986887264606134616475288964881837755586237401.
var _B = &point{
	x: *fieldElementFromUint64(9),
	y: *fieldElementFromString("14781619447589544791020593568409986887264606134616475288964881837755586237401"),
}

type point struct {
	x, y field.Element
}

// onCurve reports whether m satisfies v^2 = u^3 + A*u^2 + u for the given A.
func (m *point) onCurve(A *field.Element) bool {
	var uSquared, vSquared, rhs, t field.Element

	uSquared.Square(&m.x)
	rhs.Multiply(&uSquared, &m.x)
	t.Multiply(A, &uSquared)
	rhs.Add(&rhs, &t)
	rhs.Add(&rhs, &m.x)

	vSquared.Square(&m.y)
	return vSquared.Equal(&rhs) == 1
}

// scalingFactor returns -|sqrt(-(A+2))|, the scaling factor of the birational
// map between the Edwards curve and the Montgomery curve with coefficient A.
// For A = 486662 it maps the Edwards generator to the Montgomery base point.
func scalingFactor(A *field.Element) (*field.Element, error) {
	var t field.Element
	t.Add(A, fieldElementFromUint64(2))
	t.Negate(&t)
	if _, wasSquare := t.SqrtRatio(&t, _1); wasSquare == 0 {
		return nil, errors.New("-(A+2) is not a square")
	}
	return t.Negate(&t), nil
}

// https://www.rfc-editor.org/rfc/rfc7748.html#section-4.1
// (u, v) = ((1+y)/(1-y), sqrt(-(A+2))*u/x)
func montgomeryFromEdwards(p *edwards25519.Point, scale *field.Element) *point {
	var x, y, u, v, t field.Element

	X, Y, Z, _ := p.ExtendedCoordinates()
	t.Invert(Z)
	x.Multiply(X, &t) // x = X/Z
	y.Multiply(Y, &t) // y = Y/Z

	t.Subtract(_1, &y)
	t.Invert(&t)
	u.Add(_1, &y)
	u.Multiply(&u, &t) // u = (1+y)/(1-y)

	t.Invert(&x)
	v.Multiply(scale, &u)
	v.Multiply(&v, &t) // v = sqrt(-(A+2))*u/x

	return &point{x: u, y: v}
}
