package genconstants

import (
	"fmt"
	"testing"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (m *point) String() string {
	return fmt.Sprintf("{x: %x, y: %x}", m.x.Bytes(), m.y.Bytes())
}

func TestReferenceParameters(t *testing.T) {
	assert.Equal(t, fieldElementFromUint64(486662).Bytes(), _A.Bytes())
	assert.Equal(t, Lookup("EDWARDS_D").Bytes()[0], _d.Bytes())
	assert.Equal(t, 1, new(field.Element).Add(_a, _1).Equal(new(field.Element).Zero()))
}

func TestFieldElementFromString(t *testing.T) {
	assert.Equal(t, fieldElementFromUint64(121666).Bytes(), fieldElementFromString("121666").Bytes())
	assert.Panics(t, func() { fieldElementFromString("-1") })
	assert.Panics(t, func() { fieldElementFromString("0x10") })
	assert.Panics(t, func() {
		// 2^255
		fieldElementFromString("57896044618658097711785492504343953926634992332820282019728792003956564819968")
	})
}

func TestMontgomeryFromEdwards(t *testing.T) {
	g := edwards25519.NewGeneratorPoint()

	scale, err := scalingFactor(_A)
	require.NoError(t, err)

	b := montgomeryFromEdwards(g, scale)
	t.Log(b)

	assert.Equal(t, _B.x.Bytes(), b.x.Bytes())
	assert.Equal(t, _B.y.Bytes(), b.y.Bytes())
}

func TestOnCurve(t *testing.T) {
	assert.True(t, _B.onCurve(_A))
	assert.False(t, _B.onCurve(fieldElementFromUint64(486663)))

	negated := &point{x: _B.x}
	negated.y.Negate(&_B.y)
	assert.True(t, negated.onCurve(_A))
}

func TestScalingFactorNotSquare(t *testing.T) {
	// -(A+2) = 2, which is not a square in this field.
	A := new(field.Element).Negate(fieldElementFromUint64(4))

	_, err := scalingFactor(A)
	assert.EqualError(t, err, "-(A+2) is not a square")
}
