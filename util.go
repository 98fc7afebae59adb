package genconstants

import (
	"encoding/binary"
	"math/big"
	"slices"

	"filippo.io/edwards25519/field"
)

func fieldElementFromUint64(n uint64) *field.Element {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return mustFieldElement(buf[:])
}

// fieldElementFromString parses a base 10 integer below 2^255.
func fieldElementFromString(s string) *field.Element {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 255 {
		panic("invalid fieldElement string")
	}
	var buf [32]byte
	n.FillBytes(buf[:])
	slices.Reverse(buf[:])
	return mustFieldElement(buf[:])
}

func mustFieldElement(b []byte) *field.Element {
	fe, err := new(field.Element).SetBytes(b)
	if err != nil {
		panic(err)
	}
	return fe
}
