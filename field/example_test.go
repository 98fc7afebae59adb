package field_test

import (
	"fmt"

	"github.com/bunnie/genconstants-25519/field"
)

func ExampleElement_Bytes() {
	// 2^255 - 19 in radix 2^51 limbs reduces to zero.
	p := new(field.Element).SetLimbs([5]uint64{
		2251799813685229,
		2251799813685247,
		2251799813685247,
		2251799813685247,
		2251799813685247,
	})

	fmt.Printf("%x\n", p.Bytes())
	// Output:
	// 0000000000000000000000000000000000000000000000000000000000000000
}
