// Package rustfmt renders byte strings the way Rust's Debug formatter does,
// so generated output can be pasted into Rust sources.
package rustfmt

import (
	"strconv"
	"strings"
)

// Bytes returns the Debug representation of a Rust byte array, e.g. "[1, 0, 255]".
func Bytes(b []byte) string {
	return "[" + List(b) + "]"
}

// List returns the bytes as a comma separated list of decimals, without brackets.
func List(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 5)
	for i, v := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	return sb.String()
}
