// Package display renders tree enumerations as indented text
package display

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Render writes one line per (depth, name) pair, prefixed with indent
// repeated depth times.
func Render(w io.Writer, seq iter.Seq2[int, string], indent string) error {
	bw := bufio.NewWriter(w)
	for depth, name := range seq {
		bw.WriteString(strings.Repeat(indent, depth))
		bw.WriteString(name)
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
