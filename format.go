package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

var gridHeader = buildHeader()

func buildHeader() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", OffsetWidth+2))
	sb.WriteByte('|')
	for i := 0; i < RowSize; i++ {
		sb.WriteByte(' ')
		sb.WriteByte(hexDigits[i>>4])
		sb.WriteByte(hexDigits[i&0x0F])
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("-", OffsetWidth+2))
	sb.WriteByte('+')
	sb.WriteString(strings.Repeat("-", RowSize*3+1))
	sb.WriteByte('\n')
	return sb.String()
}

// Format renders seq as an offset/hex grid, 16 bytes per row.
func Format(seq *ByteSequence) string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = FormatTo(&sb, seq)
	return sb.String()
}

func FormatTo(w io.Writer, seq *ByteSequence) error {
	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(gridHeader)

	n := seq.Len()
	for i := 0; i < n; i++ {
		if i%RowSize == 0 {
			if i > 0 {
				_ = bw.WriteByte('\n')
			}
			_, _ = fmt.Fprintf(bw, " %0*X |", OffsetWidth, i)
		}
		b, err := seq.ReadUint8(i)
		if err != nil {
			return err
		}
		_ = bw.WriteByte(' ')
		_ = bw.WriteByte(hexDigits[b>>4])
		_ = bw.WriteByte(hexDigits[b&0x0F])
	}
	if n > 0 {
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}
