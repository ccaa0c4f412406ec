package main

import (
	"fmt"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// RecoveryTable maps the pair of code points a byte decodes to under two
// single-byte encodings back to the byte. It is read-only once built.
type RecoveryTable struct {
	a     encoding.Encoding
	b     encoding.Encoding
	codes map[uint64]byte
}

var (
	defaultTable     *RecoveryTable
	defaultTableErr  error
	defaultTableOnce sync.Once
)

// DefaultRecoveryTable returns the process-wide table for SevenBit and
// IBM code page 437, building it on first use.
func DefaultRecoveryTable() (*RecoveryTable, error) {
	defaultTableOnce.Do(func() {
		defaultTable, defaultTableErr = NewRecoveryTable(SevenBit, charmap.CodePage437)
	})
	return defaultTable, defaultTableErr
}

// NewRecoveryTable runs every byte value through both decoders and checks
// that b gives each value its own code point and that no two values share a
// (codeA, codeB) pair.
func NewRecoveryTable(a, b encoding.Encoding) (*RecoveryTable, error) {
	t := &RecoveryTable{
		a:     a,
		b:     b,
		codes: make(map[uint64]byte, ByteValues),
	}
	seenB := make(map[rune]byte, ByteValues)

	for v := 0; v < ByteValues; v++ {
		codeA, err := decodeSingle(a, byte(v))
		if err != nil {
			return nil, err
		}
		codeB, err := decodeSingle(b, byte(v))
		if err != nil {
			return nil, err
		}
		if prev, ok := seenB[codeB]; ok {
			return nil, fmt.Errorf("%w: %v decodes 0x%02X and 0x%02X to U+%04X",
				ErrTableCollision, b, prev, v, codeB)
		}
		seenB[codeB] = byte(v)

		key := pairKey(codeA, codeB)
		if prev, ok := t.codes[key]; ok {
			return nil, fmt.Errorf("%w: 0x%02X and 0x%02X share (U+%04X, U+%04X)",
				ErrTableCollision, prev, v, codeA, codeB)
		}
		t.codes[key] = byte(v)
	}
	return t, nil
}

// Lookup returns the byte that decodes to codeA under the first encoding and
// codeB under the second.
func (t *RecoveryTable) Lookup(codeA, codeB rune) (byte, bool) {
	v, ok := t.codes[pairKey(codeA, codeB)]
	return v, ok
}

func (t *RecoveryTable) Len() int {
	return len(t.codes)
}

func pairKey(codeA, codeB rune) uint64 {
	return uint64(uint32(codeA))<<32 | uint64(uint32(codeB))
}

func decodeSingle(enc encoding.Encoding, v byte) (rune, error) {
	out, err := enc.NewDecoder().Bytes([]byte{v})
	if err != nil {
		return 0, fmt.Errorf("%w: %v cannot decode 0x%02X: %s", ErrTableCollision, enc, v, err)
	}
	runes := []rune(string(out))
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: %v decodes 0x%02X to %d code points",
			ErrTableCollision, enc, v, len(runes))
	}
	return runes[0], nil
}
