package main

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const (
	StrategyBinary = "binary"
	StrategyText   = "text"
)

// ByteSequence is the recovered content of a file. It is never modified
// after construction.
type ByteSequence struct {
	raw []byte
}

func NewByteSequence(data []byte) *ByteSequence {
	raw := make([]byte, len(data))
	copy(raw, data)
	return &ByteSequence{raw: raw}
}

func (s *ByteSequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.raw)
}

func (s *ByteSequence) ReadUint8(offset int) (byte, error) {
	if offset < 0 || offset >= s.Len() {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOffsetOutOfRange, offset, s.Len())
	}
	return s.raw[offset], nil
}

// Bytes returns a copy of the sequence.
func (s *ByteSequence) Bytes() []byte {
	out := make([]byte, s.Len())
	if s != nil {
		copy(out, s.raw)
	}
	return out
}

// Recoverer reads the exact bytes of a file.
type Recoverer interface {
	Recover(path string) (*ByteSequence, error)
	Name() string
}

// NewRecoverer returns the recoverer for strategy. codePage is only used by
// the text strategy.
func NewRecoverer(strategy, codePage string) (Recoverer, error) {
	switch strategy {
	case StrategyBinary:
		return BinaryRecoverer{}, nil
	case StrategyText:
		enc, err := LookupEncoding(codePage)
		if err != nil {
			return nil, err
		}
		tr, err := NewTextRecoverer(enc)
		if err != nil {
			return nil, err
		}
		return tr, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// BinaryRecoverer reads the file directly.
type BinaryRecoverer struct{}

func (BinaryRecoverer) Name() string {
	return StrategyBinary
}

func (BinaryRecoverer) Recover(path string) (*ByteSequence, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadFailed, err)
	}
	return &ByteSequence{raw: data}, nil
}

// TextRecoverer rebuilds bytes from two text decodes of the same file, one
// under SevenBit and one under a single-byte code page.
type TextRecoverer struct {
	table *RecoveryTable
}

func NewTextRecoverer(codePage encoding.Encoding) (*TextRecoverer, error) {
	var (
		table *RecoveryTable
		err   error
	)
	if codePage == charmap.CodePage437 {
		table, err = DefaultRecoveryTable()
	} else {
		table, err = NewRecoveryTable(SevenBit, codePage)
	}
	if err != nil {
		return nil, err
	}
	return &TextRecoverer{table: table}, nil
}

func (tr *TextRecoverer) Name() string {
	return fmt.Sprintf("%s (%v)", StrategyText, tr.table.b)
}

func (tr *TextRecoverer) Recover(path string) (*ByteSequence, error) {
	// passes must not overlap
	textA, err := ReadText(path, tr.table.a)
	if err != nil {
		return nil, err
	}
	textB, err := ReadText(path, tr.table.b)
	if err != nil {
		return nil, err
	}

	codesA := []rune(textA)
	codesB := []rune(textB)
	if len(codesA) != len(codesB) {
		return nil, fmt.Errorf("%w: %v read %d characters, %v read %d",
			ErrDecodeInconsistency, tr.table.a, len(codesA), tr.table.b, len(codesB))
	}

	raw := make([]byte, len(codesA))
	for i := range codesA {
		v, ok := tr.table.Lookup(codesA[i], codesB[i])
		if !ok {
			return nil, fmt.Errorf("%w: no byte for (U+%04X, U+%04X) at offset %d",
				ErrDecodeInconsistency, codesA[i], codesB[i], i)
		}
		raw[i] = v
	}
	return &ByteSequence{raw: raw}, nil
}
