package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SevenBit decodes every byte to the code point b & 0x7F, so values past 127
// wrap around onto the ASCII range.
var SevenBit encoding.Encoding = sevenBit{}

type sevenBit struct{}

func (sevenBit) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: sevenBitDecoder{}}
}

func (sevenBit) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: sevenBitEncoder{}}
}

func (sevenBit) String() string {
	return "7-bit ASCII"
}

type sevenBitDecoder struct{ transform.NopResetter }

func (sevenBitDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i] & 0x7F
	}
	return n, n, err
}

type sevenBitEncoder struct{ transform.NopResetter }

func (sevenBitEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c >= 0x80 {
			return nDst, nSrc, ErrNotSevenBit
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// LookupEncoding resolves a short name (ascii, utf8, utf16le, 437) or any
// IANA charset name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return SevenBit, nil
	case "utf8", "utf-8":
		return unicode.UTF8, nil
	case "utf16le", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "437", "cp437":
		return charmap.CodePage437, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, err)
	}
	// known to IANA but not implemented by x/text
	if enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// ReadText decodes the whole file at path with enc.
func ReadText(path string, enc encoding.Encoding) (string, error) {
	f, err := openFile(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(transform.NewReader(f, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrReadFailed, err)
	}
	return string(data), nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0400)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, err)
	}
	return nil, fmt.Errorf("%w: %s", ErrFileAccessDenied, err)
}
