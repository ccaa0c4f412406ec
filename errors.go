package main

import (
	"errors"
)

const (
	RowSize     = 16
	OffsetWidth = 8
	ByteValues  = 256
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrFileAccessDenied    = errors.New("file access denied")
	ErrReadFailed          = errors.New("read file failed")
	ErrDecodeInconsistency = errors.New("decode inconsistency")
	ErrTableCollision      = errors.New("recovery table collision")
	ErrUnknownEncoding     = errors.New("unknown encoding")
	ErrUnknownStrategy     = errors.New("unknown strategy")
	ErrOffsetOutOfRange    = errors.New("offset out of range")
	ErrNotSevenBit         = errors.New("rune outside 7-bit range")
)
