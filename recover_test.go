package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func allByteValues() []byte {
	data := make([]byte, ByteValues)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func recoverers(t *testing.T) []Recoverer {
	t.Helper()
	text, err := NewRecoverer(StrategyText, "IBM437")
	require.NoError(t, err)
	latin1, err := NewRecoverer(StrategyText, "ISO-8859-1")
	require.NoError(t, err)
	return []Recoverer{BinaryRecoverer{}, text, latin1}
}

func TestRecoverRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	random := make([]byte, 4096)
	rnd.Read(random)

	cases := map[string][]byte{
		"empty":  {},
		"single": {0x80},
		"all":    allByteValues(),
		"random": random,
		"crlf":   []byte("a\r\nb\n\x00\xff\xfe"),
	}

	for _, rec := range recoverers(t) {
		for name, data := range cases {
			path := writeFixture(t, data)
			seq, err := rec.Recover(path)
			require.NoError(t, err, "%s/%s", rec.Name(), name)
			assert.Equal(t, data, seq.Bytes(), "%s/%s", rec.Name(), name)
		}
	}
}

func TestRecoverMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")
	for _, rec := range recoverers(t) {
		seq, err := rec.Recover(path)
		assert.ErrorIs(t, err, ErrFileNotFound, rec.Name())
		assert.Nil(t, seq)
	}
}

func TestRecoverAccessDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	path := writeFixture(t, []byte("secret"))
	require.NoError(t, os.Chmod(path, 0))

	for _, rec := range recoverers(t) {
		_, err := rec.Recover(path)
		assert.ErrorIs(t, err, ErrFileAccessDenied, rec.Name())
	}
}

func TestRecoverDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, rec := range recoverers(t) {
		_, err := rec.Recover(dir)
		assert.ErrorIs(t, err, ErrReadFailed, rec.Name())
	}
}

func TestRecoverDecodeInconsistency(t *testing.T) {
	def, err := DefaultRecoveryTable()
	require.NoError(t, err)
	// second pass decodes as UTF-8 while lookups still assume code page 437
	rec := &TextRecoverer{table: &RecoveryTable{a: SevenBit, b: unicode.UTF8, codes: def.codes}}

	cases := map[string]struct {
		data []byte
		msg  string
	}{
		"length mismatch": {[]byte{0xC3, 0xA9}, "read 2 characters"},
		"missing pair":    {[]byte{0x41, 0x80}, "at offset 1"},
	}
	for name, c := range cases {
		path := writeFixture(t, c.data)
		seq, err := rec.Recover(path)
		assert.ErrorIs(t, err, ErrDecodeInconsistency, name)
		assert.Contains(t, err.Error(), c.msg, name)
		assert.Nil(t, seq, name)
	}
}

func TestNewRecoverer(t *testing.T) {
	rec, err := NewRecoverer(StrategyBinary, "")
	require.NoError(t, err)
	assert.Equal(t, StrategyBinary, rec.Name())

	rec, err = NewRecoverer(StrategyText, "437")
	require.NoError(t, err)
	assert.Contains(t, rec.Name(), StrategyText)

	_, err = NewRecoverer("mmap", "")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = NewRecoverer(StrategyText, "utf8")
	assert.ErrorIs(t, err, ErrTableCollision)

	_, err = NewRecoverer(StrategyText, "no-such-charset")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestByteSequence(t *testing.T) {
	data := []byte{0x41, 0xFF, 0x00}
	seq := NewByteSequence(data)
	data[0] = 0
	assert.Equal(t, 3, seq.Len())

	v, err := seq.ReadUint8(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x41), v)
	v, err = seq.ReadUint8(2)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), v)

	_, err = seq.ReadUint8(3)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	_, err = seq.ReadUint8(-1)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	out := seq.Bytes()
	out[1] = 0
	v, _ = seq.ReadUint8(1)
	assert.Equal(t, byte(0xFF), v)

	var empty *ByteSequence
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Bytes())
}
