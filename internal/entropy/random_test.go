package entropy

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func withSource(t *testing.T, src interface{ Read([]byte) (int, error) }) {
	t.Helper()
	prev := Source
	Source = src
	t.Cleanup(func() { Source = prev })
}

func TestResolveKeepsFixedSeed(t *testing.T) {
	withSource(t, failingReader{})
	assert.Equal(t, int64(42), Resolve(42))
	assert.Equal(t, int64(-7), Resolve(-7))
}

func TestResolveZeroDrawsSeed(t *testing.T) {
	withSource(t, bytes.NewReader([]byte{5, 0, 0, 0, 0, 0, 0, 0}))
	// 5 >> 1 == 2
	assert.Equal(t, int64(2), Resolve(0))
}

func TestSeedNeverZero(t *testing.T) {
	withSource(t, bytes.NewReader(make([]byte, 8)))
	assert.Equal(t, int64(1), Seed())
}

func TestSeedFallsBackToClock(t *testing.T) {
	withSource(t, failingReader{})
	assert.Positive(t, Seed())
}

func TestSeedFromCryptoIsPositive(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Positive(t, Seed())
	}
}
