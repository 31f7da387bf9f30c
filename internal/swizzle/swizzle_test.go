package swizzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBGRA(t *testing.T) {
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	BGRA(p)
	assert.Equal(t, []byte{3, 2, 1, 4, 7, 6, 5, 8, 9}, p)

	BGRA(p)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, p)

	assert.NotPanics(t, func() { BGRA(nil) })
}

func TestBGRARows(t *testing.T) {
	// Two rows of one pixel, padded to a stride of 8.
	p := []byte{
		10, 20, 30, 40, 0xAA, 0xAA, 0xAA, 0xAA,
		50, 60, 70, 80, 0xBB, 0xBB, 0xBB, 0xBB,
	}
	BGRARows(p, 1, 8)
	assert.Equal(t, []byte{
		30, 20, 10, 40, 0xAA, 0xAA, 0xAA, 0xAA,
		70, 60, 50, 80, 0xBB, 0xBB, 0xBB, 0xBB,
	}, p)
}
