package render

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/image/math/f32"
)

// Rotation is a clockwise quarter turn count: 0, 1, 2 or 3.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// ParseRotation accepts a quarter turn count (0-3) or degrees (0, 90, 180,
// 270).
func ParseRotation(s string) (Rotation, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "rotation %q", s)
	}
	switch n {
	case 0, 1, 2, 3:
		return Rotation(n), nil
	case 90, 180, 270:
		return Rotation(n / 90), nil
	}
	return 0, errors.Errorf("rotation %q: want 0-3 or 0/90/180/270", s)
}

func (r Rotation) Valid() bool { return r >= Rotate0 && r <= Rotate270 }

// Next returns the rotation one quarter turn further clockwise.
func (r Rotation) Next() Rotation { return (r + 1) % 4 }

func (r Rotation) Degrees() int { return int(r) * 90 }

func (r Rotation) String() string { return strconv.Itoa(r.Degrees()) + "°" }

// Transform is the 2×3 affine matrix applied in the vertex stage, stored as
// two float4 rows to match constant buffer packing. Columns 3 of both rows
// are padding.
//
//	x' = T[0][0]*x + T[0][1]*y + T[0][2]
//	y' = T[1][0]*x + T[1][1]*y + T[1][2]
type Transform [2][4]float32

// TransformSize is the byte size of a Transform in a constant buffer.
const TransformSize = 2 * 4 * 4

// RotationTransform returns the transform for r. The offset of 2 in the 90°
// and 270° rows compensates for the translation of the unit square by the
// quarter turn.
func RotationTransform(r Rotation) Transform {
	switch r {
	case Rotate90:
		return Transform{{0, -1, 2}, {1, 0, 0}}
	case Rotate180:
		return Transform{{-1, 0, 0}, {0, -1, 0}}
	case Rotate270:
		return Transform{{0, 1, 0}, {-1, 0, 2}}
	}
	return Transform{{1, 0, 0}, {0, 1, 0}}
}

// Aff3 returns the six coefficients in row-major order.
func (t Transform) Aff3() f32.Aff3 {
	return f32.Aff3{
		t[0][0], t[0][1], t[0][2],
		t[1][0], t[1][1], t[1][2],
	}
}

// Put writes t into b in constant buffer layout. b must hold TransformSize
// bytes.
func (t Transform) Put(b []byte) {
	_ = b[TransformSize-1]
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			off := (row*4 + col) * 4
			binary.LittleEndian.PutUint32(b[off:], math.Float32bits(t[row][col]))
		}
	}
}

// Apply transforms the point (x, y).
func (t Transform) Apply(x, y float32) (float32, float32) {
	return t[0][0]*x + t[0][1]*y + t[0][2], t[1][0]*x + t[1][1]*y + t[1][2]
}
