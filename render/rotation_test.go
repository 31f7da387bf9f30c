package render

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationTransformTable(t *testing.T) {
	tests := []struct {
		rot        Rotation
		row0, row1 [3]float32
	}{
		{Rotate0, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{Rotate90, [3]float32{0, -1, 2}, [3]float32{1, 0, 0}},
		{Rotate180, [3]float32{-1, 0, 0}, [3]float32{0, -1, 0}},
		{Rotate270, [3]float32{0, 1, 0}, [3]float32{-1, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.rot.String(), func(t *testing.T) {
			tr := RotationTransform(tt.rot)
			assert.Equal(t, tt.row0, [3]float32{tr[0][0], tr[0][1], tr[0][2]})
			assert.Equal(t, tt.row1, [3]float32{tr[1][0], tr[1][1], tr[1][2]})
			assert.Zero(t, tr[0][3])
			assert.Zero(t, tr[1][3])
		})
	}
}

func TestTransformPut(t *testing.T) {
	b := make([]byte, TransformSize)
	RotationTransform(Rotate90).Put(b)

	var got [8]float32
	for i := range got {
		got[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	assert.Equal(t, [8]float32{0, -1, 2, 0, 1, 0, 0, 0}, got)
}

func TestTransformApply(t *testing.T) {
	x, y := RotationTransform(Rotate90).Apply(0.5, 0.25)
	assert.Equal(t, float32(1.75), x)
	assert.Equal(t, float32(0.5), y)

	x, y = RotationTransform(Rotate180).Apply(0.5, 0.25)
	assert.Equal(t, float32(-0.5), x)
	assert.Equal(t, float32(-0.25), y)

	a := RotationTransform(Rotate270).Aff3()
	x, y = RotationTransform(Rotate270).Apply(0.5, 0.25)
	assert.Equal(t, a[0]*0.5+a[1]*0.25+a[2], x)
	assert.Equal(t, a[3]*0.5+a[4]*0.25+a[5], y)
}

func TestParseRotation(t *testing.T) {
	for in, want := range map[string]Rotation{
		"0": Rotate0, "1": Rotate90, "2": Rotate180, "3": Rotate270,
		"90": Rotate90, "180": Rotate180, "270": Rotate270,
	} {
		got, err := ParseRotation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"4", "45", "-1", "x", ""} {
		_, err := ParseRotation(in)
		assert.Error(t, err, in)
	}
}

func TestRotationNext(t *testing.T) {
	r := Rotate0
	seen := []Rotation{}
	for i := 0; i < 5; i++ {
		seen = append(seen, r)
		r = r.Next()
	}
	assert.Equal(t, []Rotation{Rotate0, Rotate90, Rotate180, Rotate270, Rotate0}, seen)
	assert.Equal(t, 270, Rotate270.Degrees())
	assert.False(t, Rotation(4).Valid())
	assert.Equal(t, "90°", Rotate90.String())
}
