package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertBinaryMask(t *testing.T, values []uint8, rows, cols int, proc Processor) {
	t.Helper()

	input := grayMatFromValues(rows, cols, values)
	defer input.Close()

	out, err := proc.Process(input)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, rows, out.Rows())
	assert.Equal(t, cols, out.Cols())
	assert.Equal(t, 1, out.Channels())
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := out.GetUCharAt(y, x)
			assert.True(t, v == 0 || v == 255, "mask values must be 0 or 255, got %d", v)
		}
	}
}

func twoRegionValues(rows, cols int) []uint8 {
	values := make([]uint8, rows*cols)
	for y := 0; y < rows; y++ {
		for x := cols / 2; x < cols; x++ {
			values[y*cols+x] = 220
		}
	}
	return values
}

func TestChanVeseProducesBinaryMask(t *testing.T) {
	assertBinaryMask(t, twoRegionValues(10, 10), 10, 10, NewChanVese())
}

func TestMorphSnakesProducesBinaryMask(t *testing.T) {
	assertBinaryMask(t, twoRegionValues(10, 10), 10, 10, NewMorphSnakes())
}

func TestChanVeseUniformInputIsBinary(t *testing.T) {
	values := make([]uint8, 64)
	for i := range values {
		values[i] = 90
	}
	assertBinaryMask(t, values, 8, 8, NewChanVese())
}

func TestContourConvertsColorInput(t *testing.T) {
	input := uniformColorMat(8, 8, 120)
	defer input.Close()

	out, err := NewMorphSnakes().Process(input)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
}

func TestCheckerboardLevelSetAlternatesSign(t *testing.T) {
	phi := checkerboardLevelSet(10, 10)

	positive, negative := false, false
	for _, v := range phi {
		if v > 0 {
			positive = true
		}
		if v < 0 {
			negative = true
		}
	}
	assert.True(t, positive)
	assert.True(t, negative)
}
