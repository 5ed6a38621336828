package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputValues(t *testing.T, values []uint8, rows, cols int) map[uint8]bool {
	t.Helper()

	input := grayMatFromValues(rows, cols, values)
	defer input.Close()

	out, err := NewMultiOtsu().Process(input)
	require.NoError(t, err)
	defer out.Close()

	seen := make(map[uint8]bool)
	for y := 0; y < out.Rows(); y++ {
		for x := 0; x < out.Cols(); x++ {
			seen[out.GetUCharAt(y, x)] = true
		}
	}
	return seen
}

func TestMultiOtsuUniformInputIsUniform(t *testing.T) {
	values := make([]uint8, 36)
	for i := range values {
		values[i] = 128
	}
	seen := outputValues(t, values, 6, 6)
	assert.Len(t, seen, 1, "uniform input must map every pixel to the same class")
}

func TestMultiOtsuThreeClassScaling(t *testing.T) {
	// Three well-separated intensity levels: the class indices 0, 1, 2
	// are rescaled by 255/2 = 127, giving 0, 127, 254 (not 255).
	values := make([]uint8, 30)
	for i := range values {
		switch i % 3 {
		case 0:
			values[i] = 0
		case 1:
			values[i] = 100
		case 2:
			values[i] = 200
		}
	}
	seen := outputValues(t, values, 5, 6)
	assert.Equal(t, map[uint8]bool{0: true, 127: true, 254: true}, seen)
}

func TestMultiOtsuScalesByMaxObservedClass(t *testing.T) {
	// Only classes 0 and 1 occur; the maximum observed class maps to the
	// full 255 (255/1), not 127 as class-count scaling would give.
	values := make([]uint8, 24)
	for i := range values {
		if i%2 == 0 {
			values[i] = 100
		}
	}
	seen := outputValues(t, values, 4, 6)
	assert.Equal(t, map[uint8]bool{0: true, 255: true}, seen)
}

func TestMultiOtsuConvertsColorInput(t *testing.T) {
	input := uniformColorMat(4, 4, 90)
	defer input.Close()

	out, err := NewMultiOtsu().Process(input)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 1, out.Channels())
}

func TestMultiOtsuThresholdsSeparateLevels(t *testing.T) {
	hist := make([]float64, 256)
	hist[0] = 1.0 / 3.0
	hist[100] = 1.0 / 3.0
	hist[200] = 1.0 / 3.0

	t1, t2 := multiOtsuThresholds(hist)
	assert.Greater(t, t1, 0.0)
	assert.LessOrEqual(t, t1, 100.0)
	assert.Greater(t, t2, 100.0)
	assert.LessOrEqual(t, t2, 200.0)
}
