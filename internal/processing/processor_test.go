package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoversEveryKind(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 9)

	for _, kind := range kinds {
		proc, err := New(kind)
		require.NoError(t, err, kind.String())
		assert.NotNil(t, proc)
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind(99))
	assert.Error(t, err)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "RGB to Grayscale", KindGrayscale.String())
	assert.Equal(t, "Sobel Edge Detection", KindSobel.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestProcessorsDoNotMutateInput(t *testing.T) {
	for _, kind := range []Kind{KindGrayscale, KindMultiOtsu, KindSobel} {
		input := uniformColorMat(4, 4, 60)

		proc, err := New(kind)
		require.NoError(t, err)

		out, err := proc.Process(input)
		require.NoError(t, err)
		out.Close()

		for y := 0; y < input.Rows(); y++ {
			for x := 0; x < input.Cols(); x++ {
				assert.Equal(t, uint8(60), input.GetUCharAt(y, x*input.Channels()), kind.String())
			}
		}
		input.Close()
	}
}
