package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"imaging-workbench/internal/core"
	"imaging-workbench/internal/processing"
)

func colorMat(rows, cols int, value float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func loadSource(t *testing.T, ws *core.Workspace, value float64) {
	t.Helper()
	mat := colorMat(6, 6, value)
	defer mat.Close()
	ws.SetSource(mat)
}

func outputBytes(ws *core.Workspace) []byte {
	out := ws.Output()
	defer out.Close()
	return out.ToBytes()
}

func TestApplyWritesOutputAndRefreshes(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	refreshes := 0
	ws.SetCallbacks(nil, func() { refreshes++ }, nil)
	loadSource(t, ws, 128)

	cmd := NewApply(ws, processing.KindGrayscale)
	require.NoError(t, cmd.Execute())
	defer cmd.Release()

	assert.True(t, ws.HasOutput())
	assert.Equal(t, 1, refreshes)

	out := ws.Output()
	defer out.Close()
	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, uint8(128), out.GetUCharAt(0, 0))
}

func TestApplyWithoutSourceFails(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()

	cmd := NewApply(ws, processing.KindGrayscale)
	defer cmd.Release()
	assert.Error(t, cmd.Execute())
	assert.False(t, ws.HasOutput())
}

func TestApplyUndoRestoresPriorOutputExactly(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	loadSource(t, ws, 128)

	first := NewApply(ws, processing.KindGrayscale)
	require.NoError(t, first.Execute())
	defer first.Release()
	grayBytes := outputBytes(ws)

	second := NewApply(ws, processing.KindSobel)
	require.NoError(t, second.Execute())
	defer second.Release()
	require.False(t, bytes.Equal(grayBytes, outputBytes(ws)))

	second.Undo()
	assert.True(t, bytes.Equal(grayBytes, outputBytes(ws)), "undo must restore the prior output byte-for-byte")
}

func TestApplyUndoToEmptyOutput(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	loadSource(t, ws, 100)

	cmd := NewApply(ws, processing.KindGrayscale)
	require.NoError(t, cmd.Execute())
	defer cmd.Release()
	require.True(t, ws.HasOutput())

	cmd.Undo()
	assert.False(t, ws.HasOutput(), "the empty sentinel is restored verbatim")
}

func TestApplySnapshotIsIndependentOfLaterState(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	loadSource(t, ws, 128)

	first := NewApply(ws, processing.KindGrayscale)
	require.NoError(t, first.Execute())
	defer first.Release()
	grayBytes := outputBytes(ws)

	second := NewApply(ws, processing.KindSobel)
	require.NoError(t, second.Execute())
	defer second.Release()

	// Mutating the output slot afterwards must not leak into the
	// snapshot taken by second.
	scratch := colorMat(6, 6, 33)
	ws.SetOutput(scratch)
	scratch.Close()

	second.Undo()
	assert.True(t, bytes.Equal(grayBytes, outputBytes(ws)))
}

func TestClearSourceIsReversible(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	loadSource(t, ws, 200)

	src := ws.Source()
	srcBytes := src.ToBytes()
	src.Close()

	cmd := NewClearSource(ws)
	require.NoError(t, cmd.Execute())
	defer cmd.Release()
	assert.False(t, ws.HasSource())

	cmd.Undo()
	require.True(t, ws.HasSource())
	restored := ws.Source()
	defer restored.Close()
	assert.True(t, bytes.Equal(srcBytes, restored.ToBytes()))
}

func TestClearOutputIsIrreversible(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	loadSource(t, ws, 128)

	apply := NewApply(ws, processing.KindGrayscale)
	require.NoError(t, apply.Execute())
	defer apply.Release()

	cmd := NewClearOutput(ws)
	require.NoError(t, cmd.Execute())
	defer cmd.Release()
	assert.False(t, ws.HasOutput())

	cmd.Undo()
	assert.False(t, ws.HasOutput(), "cleared output must stay empty after undo")
}

// End-to-end: load, grayscale, sobel, undo twice, redo twice.
func TestHistoryScenario(t *testing.T) {
	ws := core.NewWorkspace()
	defer ws.Close()
	loadSource(t, ws, 128)

	h := NewHistory()
	defer h.Reset()

	apply := func(kind processing.Kind) {
		cmd := NewApply(ws, kind)
		require.NoError(t, cmd.Execute())
		h.Push(cmd)
	}

	apply(processing.KindGrayscale)
	grayBytes := outputBytes(ws)

	apply(processing.KindSobel)
	sobelBytes := outputBytes(ws)

	h.Undo()
	assert.True(t, bytes.Equal(grayBytes, outputBytes(ws)))

	h.Undo()
	assert.False(t, ws.HasOutput())

	require.NoError(t, h.Redo())
	assert.True(t, bytes.Equal(grayBytes, outputBytes(ws)))

	require.NoError(t, h.Redo())
	assert.True(t, bytes.Equal(sobelBytes, outputBytes(ws)))
}
