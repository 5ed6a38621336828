package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func testMat(value float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), 4, 4, gocv.MatTypeCV8UC3)
}

func TestWorkspaceStartsEmpty(t *testing.T) {
	ws := NewWorkspace()
	defer ws.Close()

	assert.False(t, ws.HasSource())
	assert.False(t, ws.HasOutput())

	src := ws.Source()
	defer src.Close()
	assert.True(t, src.Empty())
}

func TestWorkspaceCloneInCloneOut(t *testing.T) {
	ws := NewWorkspace()
	defer ws.Close()

	mat := testMat(50)
	ws.SetSource(mat)

	// Mutating the original after SetSource must not affect the slot.
	mat.SetUCharAt(0, 0, 99)
	mat.Close()

	got := ws.Source()
	defer got.Close()
	assert.Equal(t, uint8(50), got.GetUCharAt(0, 0))

	// Mutating a returned copy must not affect the slot either.
	got.SetUCharAt(0, 0, 77)
	again := ws.Source()
	defer again.Close()
	assert.Equal(t, uint8(50), again.GetUCharAt(0, 0))
}

func TestWorkspaceClearSlots(t *testing.T) {
	ws := NewWorkspace()
	defer ws.Close()

	mat := testMat(10)
	defer mat.Close()
	ws.SetSource(mat)
	ws.SetSourcePath("/tmp/cat.png")
	ws.SetOutput(mat)

	require.True(t, ws.HasSource())
	require.True(t, ws.HasOutput())

	ws.ClearSource()
	assert.False(t, ws.HasSource())
	assert.Empty(t, ws.SourcePath())
	assert.True(t, ws.HasOutput(), "slots are independent")

	ws.ClearOutput()
	assert.False(t, ws.HasOutput())
}

func TestWorkspaceOutputRoundTrip(t *testing.T) {
	ws := NewWorkspace()
	defer ws.Close()

	mat := testMat(123)
	defer mat.Close()
	ws.SetOutput(mat)

	got := ws.Output()
	defer got.Close()
	assert.True(t, bytes.Equal(mat.ToBytes(), got.ToBytes()))
}

func TestWorkspaceCallbacks(t *testing.T) {
	ws := NewWorkspace()
	defer ws.Close()

	sourceRefreshes, outputRefreshes := 0, 0
	var lastError string
	ws.SetCallbacks(
		func() { sourceRefreshes++ },
		func() { outputRefreshes++ },
		func(msg string) { lastError = msg },
	)

	ws.RefreshSource()
	ws.RefreshOutput()
	ws.RefreshOutput()
	ws.ReportError("boom")

	assert.Equal(t, 1, sourceRefreshes)
	assert.Equal(t, 2, outputRefreshes)
	assert.Equal(t, "boom", lastError)
}

func TestWorkspaceNilCallbacksAreSafe(t *testing.T) {
	ws := NewWorkspace()
	defer ws.Close()

	ws.RefreshSource()
	ws.RefreshOutput()
	ws.ReportError("ignored")
}
