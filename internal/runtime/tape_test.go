package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTape(t *testing.T) {
	tape := NewTape(0)
	assert.Equal(t, []byte{0}, tape.Cells)
	assert.Equal(t, 0, tape.Pointer)
}

func TestTape_Wraparound(t *testing.T) {
	tape := NewTape(0)

	tape.Set(255)
	tape.Increment()
	assert.Equal(t, byte(0), tape.Get(), "incrementing 255 should wrap to 0")

	tape.Decrement()
	assert.Equal(t, byte(255), tape.Get(), "decrementing 0 should wrap to 255")
}

func TestTape_GrowsOneCellAtATime(t *testing.T) {
	tape := NewTape(0)

	for i := 1; i <= 5; i++ {
		require.NoError(t, tape.MoveRight())
		assert.Equal(t, i, tape.Pointer)
		assert.Equal(t, i+1, tape.Len(), "expected exactly one cell appended")
		assert.Equal(t, byte(0), tape.Get())
	}
}

func TestTape_NeverShrinks(t *testing.T) {
	tape := NewTape(0)
	require.NoError(t, tape.MoveRight())
	require.NoError(t, tape.MoveRight())
	tape.Increment()

	tape.MoveLeft()
	tape.MoveLeft()
	assert.Equal(t, 3, tape.Len())

	// Walking back over existing cells must not append.
	require.NoError(t, tape.MoveRight())
	require.NoError(t, tape.MoveRight())
	assert.Equal(t, 3, tape.Len())
	assert.Equal(t, byte(1), tape.Get())
}

func TestTape_MoveLeftAtZeroIsNoop(t *testing.T) {
	tape := NewTape(0)
	tape.Increment()

	tape.MoveLeft()
	assert.Equal(t, 0, tape.Pointer)
	assert.Equal(t, byte(1), tape.Get())
	assert.Equal(t, 1, tape.Len())
}

func TestTape_Limit(t *testing.T) {
	tape := NewTape(3)

	require.NoError(t, tape.MoveRight())
	require.NoError(t, tape.MoveRight())
	assert.ErrorIs(t, tape.MoveRight(), ErrTapeLimit)
	assert.Equal(t, 2, tape.Pointer, "pointer must not move past the limit")
	assert.Equal(t, 3, tape.Len())

	tape.MoveLeft()
	assert.NoError(t, tape.MoveRight(), "moving within the limit is allowed")
}
