package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeInput_FiresExactlyOnceOnSixthDigit(t *testing.T) {
	var fired []string
	input := NewCodeInput(func(code string) { fired = append(fired, code) })

	for _, d := range "12345" {
		require.True(t, input.Enter(d))
		assert.Empty(t, fired, "must not fire on a partial code")
	}

	require.True(t, input.Enter('6'))
	require.Equal(t, []string{"123456"}, fired)

	// Extra digits are rejected and do not re-fire.
	assert.False(t, input.Enter('7'))
	assert.Equal(t, []string{"123456"}, fired)
}

func TestCodeInput_FocusAdvancesAndRetreats(t *testing.T) {
	input := NewCodeInput(nil)

	for _, d := range "123" {
		input.Enter(d)
	}
	require.Equal(t, 3, input.Focus())

	// Entering a digit at field 3 moves focus to field 4.
	input.Enter('4')
	assert.Equal(t, 4, input.Focus())

	// Deleting retreats: from field 4 back to field 3, then to field 2.
	input.Backspace()
	assert.Equal(t, 3, input.Focus())
	input.Backspace()
	assert.Equal(t, 2, input.Focus())
	assert.Equal(t, "12", input.Code())
}

func TestCodeInput_BackspaceAtFirstFieldIsNoop(t *testing.T) {
	input := NewCodeInput(nil)
	input.Backspace()
	assert.Equal(t, 0, input.Focus())
	assert.Empty(t, input.Code())
}

func TestCodeInput_RejectsNonDigits(t *testing.T) {
	input := NewCodeInput(nil)
	assert.False(t, input.Enter('a'))
	assert.False(t, input.Enter(' '))
	assert.Equal(t, 0, input.Focus())
}

func TestCodeInput_RestartsAfterError(t *testing.T) {
	var fired []string
	input := NewCodeInput(func(code string) { fired = append(fired, code) })

	for _, d := range "111111" {
		input.Enter(d)
	}
	require.Equal(t, []string{"111111"}, fired)

	input.MarkError()

	// The first edit after an error clears the code and restarts at
	// field 0.
	require.True(t, input.Enter('9'))
	assert.Equal(t, 1, input.Focus())
	assert.Equal(t, "9", input.Code())

	for _, d := range "87654" {
		input.Enter(d)
	}
	assert.Equal(t, []string{"111111", "987654"}, fired)
}

func TestCodeInput_ResetClearsEverything(t *testing.T) {
	input := NewCodeInput(nil)
	for _, d := range "123456" {
		input.Enter(d)
	}

	input.Reset()
	assert.Equal(t, 0, input.Focus())
	assert.Empty(t, input.Code())
	assert.Equal(t, 0, input.Len())
}
