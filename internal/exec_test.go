package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	assert.NoError(t, Recover(func() {}))

	sentinel := errors.New("boom")
	err := Recover(func() { panic(sentinel) })
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, sentinel)
	assert.NotEmpty(t, pe.Stack)

	err = Recover(func() { panic("plain") })
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "plain", pe.Value)
	assert.Nil(t, errors.Unwrap(err))
}
