package pcomb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup(t *testing.T) {
	c := &Context{scan: NewScanner("abc"), rec: newRecorder()}

	res, err := Group(Rune('a'), Rune('b'), Rune('c')).Run(c)
	require.NoError(t, err)
	assert.Equal(t, []rune{'a', 'b', 'c'}, res)
}

func TestSingle(t *testing.T) {
	c := &Context{scan: NewScanner("a"), rec: newRecorder()}

	res, err := Single(Rune('a')).Run(c)
	require.NoError(t, err)
	assert.Equal(t, []rune{'a'}, res)
}
