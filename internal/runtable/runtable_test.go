package runtable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf strings.Builder
	err := Write(&buf, [][]string{
		{"Experiment number", "density"},
		{"1", "has,comma"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Experiment number,density\n1,\"has,comma\"\n", buf.String())
}
