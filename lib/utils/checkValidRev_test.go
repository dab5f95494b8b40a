package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValidRev(t *testing.T) {
	rev, err := CheckValidRev("12")
	require.NoError(t, err)
	assert.Equal(t, 12, *rev)

	rev, err = CheckValidRev(" 0 ")
	require.NoError(t, err)
	assert.Equal(t, 0, *rev)

	for _, bad := range []string{"-1", "abc", "", "1.5"} {
		_, err = CheckValidRev(bad)
		assert.ErrorIs(t, err, ErrInvalidRev, bad)
	}
}
