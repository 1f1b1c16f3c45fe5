package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSites(t *testing.T) {
	input := `3
0 1
1 1   2 1
`
	got, err := ReadSites(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, &Sites{
		N:     3,
		Opens: []Site{{0, 1}, {1, 1}, {2, 1}},
	}, got)

	got, err = ReadSites(strings.NewReader("  10\n"))
	require.NoError(t, err)
	require.Equal(t, 10, got.N)
	require.Empty(t, got.Opens)

	// out of range values are left to the model
	got, err = ReadSites(strings.NewReader("2 -1 5"))
	require.NoError(t, err)
	require.Equal(t, []Site{{-1, 5}}, got.Opens)
}

func TestReadSitesErrors(t *testing.T) {
	_, err := ReadSites(strings.NewReader(""))
	require.ErrorContains(t, err, "zero length")

	_, err = ReadSites(strings.NewReader("\n\t "))
	require.ErrorContains(t, err, "zero length")

	_, err = ReadSites(strings.NewReader("3 0 1 2"))
	require.ErrorContains(t, err, "token 4")

	_, err = ReadSites(strings.NewReader("3 0 x"))
	require.ErrorContains(t, err, `token 3 "x"`)

	_, err = ReadSites(strings.NewReader("3.5"))
	require.ErrorContains(t, err, "token 1")
}
