package matrix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddKeepsDuplicates(t *testing.T) {
	var s SparseMatrix
	s.Dim(2, 2)
	s.Add(0, 0, 1)
	s.Add(0, 0, 2)
	require.Len(t, s.I, 2)
	require.Equal(t, 1.0, s.Get(0, 0))
}

func TestClearKeepsShape(t *testing.T) {
	var s SparseMatrix
	s.Dim(3, 4)
	s.Add(0, 0, 1)
	s.Clear()
	require.Empty(t, s.I)
	require.Equal(t, 3, s.M)
	require.Equal(t, 4, s.N)
}

func TestWriteJuliaTripletOneBased(t *testing.T) {
	var s SparseMatrix
	s.Dim(2, 2)
	s.Add(1, 0, 3.5)
	var buf strings.Builder
	require.NoError(t, s.WriteJuliaTriplet(&buf, "T"))
	out := buf.String()
	require.Contains(t, out, "T_i = [2]")
	require.Contains(t, out, "T_j = [1]")
	require.Contains(t, out, "T_v = MP([3.5])")
	require.Contains(t, out, "T = sparse(T_i, T_j, T_v, 2, 2)")
}
