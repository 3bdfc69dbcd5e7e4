// Package matrix implements the triplet-form sparse matrix used to carry
// Max-Plus adjacency and dater-form data between the petri, maxplus and
// export packages.
package matrix

import (
	"fmt"
	"io"
)

// SparseMatrix is an additive triplet store: (i, j, value) entries with a
// logical (M, N) shape. Duplicate (i, j) entries are kept as-is; combining
// them additively or via Max-Plus max is the consumer's decision, not this
// store's.
type SparseMatrix struct {
	I, J []int
	D    []float64
	M, N int
}

// Dim sets the logical shape without touching existing triplets.
func (s *SparseMatrix) Dim(m, n int) {
	s.M, s.N = m, n
}

// Add appends a triplet.
func (s *SparseMatrix) Add(i, j int, value float64) {
	s.I = append(s.I, i)
	s.J = append(s.J, j)
	s.D = append(s.D, value)
}

// Clear empties the triplets but keeps the shape.
func (s *SparseMatrix) Clear() {
	s.I, s.J, s.D = nil, nil, nil
}

// Get returns the first stored value at (i, j), or 0 if none was added.
func (s *SparseMatrix) Get(i, j int) float64 {
	for k := range s.I {
		if s.I[k] == i && s.J[k] == j {
			return s.D[k]
		}
	}
	return 0
}

// WriteJuliaTriplet emits the three one-based comma-separated index/value
// vectors plus the (M, N) shape, in the form a Julia Max-Plus script
// accepts as sparse(I, J, MP(V), M, N).
func (s *SparseMatrix) WriteJuliaTriplet(w io.Writer, name string) error {
	writeIntVec := func(label string, v []int) error {
		_, err := fmt.Fprintf(w, "%s_%s = [", name, label)
		if err != nil {
			return err
		}
		for k, x := range v {
			if k > 0 {
				if _, err := io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%d", x+1); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, "]\n")
		return err
	}

	if err := writeIntVec("i", s.I); err != nil {
		return err
	}
	if err := writeIntVec("j", s.J); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s_v = MP([", name); err != nil {
		return err
	}
	for k, v := range s.D {
		if k > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%g", v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "])\n"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s = sparse(%s_i, %s_j, %s_v, %d, %d)\n", name, name, name, name, s.M, s.N)
	return err
}
