package crowd

// Ragged is a sequence of variable-length int rows stored as one flat
// arena plus an offset table. Row i is Data[Offsets[i]:Offsets[i+1]].
// The flat layout keeps the per-row parallel sweeps cache-friendly.
type Ragged struct {
	Data    []int
	Offsets []int
}

// NewRagged flattens rows into a Ragged.
func NewRagged(rows [][]int) Ragged {
	r := Ragged{Offsets: make([]int, len(rows)+1)}
	var total int
	for i, row := range rows {
		r.Offsets[i] = total
		total += len(row)
	}
	r.Offsets[len(rows)] = total
	r.Data = make([]int, 0, total)
	for _, row := range rows {
		r.Data = append(r.Data, row...)
	}
	return r
}

// Len returns the number of rows.
func (r Ragged) Len() int {
	if len(r.Offsets) == 0 {
		return 0
	}
	return len(r.Offsets) - 1
}

// Row returns row i as a sub-slice of the arena; callers must not
// mutate it.
func (r Ragged) Row(i int) []int {
	return r.Data[r.Offsets[i]:r.Offsets[i+1]]
}

// RowLen returns the length of row i.
func (r Ragged) RowLen(i int) int {
	return r.Offsets[i+1] - r.Offsets[i]
}
