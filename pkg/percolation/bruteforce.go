package percolation

// BruteForce is a Model which keeps only the open/blocked grid and flood fills
// from the top row on every IsFull and Percolates call, O(n²) each.
type BruteForce struct {
	sites
}

var _ Model = (*BruteForce)(nil)

// NewBruteForce creates an n×n BruteForce with every site blocked.
func NewBruteForce(n int) (*BruteForce, error) {
	s, err := newSites(n)
	if err != nil {
		return nil, err
	}
	return &BruteForce{sites: s}, nil
}

// Open implements Model.
func (b *BruteForce) Open(row, col int) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	b.markOpen(row, col)
	return nil
}

// IsFull implements Model.
func (b *BruteForce) IsFull(row, col int) (bool, error) {
	if err := b.check(row, col); err != nil {
		return false, err
	}
	return b.fill()[b.index(row, col)], nil
}

// Percolates implements Model.
func (b *BruteForce) Percolates() bool {
	if b.n <= 1 {
		return false
	}
	full := b.fill()
	last := b.index(b.n-1, 0)
	for col := 0; col < b.n; col++ {
		if full[last+col] {
			return true
		}
	}
	return false
}

// fill marks every open site reachable from an open top-row site. It uses an
// explicit stack, a recursive walk could exhaust the goroutine stack for
// large n.
func (b *BruteForce) fill() []bool {
	full := make([]bool, b.n*b.n)
	stack := make([][2]int, 0, b.n)
	for col := 0; col < b.n; col++ {
		if b.isOpen(0, col) && !full[col] {
			full[col] = true
			stack = append(stack, [2]int{0, col})
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbors {
			r, c := cur[0]+d[0], cur[1]+d[1]
			if r < 0 || r >= b.n || c < 0 || c >= b.n {
				continue
			}
			i := b.index(r, c)
			if full[i] || !b.open[i] {
				continue
			}
			full[i] = true
			stack = append(stack, [2]int{r, c})
		}
	}
	return full
}
