package percolation

// System is the union-find Model. Open costs O(log n) and every query is
// answered from the connectivity structures without scanning the grid.
type System struct {
	sites

	// full contains source and sink and answers only Percolates.
	full *unionFind
	// top contains only the source and answers only IsFull.
	top *unionFind
}

var _ Model = (*System)(nil)

const source = 0

// NewSystem creates an n×n System with every site blocked.
func NewSystem(n int) (*System, error) {
	s, err := newSites(n)
	if err != nil {
		return nil, err
	}
	return &System{
		sites: s,
		full:  newUnionFind(n*n + 2),
		top:   newUnionFind(n*n + 1),
	}, nil
}

func (s *System) label(row, col int) int {
	return row*s.n + col + 1
}

func (s *System) sink() int {
	return s.n*s.n + 1
}

// Open implements Model. The connectivity edges of a site are installed once,
// when it opens, towards its already open neighbors.
func (s *System) Open(row, col int) error {
	if err := s.check(row, col); err != nil {
		return err
	}
	if !s.markOpen(row, col) {
		return nil
	}

	p := s.label(row, col)
	if row == 0 {
		s.unionBoth(source, p)
	}
	if row == s.n-1 {
		s.mustUnion(s.full, s.sink(), p)
	}
	for _, d := range neighbors {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= s.n || c < 0 || c >= s.n || !s.isOpen(r, c) {
			continue
		}
		s.unionBoth(s.label(r, c), p)
	}
	return nil
}

func (s *System) unionBoth(x, y int) {
	s.mustUnion(s.full, x, y)
	s.mustUnion(s.top, x, y)
}

// mustUnion is only called with labels derived from validated sites.
func (s *System) mustUnion(u *unionFind, x, y int) {
	if err := u.union(x, y); err != nil {
		panic(err)
	}
}

// IsFull implements Model.
func (s *System) IsFull(row, col int) (bool, error) {
	if err := s.check(row, col); err != nil {
		return false, err
	}
	if !s.isOpen(row, col) {
		return false, nil
	}
	return s.top.connected(source, s.label(row, col))
}

// Percolates implements Model.
func (s *System) Percolates() bool {
	if s.n <= 1 {
		return false
	}
	ok, err := s.full.connected(source, s.sink())
	if err != nil {
		panic(err)
	}
	return ok
}

// Clusters returns the number of connected groups of open sites. Blocked
// sites stay singletons in top, and the source adds one set of its own
// unless some open site has joined it.
func (s *System) Clusters() int {
	root, err := s.top.find(source)
	if err != nil {
		panic(err)
	}
	ret := s.top.components() - (s.n*s.n - s.openSites) - 1
	if s.top.size[root] > 1 {
		ret++
	}
	return ret
}
