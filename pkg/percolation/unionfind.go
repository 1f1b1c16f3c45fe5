package percolation

import "github.com/pingcap/errors"

// unionFind is a weighted quick-union over the labels [0, n). The root of the
// smaller tree is always attached under the root of the larger one, so no tree
// is deeper than log2(n).
type unionFind struct {
	parent []int
	size   []int
	count  int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

func (u *unionFind) validate(x int) error {
	if x < 0 || x >= len(u.parent) {
		return errors.Annotatef(ErrOutOfRange, "label %d not in [0, %d)", x, len(u.parent))
	}
	return nil
}

func (u *unionFind) find(x int) (int, error) {
	if err := u.validate(x); err != nil {
		return 0, err
	}
	for u.parent[x] != x {
		// path halving, roots and sizes are untouched
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x, nil
}

func (u *unionFind) union(x, y int) error {
	rootX, err := u.find(x)
	if err != nil {
		return err
	}
	rootY, err := u.find(y)
	if err != nil {
		return err
	}
	if rootX == rootY {
		return nil
	}

	if u.size[rootX] < u.size[rootY] {
		rootX, rootY = rootY, rootX
	}
	u.parent[rootY] = rootX
	u.size[rootX] += u.size[rootY]
	u.count--
	return nil
}

func (u *unionFind) connected(x, y int) (bool, error) {
	rootX, err := u.find(x)
	if err != nil {
		return false, err
	}
	rootY, err := u.find(y)
	if err != nil {
		return false, err
	}
	return rootX == rootY, nil
}

// components returns the number of disjoint sets.
func (u *unionFind) components() int {
	return u.count
}
