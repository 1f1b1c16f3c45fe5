package percolation

import "github.com/pingcap/errors"

var (
	// ErrInvalidArgument is returned by constructors when the grid size or the
	// number of trials is not positive. No partial object is returned with it.
	ErrInvalidArgument = errors.New("percolation: invalid argument")
	// ErrOutOfRange is returned by operations taking a site coordinate (or a
	// union-find label) outside the configured range. The receiver stays usable.
	ErrOutOfRange = errors.New("percolation: out of range")
)
