package parse

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pingcap/errors"
)

// Site is a (row, col) coordinate read from an input stream.
type Site struct {
	Row, Col int
}

// Sites is the content of an input stream: the grid size followed by the sites
// to open, in stream order.
type Sites struct {
	N     int
	Opens []Site
}

// ReadSites parses whitespace separated integers from r. The first integer is
// the grid size and every following pair is a site to open. The values are not
// range checked here, the model reports them when they are applied.
func ReadSites(r io.Reader) (*Sites, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var (
		ints []int
		pos  int
	)
	for scanner.Scan() {
		pos++
		token := scanner.Text()
		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, errors.Annotatef(err, "token %d %q is not an integer", pos, token)
		}
		ints = append(ints, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}

	if len(ints) == 0 {
		return nil, errors.New("input has zero length, expect the grid size first")
	}
	rest := ints[1:]
	if len(rest)%2 != 0 {
		return nil, errors.Errorf("token %d: site has a row but no column", len(ints))
	}

	ret := &Sites{N: ints[0], Opens: make([]Site, 0, len(rest)/2)}
	for i := 0; i < len(rest); i += 2 {
		ret.Opens = append(ret.Opens, Site{Row: rest[i], Col: rest[i+1]})
	}
	return ret, nil
}
