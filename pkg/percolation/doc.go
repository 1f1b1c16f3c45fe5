// Package percolation models an n×n grid of sites which are opened one by one
// and answers whether the grid percolates, that is whether an open path of
// orthogonally adjacent sites joins the top row to the bottom row.
//
// System is the production model. It keeps two weighted quick-union
// structures: one containing a virtual source wired to the top row and a
// virtual sink wired to the bottom row, which answers Percolates, and one
// containing only the source, which answers IsFull. Once the grid percolates
// the source and the sink share a component, so asking the first structure
// whether a site is full would report every site joined to the bottom row,
// even ones with no path to the top ("backwash").
//
// BruteForce answers the same questions with a flood fill on every query. It
// is slow and exists to cross-check System.
package percolation
