// Package gridmat provides a dense, row-major 2D array, generalized with
// Go generics so that the same flat-slice implementation hosts the
// module's int-valued deviation, progress, and cost grids.
//
// It is modeled directly on lvlath's matrix.Dense: a flat backing slice
// addressed by a single indexOf computation, plus bounds-checked
// accessors.
package gridmat

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that requested matrix dimensions are
// non-positive.
var ErrInvalidDimensions = errors.New("gridmat: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a requested (x,y) lies outside the
// matrix.
var ErrIndexOutOfBounds = errors.New("gridmat: index out of bounds")

// Matrix is a row-major, width×height dense grid of T.
type Matrix[T any] struct {
	w, h int
	data []T
}

// New creates a width×height Matrix whose cells are initialized to the
// zero value of T. Returns ErrInvalidDimensions if width or height is not
// positive.
func New[T any](width, height int) (*Matrix[T], error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Matrix[T]{w: width, h: height, data: make([]T, width*height)}, nil
}

// NewFilled creates a width×height Matrix with every cell initialized to
// fill.
func NewFilled[T any](width, height int, fill T) (*Matrix[T], error) {
	m, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	m.Fill(fill)
	return m, nil
}

// Width returns the number of columns.
func (m *Matrix[T]) Width() int { return m.w }

// Height returns the number of rows.
func (m *Matrix[T]) Height() int { return m.h }

// InBounds reports whether (x,y) lies within the matrix.
func (m *Matrix[T]) InBounds(x, y int) bool {
	return x >= 0 && x < m.w && y >= 0 && y < m.h
}

// index computes the flat offset for (x,y), or an error if out of bounds.
func (m *Matrix[T]) index(x, y int) (int, error) {
	if !m.InBounds(x, y) {
		return 0, fmt.Errorf("gridmat.Matrix(%d,%d): %w", x, y, ErrIndexOutOfBounds)
	}
	return y*m.w + x, nil
}

// At returns the value stored at (x,y).
func (m *Matrix[T]) At(x, y int) (T, error) {
	idx, err := m.index(x, y)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.data[idx], nil
}

// Get is like At but does no bounds check: an (x,y) outside the matrix
// either reads another cell or, if y*width+x falls outside the backing
// slice, panics. It is intended for hot inner loops (search relaxation,
// geometry flood fill) that have already validated bounds via InBounds
// and do not want the error-return overhead.
func (m *Matrix[T]) Get(x, y int) T {
	return m.data[y*m.w+x]
}

// Set assigns v at (x,y).
func (m *Matrix[T]) Set(x, y int, v T) error {
	idx, err := m.index(x, y)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// SetFast is like Set but, like Get, does no bounds check; the counterpart
// to Get for callers that have already validated bounds.
func (m *Matrix[T]) SetFast(x, y int, v T) {
	m.data[y*m.w+x] = v
}

// Fill sets every cell to v.
func (m *Matrix[T]) Fill(v T) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clone returns a deep copy of the matrix.
func (m *Matrix[T]) Clone() *Matrix[T] {
	cp := make([]T, len(m.data))
	copy(cp, m.data)
	return &Matrix[T]{w: m.w, h: m.h, data: cp}
}
