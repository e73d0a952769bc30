package pixelsum

import (
	"errors"
	"fmt"
)

// Buffer dimensions must stay strictly below these bounds.
const (
	MaxWidth  = 4096
	MaxHeight = 4096
)

var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("pixelsum: width and height must be positive")

	// ErrDimensionsTooLarge is returned when width or height reaches MaxWidth or MaxHeight.
	ErrDimensionsTooLarge = errors.New("pixelsum: dimensions exceed maximum")

	// ErrShortBuffer is returned when the buffer holds fewer than width*height bytes.
	ErrShortBuffer = errors.New("pixelsum: buffer shorter than width*height")
)

// Index holds a private copy of an 8-bit pixel grid together with its
// summed-area tables.
//
// Cells are stored row-major: the cell at (x, y) lives at offset x + y*width
// in all three grids.
type Index struct {
	width  int
	height int

	pixels  []uint8
	sums    []uint32
	nonZero []uint32
}

// New builds an Index from a row-major single-channel buffer.
//
// Parameters:
//   - buf: pixel values, one byte per pixel. Only the first width*height bytes
//     are read; trailing bytes are ignored.
//   - width: number of columns, 1 <= width < MaxWidth.
//   - height: number of rows, 1 <= height < MaxHeight.
//
// Returns:
//   - *Index: the ready-to-query index. The caller's buffer is copied, so it may
//     be reused or modified afterwards.
//   - error: ErrInvalidDimensions, ErrDimensionsTooLarge or ErrShortBuffer
//     (wrapped) when the arguments break the construction contract.
func New(buf []byte, width, height int) (*Index, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if width >= MaxWidth || height >= MaxHeight {
		return nil, fmt.Errorf("%w: got %dx%d, limit %dx%d",
			ErrDimensionsTooLarge, width, height, MaxWidth-1, MaxHeight-1)
	}
	n := width * height
	if len(buf) < n {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrShortBuffer, len(buf), n)
	}

	ix := &Index{
		width:   width,
		height:  height,
		pixels:  make([]uint8, n),
		sums:    make([]uint32, n),
		nonZero: make([]uint32, n),
	}
	copy(ix.pixels, buf[:n])

	ix.build(ix.sums, pixelValue)
	ix.build(ix.nonZero, nonZeroIndicator)

	return ix, nil
}

// Clone returns a deep copy of the index. The copy shares no grid with ix.
func (ix *Index) Clone() *Index {
	return &Index{
		width:   ix.width,
		height:  ix.height,
		pixels:  append([]uint8(nil), ix.pixels...),
		sums:    append([]uint32(nil), ix.sums...),
		nonZero: append([]uint32(nil), ix.nonZero...),
	}
}

// Width returns the number of columns in the grid.
func (ix *Index) Width() int { return ix.width }

// Height returns the number of rows in the grid.
func (ix *Index) Height() int { return ix.height }

// Pixel returns the value stored at (x, y), or 0 if the point is outside the grid.
func (ix *Index) Pixel(x, y int) uint8 {
	if x < 0 || y < 0 || x >= ix.width || y >= ix.height {
		return 0
	}
	return ix.pixels[x+y*ix.width]
}
