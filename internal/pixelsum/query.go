package pixelsum

import "math"

// rect is an inclusive query rectangle after per-axis ordering.
type rect struct {
	xMin, yMin, xMax, yMax int
}

// normalize orders the corners per axis and pulls every coordinate into
// [-1, width] or [-1, height]. Table reads treat anything below 0 as empty and
// anything past the last row or column as that row or column, so the pull
// changes no result and keeps the xMin-1 and yMin-1 arithmetic from overflowing
// on extreme inputs.
func (ix *Index) normalize(x0, y0, x1, y1 int) rect {
	return rect{
		xMin: pull(min(x0, x1), ix.width),
		yMin: pull(min(y0, y1), ix.height),
		xMax: pull(max(x0, x1), ix.width),
		yMax: pull(max(y0, y1), ix.height),
	}
}

func pull(v, hi int) int {
	if v < -1 {
		return -1
	}
	if v > hi {
		return hi
	}
	return v
}

// region combines the four corner reads of table for r. Intermediate terms
// may wrap; the final value is exact because it lies in [0, 2^32).
func (ix *Index) region(table []uint32, r rect) uint32 {
	xLo, yLo := r.xMin-1, r.yMin-1
	return ix.at(table, r.xMax, r.yMax) + ix.at(table, xLo, yLo) -
		ix.at(table, r.xMax, yLo) - ix.at(table, xLo, r.yMax)
}

// PixelSum returns the sum of pixel values inside the inclusive rectangle
// spanned by (x0,y0) and (x1,y1). The corners may come in any order and may lie
// outside the grid; only in-grid pixels contribute.
func (ix *Index) PixelSum(x0, y0, x1, y1 int) uint32 {
	r := ix.normalize(x0, y0, x1, y1)

	// Anchored at the origin: the exclusive low corner reads as zero.
	if r.xMin <= 0 && r.yMin <= 0 {
		return ix.at(ix.sums, r.xMax, r.yMax)
	}
	return ix.region(ix.sums, r)
}

// PixelAverage returns PixelSum divided by the nominal area of the requested
// rectangle, (|x1-x0|+1)*(|y1-y0|+1). The area is not clamped to the grid, so
// rectangles that overhang the border average in the missing pixels as zeros.
func (ix *Index) PixelAverage(x0, y0, x1, y1 int) float64 {
	sum := ix.PixelSum(x0, y0, x1, y1)
	return float64(sum) / NominalArea(x0, y0, x1, y1)
}

// NonZeroCount returns the number of pixels with a non-zero value inside the
// rectangle.
func (ix *Index) NonZeroCount(x0, y0, x1, y1 int) int {
	return int(ix.region(ix.nonZero, ix.normalize(x0, y0, x1, y1)))
}

// NonZeroAverage returns PixelSum divided by NonZeroCount, or 0 when the
// rectangle holds no non-zero pixel.
func (ix *Index) NonZeroAverage(x0, y0, x1, y1 int) float64 {
	n := ix.NonZeroCount(x0, y0, x1, y1)
	if n == 0 {
		return 0.0
	}
	return float64(ix.PixelSum(x0, y0, x1, y1)) / float64(n)
}

// NominalArea is the pixel count implied by the raw corner coordinates,
// ignoring the grid bounds. It is always at least 1. The arithmetic runs in
// float64 so coordinates of any magnitude are safe.
func NominalArea(x0, y0, x1, y1 int) float64 {
	w := math.Abs(float64(x1)-float64(x0)) + 1
	h := math.Abs(float64(y1)-float64(y0)) + 1
	return w * h
}

// Stats bundles every aggregate for one rectangle.
type Stats struct {
	Sum            uint32
	Average        float64
	NonZeroCount   int
	NonZeroAverage float64
}

// Stats evaluates all four aggregates for the rectangle in one call.
func (ix *Index) Stats(x0, y0, x1, y1 int) Stats {
	return Stats{
		Sum:            ix.PixelSum(x0, y0, x1, y1),
		Average:        ix.PixelAverage(x0, y0, x1, y1),
		NonZeroCount:   ix.NonZeroCount(x0, y0, x1, y1),
		NonZeroAverage: ix.NonZeroAverage(x0, y0, x1, y1),
	}
}
