// Package pixelsum answers rectangular region queries over an 8-bit pixel grid.
//
// An Index is built once from a raw single-channel buffer. Construction copies
// the pixels and precomputes two summed-area tables, one holding cumulative
// pixel values and one holding cumulative non-zero pixel counts. Every query
// afterwards costs four table reads regardless of the rectangle size.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left corner:
//   - X: column, increasing rightward
//   - Y: row, increasing downward
//   - Both corners of a query rectangle are inclusive
//
// The two corners may be given in any order. Minimum and maximum are taken per
// axis, so (5,0,0,3) and (0,3,5,0) describe the same rectangle. Parts of a
// rectangle outside the grid contribute nothing, and a rectangle lying wholly
// outside the grid yields zero for every aggregate.
//
// # Averages
//
// PixelAverage divides by the nominal area of the requested rectangle,
// (|x1-x0|+1)*(|y1-y0|+1), not by the number of pixels that fall inside the
// grid. A rectangle hanging over the border therefore averages lower than its
// visible part alone. NonZeroAverage divides the pixel sum by the non-zero
// count and returns 0 when that count is 0.
//
// # Thread Safety
//
// An Index has no mutating methods. Any number of goroutines may query the
// same Index concurrently. Clone returns a deep copy that shares no storage
// with the original.
//
// # Limits
//
// Width and height must each be in [1, MaxWidth-1] and [1, MaxHeight-1]. Within
// that bound the largest cumulative sum, 4095*4095*255, fits in a uint32.
package pixelsum
