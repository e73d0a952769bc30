// Package imaging provides the server-side plumbing around region indexes.
//
// It reduces caller-supplied raw pixel buffers to the single 8-bit channel a
// pixelsum.Index is built from, stores built indexes by name, and packages
// region aggregates into JSON-friendly results.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Regions are given by two inclusive corners, (X0,Y0) and (X1,Y1), in any order
//   - Regions may extend past the grid; outside pixels contribute nothing
//
// # Raw Buffers
//
// Buffers are raw row-major pixel data, never an encoded file. One channel
// means one gray byte per pixel; four channels means non-premultiplied RGBA.
// ToGray reduces RGBA with one of three modes:
//   - luma: BT.601 weighted sum, via github.com/disintegration/imaging
//   - lightness: CIE L*, via github.com/lucasb-eyer/go-colorful
//   - threshold: binary 0/255 mask, via github.com/anthonynsimon/bild
//
// # Thread Safety
//
// The IndexStore type is safe for concurrent use. Stored indexes are
// immutable, so results can be computed concurrently from the same index.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Unsupported channel counts or unknown gray modes
//   - Buffers shorter than width*height*channels
//   - Unknown index names, empty names or a full store
//
// Region queries themselves never fail.
package imaging
