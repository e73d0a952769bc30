package pixelsum

// cellValue maps a pixel to the quantity a summed-area table accumulates.
type cellValue func(p uint8) uint32

func pixelValue(p uint8) uint32 { return uint32(p) }

func nonZeroIndicator(p uint8) uint32 {
	if p != 0 {
		return 1
	}
	return 0
}

// build fills table in a single row-major pass using
//
//	T(x,y) = v(x,y) + T(x,y-1) + T(x-1,y) - T(x-1,y-1)
//
// Every neighbour read goes through at, so the first row and column need no
// special casing and no cell is read before it is written.
func (ix *Index) build(table []uint32, v cellValue) {
	for y := 0; y < ix.height; y++ {
		for x := 0; x < ix.width; x++ {
			table[x+y*ix.width] = v(ix.pixels[x+y*ix.width]) +
				ix.at(table, x, y-1) +
				ix.at(table, x-1, y) -
				ix.at(table, x-1, y-1)
		}
	}
}

// at is the clamped read shared by both tables. Negative coordinates read as
// 0; coordinates past the far border read the last row or column.
func (ix *Index) at(table []uint32, x, y int) uint32 {
	if x < 0 || y < 0 {
		return 0
	}
	if x > ix.width-1 {
		x = ix.width - 1
	}
	if y > ix.height-1 {
		y = ix.height - 1
	}
	return table[x+y*ix.width]
}
